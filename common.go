package winlib

import (
	"time"
)

const (
	// GlobalHeader is the 8-byte magic at the start of every archive.
	GlobalHeader = "!<arch>\n"

	// HeaderSize is the fixed size in bytes of a member header.
	HeaderSize = 60
)

// Member header field layout. Offsets are relative to the start of the
// header. All numeric fields are left-justified, space-padded ASCII.
const (
	nameOff = 0
	nameLen = 16
	dateOff = nameOff + nameLen
	dateLen = 12
	uidOff  = dateOff + dateLen
	uidLen  = 6
	gidOff  = uidOff + uidLen
	gidLen  = 6
	modeOff = gidOff + gidLen
	modeLen = 8
	sizeOff = modeOff + modeLen
	sizeLen = 10
	endOff  = sizeOff + sizeLen
	endLen  = 2

	// endHeader is the expected value of the 2-byte header terminator.
	endHeader = "\x60\x0a"
)

// Member is one entry in the archive: its resolved name, the metadata
// fields of its header, and its content. UserID and GroupID stay as
// trimmed text because .lib files usually leave them empty. Content is
// a zero-copy sub-view of the archive's buffer, exactly Size bytes
// long; it stays valid only as long as that buffer does.
type Member struct {
	Name    string
	Date    int64
	UserID  string
	GroupID string
	Mode    int64
	Size    int64
	Content *Cursor
}

// ModTime returns the member's date field as a time.
func (m *Member) ModTime() time.Time {
	return time.Unix(m.Date, 0)
}
