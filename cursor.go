package winlib

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Cursor is a byte buffer plus a read position. Reads advance the
// position and are always exact: a fixed-width read that runs past the
// end of the buffer fails rather than returning a short result. Sub and
// SubRest carve out independent views over the same backing bytes
// without copying, so many cursors may share one buffer, each advancing
// on its own.
type Cursor struct {
	data []byte
	pos  int
}

// NewCursor returns a cursor over data, positioned at the start.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Pos returns the current read position within the view.
func (c *Cursor) Pos() int {
	return c.pos
}

// Size returns the total length of the view.
func (c *Cursor) Size() int {
	return len(c.data)
}

// More reports whether any bytes remain to be read.
func (c *Cursor) More() bool {
	return c.pos < len(c.data)
}

// Seek repositions the cursor to an absolute offset within the view.
func (c *Cursor) Seek(pos int) error {
	if pos < 0 || pos > len(c.data) {
		return fmt.Errorf("%w: %d (size %d)", ErrSeek, pos, len(c.data))
	}
	c.pos = pos
	return nil
}

// ReadBytes returns the next n bytes and advances past them. The
// returned slice aliases the backing buffer.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if n < 0 || n > len(c.data)-c.pos {
		return nil, fmt.Errorf("%w: want %d, have %d", ErrShortRead, n, len(c.data)-c.pos)
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// Rest returns everything from the position to the end of the view and
// advances to the end.
func (c *Cursor) Rest() []byte {
	b := c.data[c.pos:]
	c.pos = len(c.data)
	return b
}

// ReadString reads the next n bytes as text.
func (c *Cursor) ReadString(n int) (string, error) {
	b, err := c.ReadBytes(n)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("winlib: invalid text in field %q", b)
	}
	return string(b), nil
}

// ReadInt reads an n-byte space-padded decimal ASCII field.
func (c *Cursor) ReadInt(n int) (int64, error) {
	s, err := c.ReadString(n)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("winlib: bad numeric field %q", s)
	}
	return v, nil
}

// ReadUint32 reads a big-endian dword.
func (c *Cursor) ReadUint32() (uint32, error) {
	b, err := c.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// ReadCString returns the text before the next NUL byte and advances
// past the terminator.
func (c *Cursor) ReadCString() (string, error) {
	i := bytes.IndexByte(c.data[c.pos:], 0)
	if i < 0 {
		return "", ErrUnterminated
	}
	b := c.data[c.pos : c.pos+i]
	if !utf8.Valid(b) {
		return "", fmt.Errorf("winlib: invalid text in string %q", b)
	}
	c.pos += i + 1
	return string(b), nil
}

// CStringAt reads the NUL-terminated string starting at off without
// moving the cursor.
func (c *Cursor) CStringAt(off int) (string, error) {
	if off < 0 || off > len(c.data) {
		return "", fmt.Errorf("%w: %d (size %d)", ErrSeek, off, len(c.data))
	}
	sub := &Cursor{data: c.data, pos: off}
	return sub.ReadCString()
}

// Sub returns a new cursor bound to exactly the next n bytes of the
// same backing buffer and advances past them. No data is copied.
func (c *Cursor) Sub(n int) (*Cursor, error) {
	b, err := c.ReadBytes(n)
	if err != nil {
		return nil, err
	}
	return &Cursor{data: b}, nil
}

// SubRest returns a new cursor over everything that remains and
// advances to the end.
func (c *Cursor) SubRest() *Cursor {
	return &Cursor{data: c.Rest()}
}
