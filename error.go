package winlib

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingGlobalHeader indicates that the archive file is invalid because its global
	// header is missing (i.e., because the file is shorter than 8 bytes).
	ErrMissingGlobalHeader = errors.New("winlib: missing global header")

	// ErrInvalidGlobalHeader indicates that the archive file is invalid because its global
	// header is malformed (i.e., not the string "!<arch>\n").
	ErrInvalidGlobalHeader = errors.New("winlib: invalid global header")

	// ErrShortRead indicates that a fixed-width read asked for more bytes than remain in
	// the buffer.
	ErrShortRead = errors.New("winlib: insufficient bytes in buffer")

	// ErrSeek indicates a reposition outside the bounds of the buffer.
	ErrSeek = errors.New("winlib: seek out of range")

	// ErrUnterminated indicates that the buffer ended before a NUL terminator was found.
	ErrUnterminated = errors.New("winlib: unterminated string")
)

// ErrFileName indicates a problem with the file name in one of the archive's member headers.
type ErrFileName struct {
	Name string
	Err  error
}

func (e *ErrFileName) Error() string {
	return fmt.Sprintf("winlib: archive member '%s': %s", e.Name, e.Err)
}

func (e *ErrFileName) Unwrap() error {
	return e.Err
}

// ErrSymbolIndex indicates a problem decoding the archive's symbol index member.
type ErrSymbolIndex struct {
	Err error
}

func (e *ErrSymbolIndex) Error() string {
	return fmt.Sprintf("winlib: symbol index: %s", e.Err)
}

func (e *ErrSymbolIndex) Unwrap() error {
	return e.Err
}
