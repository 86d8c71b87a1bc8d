package winlib

import (
	"fmt"
)

// DiagKind identifies a tolerated anomaly noticed while parsing.
type DiagKind int

const (
	// DiagBadTerminator indicates that a member header's 2-byte terminator was not
	// 0x60 0x0A. Some encoders get this wrong; the header is still usable.
	DiagBadTerminator DiagKind = iota

	// DiagBadPadding indicates that the alignment byte after an odd-sized member was
	// not a newline.
	DiagBadPadding

	// DiagMissingSecondIndex indicates that the duplicate symbol index that normally
	// follows the first one was absent.
	DiagMissingSecondIndex

	// DiagDuplicateLookupMember indicates that a second "//" member was found; it is
	// ignored in favour of the first.
	DiagDuplicateLookupMember
)

func (k DiagKind) String() string {
	switch k {
	case DiagBadTerminator:
		return "bad header terminator"
	case DiagBadPadding:
		return "bad padding byte"
	case DiagMissingSecondIndex:
		return "second symbol index missing"
	case DiagDuplicateLookupMember:
		return "duplicate filename lookup member"
	}
	return "unknown"
}

// Diagnostic is a structured record of a non-fatal anomaly. Offset is
// the absolute file offset at which the anomaly was noticed; Got holds
// the offending bytes, when there are any.
type Diagnostic struct {
	Kind   DiagKind
	Offset int
	Got    []byte
}

func (d Diagnostic) String() string {
	if len(d.Got) == 0 {
		return fmt.Sprintf("%s at offset %d", d.Kind, d.Offset)
	}
	return fmt.Sprintf("%s at offset %d: got %q", d.Kind, d.Offset, d.Got)
}

// Option configures a Reader.
type Option func(*Reader)

// WithDiagnosticHandler registers a sink that is called with each
// diagnostic as it is recorded, in parse order. The Reader retains the
// records either way; the handler is for callers that want to surface
// anomalies while the parse is still running.
func WithDiagnosticHandler(fn func(Diagnostic)) Option {
	return func(r *Reader) {
		r.onDiag = fn
	}
}
