package winlib

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Reader provides read access to a Windows `.lib` static-library
// archive. Load parses the whole buffer at once and populates two maps:
// the catalog of regular members keyed by resolved file name, and the
// symbol index mapping each symbol name to the member that defines it.
//
// Example:
//
//	r := winlib.NewReader()
//	if err := r.Load(data); err != nil {
//		return err
//	}
//	member := r.Members()[r.Symbols()["_CreateFileW@28"]]
//
// Members hold zero-copy views into the loaded buffer, so the buffer
// must stay alive (and unmodified) for as long as they are in use. A
// Reader is not safe for concurrent Load calls; distinct Readers are
// independent.
type Reader struct {
	// members is the catalog of regular members, keyed by resolved name. The special
	// index and filename lookup members are not included.
	members map[string]*Member

	// symbols maps each symbol name to the name of the member defining it.
	symbols map[string]string

	// diags collects the non-fatal anomalies noticed by the last Load, in parse order.
	diags []Diagnostic

	// onDiag, when set, is invoked for each diagnostic as it is recorded.
	onDiag func(Diagnostic)
}

// NewReader creates a Reader. It holds no data until Load is called.
func NewReader(opts ...Option) *Reader {
	r := &Reader{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(r)
	}
	r.reset()
	return r
}

func (r *Reader) reset() {
	r.members = map[string]*Member{}
	r.symbols = map[string]string{}
	r.diags = nil
}

// Members returns the catalog of regular members keyed by resolved
// name. The returned map is the Reader's own; treat it as read-only.
func (r *Reader) Members() map[string]*Member {
	return r.members
}

// Symbols returns the symbol index: symbol name to defining member
// name. Every value is a key of Members. Treat the map as read-only.
func (r *Reader) Symbols() map[string]string {
	return r.symbols
}

// Diagnostics returns the non-fatal anomalies recorded by the last
// Load, in the order they were noticed.
func (r *Reader) Diagnostics() []Diagnostic {
	return r.diags
}

func (r *Reader) diag(d Diagnostic) {
	r.diags = append(r.diags, d)
	if r.onDiag != nil {
		r.onDiag(d)
	}
}

// Load parses one archive. Any state from a previous Load is discarded
// first. On error the Reader exposes no partial result: the member and
// symbol maps are empty. On success both maps are fully populated and
// mutually consistent.
func (r *Reader) Load(data []byte) error {
	r.reset()
	cur := NewCursor(data)

	magic, err := cur.ReadBytes(len(GlobalHeader))
	if err != nil {
		return ErrMissingGlobalHeader
	}
	if string(magic) != GlobalHeader {
		return fmt.Errorf("%w: %q", ErrInvalidGlobalHeader, magic)
	}

	// The first member must be the symbol index. It is retained for
	// decoding below rather than cataloged.
	index, err := r.readMember(cur, nil)
	if err != nil {
		return err
	}
	if index.Name != "/" {
		return fmt.Errorf("winlib: first member unexpectedly named %q", index.Name)
	}

	members := map[string]*Member{}
	nameByOffset := map[int]string{}
	var lookup *Member

	// A second, redundant copy of the symbol index normally follows the
	// first (same content, different sort order); it is discarded.
	expectSecondIndex := true

	for cur.More() {
		offset := cur.Pos()
		m, err := r.readMember(cur, lookup)
		if err != nil {
			return err
		}
		if expectSecondIndex {
			expectSecondIndex = false
			if m.Name == "/" {
				continue
			}
			r.diag(Diagnostic{Kind: DiagMissingSecondIndex, Offset: offset})
		}
		if m.Name == "//" {
			if lookup == nil {
				lookup = m
			} else {
				r.diag(Diagnostic{Kind: DiagDuplicateLookupMember, Offset: offset})
			}
			continue
		}
		if _, ok := members[m.Name]; ok {
			return &ErrFileName{Name: m.Name, Err: errors.New("appears in archive twice")}
		}
		nameByOffset[offset] = m.Name
		members[m.Name] = m
	}

	symbols, err := decodeSymbolIndex(index.Content, nameByOffset)
	if err != nil {
		return err
	}

	r.members = members
	r.symbols = symbols
	return nil
}

// readMember parses one 60-byte member header and carves out a view of
// its content. lookup is the filename lookup member recorded so far, or
// nil if none has been seen yet.
func (r *Reader) readMember(cur *Cursor, lookup *Member) (*Member, error) {
	start := cur.Pos()
	field, err := cur.ReadString(nameLen)
	if err != nil {
		return nil, err
	}
	name, err := r.resolveName(strings.TrimRight(field, " "), lookup)
	if err != nil {
		return nil, err
	}

	m := &Member{Name: name}
	if m.Date, err = cur.ReadInt(dateLen); err != nil {
		return nil, &ErrFileName{Name: name, Err: err}
	}
	uid, err := cur.ReadString(uidLen)
	if err != nil {
		return nil, &ErrFileName{Name: name, Err: err}
	}
	m.UserID = strings.TrimRight(uid, " ")
	gid, err := cur.ReadString(gidLen)
	if err != nil {
		return nil, &ErrFileName{Name: name, Err: err}
	}
	m.GroupID = strings.TrimRight(gid, " ")
	if m.Mode, err = cur.ReadInt(modeLen); err != nil {
		return nil, &ErrFileName{Name: name, Err: err}
	}
	if m.Size, err = cur.ReadInt(sizeLen); err != nil {
		return nil, &ErrFileName{Name: name, Err: err}
	}
	term, err := cur.ReadBytes(endLen)
	if err != nil {
		return nil, &ErrFileName{Name: name, Err: err}
	}
	if string(term) != endHeader {
		r.diag(Diagnostic{Kind: DiagBadTerminator, Offset: start + endOff, Got: term})
	}

	if m.Content, err = cur.Sub(int(m.Size)); err != nil {
		return nil, &ErrFileName{Name: name, Err: err}
	}

	// Members start on even byte boundaries; a newline pads out an
	// odd-sized content section. The final member may omit it.
	if cur.Pos()%2 == 1 && cur.More() {
		pad, err := cur.ReadBytes(1)
		if err != nil {
			return nil, &ErrFileName{Name: name, Err: err}
		}
		if pad[0] != '\n' {
			r.diag(Diagnostic{Kind: DiagBadPadding, Offset: cur.Pos() - 1, Got: pad})
		}
	}
	return m, nil
}

// resolveName applies the Windows ar naming rules to a trimmed 16-byte
// name field. The special markers "/" and "//" are returned as-is for
// the caller to classify; a trailing slash marks an inline short name;
// a leading slash marks a decimal byte offset into the filename lookup
// member, where the real name is stored NUL-terminated.
func (r *Reader) resolveName(field string, lookup *Member) (string, error) {
	switch {
	case field == "/" || field == "//":
		return field, nil
	case strings.HasSuffix(field, "/"):
		return strings.TrimSuffix(field, "/"), nil
	case strings.HasPrefix(field, "/"):
		off, err := strconv.Atoi(field[1:])
		if err != nil {
			return "", &ErrFileName{Name: field, Err: errors.New("malformed lookup offset")}
		}
		if lookup == nil {
			return "", &ErrFileName{Name: field, Err: errors.New("references nonexistent filename lookup member")}
		}
		name, err := lookup.Content.CStringAt(off)
		if err != nil {
			return "", &ErrFileName{Name: field, Err: err}
		}
		return name, nil
	default:
		return "", &ErrFileName{Name: field, Err: errors.New("unexpected name format")}
	}
}

// decodeSymbolIndex decodes the retained first index member: a
// big-endian symbol count, that many big-endian header-start offsets,
// then the same number of consecutive NUL-terminated symbol names.
// Each offset is correlated back to the member whose header begins
// there via nameByOffset.
func decodeSymbolIndex(content *Cursor, nameByOffset map[int]string) (map[string]string, error) {
	count, err := content.ReadUint32()
	if err != nil {
		return nil, &ErrSymbolIndex{Err: err}
	}
	offsets, err := content.Sub(4 * int(count))
	if err != nil {
		return nil, &ErrSymbolIndex{Err: err}
	}
	names := content.SubRest()

	symbols := make(map[string]string, count)
	for i := uint32(0); i < count; i++ {
		offset, err := offsets.ReadUint32()
		if err != nil {
			return nil, &ErrSymbolIndex{Err: err}
		}
		symbol, err := names.ReadCString()
		if err != nil {
			return nil, &ErrSymbolIndex{Err: err}
		}
		member, ok := nameByOffset[int(offset)]
		if !ok {
			return nil, &ErrSymbolIndex{Err: fmt.Errorf("offset %d does not match any member header", offset)}
		}
		if prev, ok := symbols[symbol]; ok {
			return nil, &ErrSymbolIndex{Err: fmt.Errorf("symbol %q defined by both '%s' and '%s'", symbol, prev, member)}
		}
		symbols[symbol] = member
	}
	return symbols, nil
}
