// Package cursor implements the twin-cursor offset model spec.md §4.1
// describes: a read-only byte view with independent primary and secondary
// offsets, bounded little-endian reads, and null-terminated string reads.
// It is the lowest-level piece the Decoder Engine drives; it knows nothing
// about structs, members, or schemas.
package cursor

import (
	"errors"
	"fmt"

	"golang.org/x/text/encoding/charmap"

	"github.com/joshuapare/assetdecode/internal/buf"
)

// ErrOutOfBounds is returned by any read that would cross the end of the
// buffer (spec.md §4.1, §7).
var ErrOutOfBounds = errors.New("cursor: read out of bounds")

// ErrInvalidString is returned by ReadString when no null terminator is
// found before the end of the buffer (spec.md §7).
var ErrInvalidString = errors.New("cursor: string missing null terminator")

// Which selects one of the cursor's two independent offsets.
type Which int

const (
	Primary Which = iota
	Secondary
)

// Cursor is a read-only view over a byte buffer with a primary and a
// secondary offset. Both offsets start at zero; Decode callers set the
// secondary offset to the file binding's initial value before decoding.
type Cursor struct {
	buf       []byte
	primary   int
	secondary int
}

// New creates a Cursor over buf with both offsets at zero.
func New(data []byte) *Cursor {
	return &Cursor{buf: data}
}

// Len returns the total buffer length.
func (c *Cursor) Len() int { return len(c.buf) }

// Primary returns the current primary offset.
func (c *Cursor) Primary() int { return c.primary }

// Secondary returns the current secondary offset.
func (c *Cursor) Secondary() int { return c.secondary }

// SetPrimary repositions the primary offset. Unchecked: validity is enforced
// on the next read (spec.md §4.1).
func (c *Cursor) SetPrimary(offset int) { c.primary = offset }

// SetSecondary repositions the secondary offset. Unchecked for the same
// reason as SetPrimary.
func (c *Cursor) SetSecondary(offset int) { c.secondary = offset }

// offsetFor returns a pointer to the offset field selected by which, so
// read helpers can advance the right cursor without duplicating the
// primary/secondary branch in every method.
func (c *Cursor) offsetFor(which Which) *int {
	if which == Primary {
		return &c.primary
	}
	return &c.secondary
}

func (c *Cursor) checkedSlice(off, n int) ([]byte, error) {
	s, ok := buf.Slice(c.buf, off, n)
	if !ok {
		return nil, fmt.Errorf("%w: offset %d, width %d, buffer length %d", ErrOutOfBounds, off, n, len(c.buf))
	}
	return s, nil
}

// ReadAt performs an absolute, non-advancing read of n bytes at offset.
func (c *Cursor) ReadAt(offset, n int) ([]byte, error) {
	return c.checkedSlice(offset, n)
}

// read advances the selected cursor by n bytes and returns the bytes read
// from its position before the advance.
func (c *Cursor) read(which Which, n int) ([]byte, error) {
	off := *c.offsetFor(which)
	s, err := c.checkedSlice(off, n)
	if err != nil {
		return nil, err
	}
	*c.offsetFor(which) += n
	return s, nil
}

// U8 reads and advances a uint8 from the given cursor.
func (c *Cursor) U8(which Which) (uint8, error) {
	b, err := c.read(which, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Bool reads and advances a bool (non-zero byte) from the given cursor.
func (c *Cursor) Bool(which Which) (bool, error) {
	v, err := c.U8(which)
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// U16 reads and advances a little-endian uint16.
func (c *Cursor) U16(which Which) (uint16, error) {
	b, err := c.read(which, 2)
	if err != nil {
		return 0, err
	}
	return buf.U16LE(b), nil
}

// I16 reads and advances a little-endian int16.
func (c *Cursor) I16(which Which) (int16, error) {
	b, err := c.read(which, 2)
	if err != nil {
		return 0, err
	}
	return buf.I16LE(b), nil
}

// U32 reads and advances a little-endian uint32.
func (c *Cursor) U32(which Which) (uint32, error) {
	b, err := c.read(which, 4)
	if err != nil {
		return 0, err
	}
	return buf.U32LE(b), nil
}

// I32 reads and advances a little-endian int32.
func (c *Cursor) I32(which Which) (int32, error) {
	b, err := c.read(which, 4)
	if err != nil {
		return 0, err
	}
	return buf.I32LE(b), nil
}

// U64 reads and advances a little-endian uint64.
func (c *Cursor) U64(which Which) (uint64, error) {
	b, err := c.read(which, 8)
	if err != nil {
		return 0, err
	}
	return buf.U64LE(b), nil
}

// I64 reads and advances a little-endian int64.
func (c *Cursor) I64(which Which) (int64, error) {
	b, err := c.read(which, 8)
	if err != nil {
		return 0, err
	}
	return buf.I64LE(b), nil
}

// F32 reads and advances a little-endian IEEE-754 float32.
func (c *Cursor) F32(which Which) (float32, error) {
	b, err := c.read(which, 4)
	if err != nil {
		return 0, err
	}
	return buf.F32LE(b), nil
}

// decodeWin1252 converts raw single-byte-encoded string bytes to a Go
// string. The asset format's text is the original game's native Windows
// codepage rather than UTF-8 (spec.md §4.1's string notes); decoding through
// charmap.Windows1252 rather than a bare byte-to-rune cast keeps bytes in
// 0x80-0x9F mapping to their intended punctuation/currency glyphs instead of
// the C1 control codes a naive cast would produce.
func decodeWin1252(raw []byte) string {
	out, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(out)
}

// ReadString reads a null-terminated byte sequence at the given cursor,
// advancing it past the terminator. Fails with ErrInvalidString if no
// terminator is found before the end of the buffer (spec.md §4.1, §7).
func (c *Cursor) ReadString(which Which) (string, error) {
	off := *c.offsetFor(which)
	if off < 0 || off > len(c.buf) {
		return "", fmt.Errorf("%w: offset %d, buffer length %d", ErrOutOfBounds, off, len(c.buf))
	}
	end := off
	for end < len(c.buf) && c.buf[end] != 0 {
		end++
	}
	if end >= len(c.buf) {
		return "", fmt.Errorf("%w: starting at offset %d", ErrInvalidString, off)
	}
	s := decodeWin1252(c.buf[off:end])
	*c.offsetFor(which) = end + 1
	return s, nil
}

// ReadStringAt is a non-advancing variant of ReadString used when the caller
// already owns the exact offset (e.g. a handle payload address) and does not
// want to mutate either cursor.
func (c *Cursor) ReadStringAt(offset int) (string, error) {
	if offset < 0 || offset > len(c.buf) {
		return "", fmt.Errorf("%w: offset %d, buffer length %d", ErrOutOfBounds, offset, len(c.buf))
	}
	end := offset
	for end < len(c.buf) && c.buf[end] != 0 {
		end++
	}
	if end >= len(c.buf) {
		return "", fmt.Errorf("%w: starting at offset %d", ErrInvalidString, offset)
	}
	return decodeWin1252(c.buf[offset:end]), nil
}
