package decoder

import (
	"errors"
	"fmt"

	"github.com/joshuapare/assetdecode/internal/cursor"
	"github.com/joshuapare/assetdecode/internal/schema"
)

// ErrKind classifies a decode failure so callers can branch on intent rather
// than message text, mirroring the teacher's pkg/types.ErrKind convention.
type ErrKind int

const (
	ErrKindBinding ErrKind = iota
	ErrKindType
	ErrKindStruct
	ErrKindBounds
	ErrKindString
	// ErrKindSchema classifies a build-time schema validation failure
	// (internal/schema.ValidationError), surfaced through this taxonomy by
	// pkg/schema.Builder.Build so callers of the public facade can branch
	// on one Error type regardless of whether a failure happened at
	// schema-build time or decode time.
	ErrKindSchema
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindBinding:
		return "UnknownBinding"
	case ErrKindType:
		return "UnknownType"
	case ErrKindStruct:
		return "UnknownStruct"
	case ErrKindBounds:
		return "OutOfBounds"
	case ErrKindString:
		return "InvalidString"
	case ErrKindSchema:
		return "SchemaInvalid"
	default:
		return fmt.Sprintf("ErrKind(%d)", int(k))
	}
}

// WrapValidationErr converts an internal/schema.ValidationError (or any
// error) into the decoder's typed taxonomy under ErrKindSchema, so
// pkg/schema.Builder.Build can return *Error alongside Decode's own errors.
func WrapValidationErr(err error) error {
	if err == nil {
		return nil
	}
	e := &Error{Kind: ErrKindSchema, Msg: "schema validation failed", Err: err}
	var ve *schema.ValidationError
	if errors.As(err, &ve) {
		e.Struct = ve.Struct
		e.Member = ve.Member
	}
	return e
}

// Error is a typed decode failure carrying the taxonomy from spec.md §7 plus
// breadcrumb context (struct in progress, primary/secondary offsets) so a
// caller can report exactly where the decode aborted.
type Error struct {
	Kind      ErrKind
	Msg       string
	Struct    string
	Member    string
	Primary   int
	Secondary int
	Err       error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	loc := ""
	if e.Struct != "" {
		loc = fmt.Sprintf(" (struct=%s", e.Struct)
		if e.Member != "" {
			loc += fmt.Sprintf(", member=%s", e.Member)
		}
		loc += fmt.Sprintf(", primary=%d, secondary=%d)", e.Primary, e.Secondary)
	}
	if e.Err != nil {
		return fmt.Sprintf("decoder: %s: %s%s: %s", e.Kind, e.Msg, loc, e.Err.Error())
	}
	return fmt.Sprintf("decoder: %s: %s%s", e.Kind, e.Msg, loc)
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is match against the bare sentinel kinds below (Error
// values compare by Kind, not by pointer identity, since each decode
// constructs a fresh Error carrying its own context).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels for errors.Is checks against the taxonomy, independent of
// context (struct/member/offsets).
var (
	ErrUnknownBinding = &Error{Kind: ErrKindBinding, Msg: "no file binding for filename"}
	ErrUnknownType    = &Error{Kind: ErrKindType, Msg: "member references an unregistered type"}
	ErrUnknownStruct  = &Error{Kind: ErrKindStruct, Msg: "reference to an unregistered struct"}
	ErrOutOfBounds    = &Error{Kind: ErrKindBounds, Msg: "read past end of buffer"}
	ErrInvalidString  = &Error{Kind: ErrKindString, Msg: "string missing null terminator"}
)

// wrapCursorErr maps a cursor-level failure into the decoder's typed
// taxonomy, attaching struct/member/offset context.
func (d *Decoder) wrapCursorErr(err error, structName, member string) error {
	if err == nil {
		return nil
	}
	e := &Error{Struct: structName, Member: member, Primary: d.cur.Primary(), Secondary: d.cur.Secondary(), Err: err}
	switch {
	case errors.Is(err, cursor.ErrOutOfBounds):
		e.Kind = ErrKindBounds
		e.Msg = ErrOutOfBounds.Msg
	case errors.Is(err, cursor.ErrInvalidString):
		e.Kind = ErrKindString
		e.Msg = ErrInvalidString.Msg
	default:
		e.Kind = ErrKindBounds
		e.Msg = "cursor read failed"
	}
	return e
}

func (d *Decoder) unknownType(structName, member, typeName string) error {
	return &Error{
		Kind: ErrKindType, Msg: fmt.Sprintf("unresolved type %q", typeName),
		Struct: structName, Member: member, Primary: d.cur.Primary(), Secondary: d.cur.Secondary(),
		Err: schema.ErrUnknownType,
	}
}

func (d *Decoder) unknownStruct(structName, member, target string) error {
	return &Error{
		Kind: ErrKindStruct, Msg: fmt.Sprintf("unresolved struct %q", target),
		Struct: structName, Member: member, Primary: d.cur.Primary(), Secondary: d.cur.Secondary(),
		Err: schema.ErrUnknownStruct,
	}
}

func wrapBindingErr(filename string, err error) error {
	return &Error{Kind: ErrKindBinding, Msg: fmt.Sprintf("no binding for %q", filename), Err: err}
}
