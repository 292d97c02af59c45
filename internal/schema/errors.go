package schema

import "errors"

// Sentinel errors returned while building or resolving a schema. Decode-time
// failures wrap these via *decoder.Error in the decoder package; schema
// package itself only needs to signal "not found" / "invalid" conditions to
// its caller (the schema builder, or the decoder's lookups).
var (
	// ErrUnknownType indicates a type name has no registered definition.
	ErrUnknownType = errors.New("schema: unknown type")
	// ErrUnknownStruct indicates a struct name has no registered definition.
	ErrUnknownStruct = errors.New("schema: unknown struct")
	// ErrDuplicateStruct indicates add_struct was called twice for the same name
	// with a different fixed size (idempotent re-registration is allowed).
	ErrDuplicateStruct = errors.New("schema: struct already registered with a different size")
	// ErrMemberOutOfBounds indicates a member's offset+size exceeds its struct's fixed size.
	ErrMemberOutOfBounds = errors.New("schema: member does not fit within struct size")
)
