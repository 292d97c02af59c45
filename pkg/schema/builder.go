// Package schema is the public facade over internal/schema and
// internal/router: build a schema declaratively, then Build() it into the
// validated, read-only pair a decoder.Decoder borrows for a decode.
package schema

import (
	"github.com/joshuapare/assetdecode/internal/decoder"
	"github.com/joshuapare/assetdecode/internal/router"
	internal "github.com/joshuapare/assetdecode/internal/schema"
)

// Builder accumulates struct and file-binding declarations for one schema,
// analogous to the teacher's newReader building up a validated structure
// once at Open time.
type Builder struct {
	schema *internal.Schema
	router *router.Router
}

// NewBuilder creates a Builder. version is the schema's configured
// version string (spec.md §4.4/§6), used to resolve version-keyed file
// bindings; pass "" if the schema has none.
func NewBuilder(version string) *Builder {
	return &Builder{
		schema: internal.New(),
		router: router.New(version),
	}
}

// StructBuilder is returned by Builder.Struct, wrapping internal/schema's
// *Struct to keep the declaration methods under the public package.
type StructBuilder struct {
	s *internal.Struct
}

// Struct declares a struct with fixedSize bytes of primary-region layout.
func (b *Builder) Struct(name string, fixedSize int) *StructBuilder {
	return &StructBuilder{s: b.schema.AddStruct(name, fixedSize)}
}

// Scalar declares a fixed-width or composite scalar member (spec.md §4.3
// form 1).
func (sb *StructBuilder) Scalar(name, typeName string, offset int) *StructBuilder {
	sb.s.AddScalar(name, typeName, offset, false)
	return sb
}

// ScalarSecondary is Scalar for a member read via the secondary cursor
// (member.use_secondary = true).
func (sb *StructBuilder) ScalarSecondary(name, typeName string, offset int) *StructBuilder {
	sb.s.AddScalar(name, typeName, offset, true)
	return sb
}

// Array declares an array member (spec.md §4.3 form 2). countOffset of 0
// means the element count immediately follows the presence word.
func (sb *StructBuilder) Array(name, elementType string, offset, countOffset int) *StructBuilder {
	sb.s.AddArray(name, elementType, offset, false, countOffset)
	return sb
}

// InlineStruct declares an unnamed sub-struct inlined at offset (spec.md
// §4.3 form 3).
func (sb *StructBuilder) InlineStruct(subStructName string, offset int) *StructBuilder {
	sb.s.AddInlineStruct(subStructName, offset)
	return sb
}

// NamedStruct declares a named sub-struct field (spec.md §4.3 form 4,
// first variant).
func (sb *StructBuilder) NamedStruct(name, subStructName string, offset int) *StructBuilder {
	sb.s.AddNamedStruct(name, subStructName, offset)
	return sb
}

// Nullable declares a named nullable-struct field (spec.md §4.3 form 4,
// second variant).
func (sb *StructBuilder) Nullable(name, targetStructName string, offset int) *StructBuilder {
	sb.s.AddNullable(name, targetStructName, offset)
	return sb
}

// BindExtension registers a version-less file binding for an extension
// (case-insensitive, must include the leading dot).
func (b *Builder) BindExtension(extension string, rootStructs []string, initialSecondaryOffset int) *Builder {
	b.router.AddExtensionBinding(extension, router.FileBinding{RootStructs: rootStructs, InitialSecondaryOffset: initialSecondaryOffset})
	return b
}

// BindVersionedExtension registers a binding for extension under a
// version key (spec.md §4.4's version-keyed overrides).
func (b *Builder) BindVersionedExtension(extension, version string, rootStructs []string, initialSecondaryOffset int) *Builder {
	b.router.AddVersionedExtensionBinding(extension, version, router.FileBinding{RootStructs: rootStructs, InitialSecondaryOffset: initialSecondaryOffset})
	return b
}

// BindExactName registers a version-less file binding for an exact
// basename (case-insensitive).
func (b *Builder) BindExactName(name string, rootStructs []string, initialSecondaryOffset int) *Builder {
	b.router.AddExactNameBinding(name, router.FileBinding{RootStructs: rootStructs, InitialSecondaryOffset: initialSecondaryOffset})
	return b
}

// BindVersionedExactName is the exact-name analogue of
// BindVersionedExtension.
func (b *Builder) BindVersionedExactName(name, version string, rootStructs []string, initialSecondaryOffset int) *Builder {
	b.router.AddVersionedExactNameBinding(name, version, router.FileBinding{RootStructs: rootStructs, InitialSecondaryOffset: initialSecondaryOffset})
	return b
}

// Build validates the accumulated struct graph and returns the read-only
// Schema/Router pair a decoder borrows. The returned values must not be
// mutated after Build returns (spec.md §3 "Ownership"). A validation
// failure is returned as a *decoder.Error with Kind ErrKindSchema, so
// callers branch on one error taxonomy regardless of whether a failure
// happened here or during a later Decode.
func (b *Builder) Build() (*internal.Schema, *router.Router, error) {
	if err := b.schema.Validate(); err != nil {
		return nil, nil, decoder.WrapValidationErr(err)
	}
	return b.schema, b.router, nil
}
