package schema

// Schema bundles a TypeRegistry and a StructRegistry: the process-wide,
// read-only resource a decoder borrows for the duration of one decode
// (spec.md §3 "Ownership").
type Schema struct {
	Types   *TypeRegistry
	Structs *StructRegistry
}

// New creates an empty Schema pre-populated with the spec's primitive types.
func New() *Schema {
	types := DefaultTypeRegistry()
	return &Schema{Types: types, Structs: NewStructRegistry(types)}
}

// AddStruct is a convenience forward to Structs.AddStruct.
func (s *Schema) AddStruct(name string, fixedSize int) *Struct {
	return s.Structs.AddStruct(name, fixedSize)
}

// AddArrayType is a convenience forward to Types.AddArrayType.
func (s *Schema) AddArrayType(elem string, elementSize int) Type {
	return s.Types.AddArrayType(elem, elementSize)
}

// Validate forwards to Structs.Validate.
func (s *Schema) Validate() error {
	return s.Structs.Validate()
}
