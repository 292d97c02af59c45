package schema

import "strings"

// Member describes one field of a Struct. The four declaration forms of
// spec.md §4.3 all produce a Member; MemberForm records which form produced
// it so the decoder can dispatch without re-deriving intent from field
// contents.
type MemberForm int

const (
	// FormScalar is a plain primitive/enum/composite field.
	FormScalar MemberForm = iota
	// FormArray is an `array:Element` field, declared with the bare type
	// name "array" plus an explicit element type (spec.md §4.3 form 2).
	FormArray
	// FormInlineStruct is an unnamed sub-struct inlined at an offset
	// (spec.md §4.3 form 3); the member's emitted name is the struct's own
	// name, and HasCustomName is false.
	FormInlineStruct
	// FormNamedStruct is a named sub-struct or nullable-sub-struct field
	// (spec.md §4.3 form 4).
	FormNamedStruct
)

// Member is one entry in a Struct's ordered member list.
type Member struct {
	Name          string
	TypeName      string // resolved against the TypeRegistry
	Offset        int    // primary-region offset within the enclosing struct
	Form          MemberForm
	ElementType   string // set when Form == FormArray: the element's type name
	UseSecondary  bool
	HasCustomName bool
	CountOffset   int // non-zero: sideband count location for FormArray
}

// Struct is an interned struct definition: a fixed primary-region size plus
// an ordered list of members.
type Struct struct {
	Name      string
	FixedSize int
	Members   []Member // declaration order, append-only

	byName map[string]int // member name -> index of the *last* declaration
}

// MemberByName returns the last-declared member with the given name, per the
// "later duplicates supersede earlier ones on lookup" rule (spec.md §9).
func (s *Struct) MemberByName(name string) (Member, bool) {
	idx, ok := s.byName[name]
	if !ok {
		return Member{}, false
	}
	return s.Members[idx], true
}

func (s *Struct) append(m Member) {
	s.byName[m.Name] = len(s.Members)
	s.Members = append(s.Members, m)
}

// AddScalar declares a fixed-width or composite scalar member (spec.md §4.3
// form 1): bool/int*/uint*/float/guid/vec2/vec3/quat/char/charPtr/key/
// asset/keyAsset/localizedAssetString/enum, or a bare struct/nullable type
// name used without custom wrapping.
func (s *Struct) AddScalar(name, typeName string, offset int, useSecondary bool) {
	s.append(Member{
		Name:         name,
		TypeName:     typeName,
		Offset:       offset,
		Form:         FormScalar,
		UseSecondary: useSecondary,
	})
}

// AddArray declares an array member (spec.md §4.3 form 2). countOffset of 0
// means the element count immediately follows the presence word.
func (s *Struct) AddArray(name, elementType string, offset int, useSecondary bool, countOffset int) {
	s.append(Member{
		Name:         name,
		TypeName:     "array",
		Offset:       offset,
		Form:         FormArray,
		ElementType:  elementType,
		UseSecondary: useSecondary,
		CountOffset:  countOffset,
	})
}

// AddInlineStruct declares an unnamed sub-struct inlined at offset (spec.md
// §4.3 form 3): the member name equals the sub-struct's own name, and no
// node wrapping occurs beyond what decode_struct itself emits.
func (s *Struct) AddInlineStruct(subStructName string, offset int) {
	s.append(Member{
		Name:          subStructName,
		TypeName:      "struct:" + subStructName,
		Offset:        offset,
		Form:          FormInlineStruct,
		HasCustomName: false,
	})
}

// AddNamedStruct declares a named sub-struct field (spec.md §4.3 form 4,
// first variant): `(name, sub-struct, offset)`.
func (s *Struct) AddNamedStruct(name, subStructName string, offset int) {
	s.append(Member{
		Name:          name,
		TypeName:      "struct:" + subStructName,
		Offset:        offset,
		Form:          FormNamedStruct,
		HasCustomName: true,
	})
}

// AddNullable declares a named nullable-struct field (spec.md §4.3 form 4,
// second variant): `(name, "nullable", target-struct, offset)`.
func (s *Struct) AddNullable(name, targetStructName string, offset int) {
	s.append(Member{
		Name:          name,
		TypeName:      "nullable:" + targetStructName,
		Offset:        offset,
		Form:          FormNamedStruct,
		HasCustomName: true,
	})
}

// StructRegistry interns struct definitions and keeps the backing
// TypeRegistry's derived `struct:Name`/`nullable:Name` aliases in sync.
type StructRegistry struct {
	types   *TypeRegistry
	structs map[string]*Struct
	order   []string // declaration order, for deterministic iteration/validation
}

// NewStructRegistry creates a registry backed by types. types must not be
// nil; the same registry should back every Struct's member type lookups.
func NewStructRegistry(types *TypeRegistry) *StructRegistry {
	return &StructRegistry{types: types, structs: make(map[string]*Struct)}
}

// AddStruct creates an empty struct with the given fixed size and registers
// its derived `struct:Name`/`nullable:Name` types (spec.md §4.3). Calling it
// twice for the same name with the same fixedSize returns the existing
// struct (idempotent, matching the Type Registry's idempotence rule);
// calling it twice with a different fixedSize panics, since that would
// silently change the byte layout every existing reference to the struct
// assumes.
func (r *StructRegistry) AddStruct(name string, fixedSize int) *Struct {
	if existing, ok := r.structs[name]; ok {
		if existing.FixedSize != fixedSize {
			panic("schema: struct " + name + " re-registered with a different fixed size")
		}
		return existing
	}
	s := &Struct{Name: name, FixedSize: fixedSize, byName: make(map[string]int)}
	r.structs[name] = s
	r.order = append(r.order, name)
	r.types.addStructDerivedTypes(name, fixedSize)
	return s
}

// Lookup resolves a struct by name.
func (r *StructRegistry) Lookup(name string) (*Struct, bool) {
	s, ok := r.structs[name]
	return s, ok
}

// Names returns the registered struct names in declaration order, for
// diagnostic listing (cmd/assetdump's schema subcommand).
func (r *StructRegistry) Names() []string {
	return r.order
}

// Types returns the TypeRegistry backing this StructRegistry.
func (r *StructRegistry) Types() *TypeRegistry { return r.types }

// Validate checks the invariant that every member of every struct resolves
// against the Type Registry, and that non-array members with a known size
// fit within their struct's fixed size (spec.md §3 invariants, §8 property
// 1). Array members are only checked for a resolvable element type; their
// offset is not checked against the struct size. It does not
// mutate the registry; callers typically run it once after building a
// schema, analogous to the teacher's Open-time HBIN validation pass.
func (r *StructRegistry) Validate() error {
	for _, name := range r.order {
		s := r.structs[name]
		for _, m := range s.Members {
			typeName := m.TypeName
			if m.Form == FormArray {
				if _, ok := r.types.LookupElement(m.ElementType); !ok {
					return &ValidationError{Struct: s.Name, Member: m.Name, Reason: ErrUnknownType}
				}
				continue
			}
			t, ok := r.types.Lookup(typeName)
			if !ok {
				reason := ErrUnknownType
				if strings.HasPrefix(typeName, "struct:") || strings.HasPrefix(typeName, "nullable:") {
					reason = ErrUnknownStruct
				}
				return &ValidationError{Struct: s.Name, Member: m.Name, Reason: reason}
			}
			if t.Derived == StructKind || t.Derived == Nullable {
				if _, ok := r.structs[t.Target]; !ok {
					return &ValidationError{Struct: s.Name, Member: m.Name, Reason: ErrUnknownStruct}
				}
			}
			size := t.Size
			if size > 0 && !m.UseSecondary && m.Offset+size > s.FixedSize {
				return &ValidationError{Struct: s.Name, Member: m.Name, Reason: ErrMemberOutOfBounds}
			}
		}
	}
	return nil
}

// ValidationError reports which struct/member failed schema validation.
type ValidationError struct {
	Struct string
	Member string
	Reason error
}

func (e *ValidationError) Error() string {
	return "schema: " + e.Struct + "." + e.Member + ": " + e.Reason.Error()
}

func (e *ValidationError) Unwrap() error { return e.Reason }
