package schema

import "fmt"

// PrimitiveKind enumerates the primitive wire kinds a Type can carry. It
// mirrors Game::DataType in the original C++ decoder (AssetCatalog.h) one
// for one, renamed to Go conventions.
type PrimitiveKind int

const (
	Bool PrimitiveKind = iota
	Int
	Int16
	Int64
	UInt8
	UInt16
	UInt32
	UInt64
	Float
	Guid
	Vec2
	Vec3
	Quat
	LocalizedAssetString
	Char
	CharPtr
	Key
	Asset
	KeyAsset
	Enum
)

func (k PrimitiveKind) String() string {
	switch k {
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Int16:
		return "int16"
	case Int64:
		return "int64"
	case UInt8:
		return "uint8"
	case UInt16:
		return "uint16"
	case UInt32:
		return "uint32"
	case UInt64:
		return "uint64"
	case Float:
		return "float"
	case Guid:
		return "guid"
	case Vec2:
		return "vec2"
	case Vec3:
		return "vec3"
	case Quat:
		return "quat"
	case LocalizedAssetString:
		return "localizedAssetString"
	case Char:
		return "char"
	case CharPtr:
		return "charPtr"
	case Key:
		return "key"
	case Asset:
		return "asset"
	case KeyAsset:
		return "keyAsset"
	case Enum:
		return "enum"
	default:
		return fmt.Sprintf("PrimitiveKind(%d)", int(k))
	}
}

// primitiveSize returns the number of bytes a primary-region read of kind k
// consumes. Zero means variable length (Char is an inline null-terminated
// string). For LocalizedAssetString and the handle kinds the size is the
// handle footprint only (two u32 handles, or one); their string payloads
// are read from the secondary region and are not counted.
func primitiveSize(k PrimitiveKind) int {
	switch k {
	case Bool, UInt8:
		return 1
	case Int16, UInt16:
		return 2
	case Int, UInt32, Float, Enum:
		return 4
	case Int64, UInt64:
		return 8
	case Guid:
		return 16
	case Vec2:
		return 8
	case Vec3:
		return 12
	case Quat:
		return 16
	case LocalizedAssetString:
		return 8 // two consecutive u32 handles
	case CharPtr, Key, Asset, KeyAsset:
		return 4 // a single handle
	case Char:
		return 0 // inline, variable length
	default:
		return 0
	}
}

// DerivedKind enumerates the three ways a type can be built out of another.
type DerivedKind int

const (
	// NotDerived marks a Type that is a primitive, not a derived alias.
	NotDerived DerivedKind = iota
	Nullable
	Array
	StructKind
)

// Type is an interned, named entry in the Type Registry: either a primitive
// or a derived alias (`nullable:T`, `array:E`, `struct:S`).
type Type struct {
	Name    string
	Derived DerivedKind

	// Primitive is only meaningful when Derived == NotDerived.
	Primitive PrimitiveKind

	// Target names the type this one wraps: the element type for Array, the
	// struct name for Nullable and StructKind.
	Target string

	// Size is the byte footprint of a primary-region occurrence of this type:
	// 4 for Nullable/Array handles, the struct's fixed size for StructKind,
	// primitiveSize(Primitive) otherwise.
	Size int
}

// IsHandle reports whether decoding this type's primary-region presence is a
// 4-byte handle followed by secondary-region payload, as opposed to an
// inline scalar.
func (t Type) IsHandle() bool {
	switch {
	case t.Derived == Nullable, t.Derived == Array:
		return true
	case t.Derived == NotDerived:
		switch t.Primitive {
		case CharPtr, Key, Asset, KeyAsset, LocalizedAssetString:
			return true
		}
	}
	return false
}

// TypeRegistry interns primitive and derived types by name. Registering the
// same name twice with identical contents is idempotent, matching spec.md
// §4.2 ("Registering a type twice with the same name is idempotent").
type TypeRegistry struct {
	byName map[string]Type
}

// NewTypeRegistry creates an empty registry. Use DefaultTypeRegistry to get
// one pre-populated with all spec primitives.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{byName: make(map[string]Type)}
}

// DefaultTypeRegistry returns a TypeRegistry with every primitive kind listed
// in spec.md §3 registered under its canonical lowercase name.
func DefaultTypeRegistry() *TypeRegistry {
	r := NewTypeRegistry()
	for k := Bool; k <= Enum; k++ {
		r.AddPrimitive(k.String(), k)
	}
	return r
}

// AddPrimitive interns a primitive type under name. Re-adding the same name
// with the same kind is a no-op; re-adding with a different kind panics,
// since that would silently change the meaning of every struct member that
// already references the name (a build-time bug, not a runtime error per
// spec.md §7's "internal asserts ... are bugs, not runtime errors").
func (r *TypeRegistry) AddPrimitive(name string, kind PrimitiveKind) {
	if existing, ok := r.byName[name]; ok {
		if existing.Derived == NotDerived && existing.Primitive == kind {
			return
		}
		panic(fmt.Sprintf("schema: type %q re-registered with a different definition", name))
	}
	r.byName[name] = Type{Name: name, Derived: NotDerived, Primitive: kind, Size: primitiveSize(kind)}
}

// AddArrayType interns `array:elem` with the given per-element size.
func (r *TypeRegistry) AddArrayType(elem string, elementSize int) Type {
	name := "array:" + elem
	if existing, ok := r.byName[name]; ok {
		return existing
	}
	t := Type{Name: name, Derived: Array, Target: elem, Size: 4}
	r.byName[name] = t
	_ = elementSize // not stored: the decoder takes the element size from the element type itself
	return t
}

// addStructDerivedTypes is called by StructRegistry.AddStruct to register the
// implicit `struct:Name` and `nullable:Name` aliases (spec.md §4.3).
func (r *TypeRegistry) addStructDerivedTypes(structName string, fixedSize int) {
	sName := "struct:" + structName
	if _, ok := r.byName[sName]; !ok {
		r.byName[sName] = Type{Name: sName, Derived: StructKind, Target: structName, Size: fixedSize}
	}
	nName := "nullable:" + structName
	if _, ok := r.byName[nName]; !ok {
		r.byName[nName] = Type{Name: nName, Derived: Nullable, Target: structName, Size: 4}
	}
}

// Lookup resolves a type name. ok is false if the name has never been
// registered.
func (r *TypeRegistry) Lookup(name string) (Type, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// LookupElement resolves an array member's element type name (spec.md
// §4.3 form 2). Element types are commonly given as a bare struct name
// (catalog.go's Array("gambit", "cGambitDefinition", ...)), but AddStruct
// only interns the prefixed struct:Name/nullable:Name aliases - so a name
// that doesn't resolve directly is retried as struct:name before failing.
func (r *TypeRegistry) LookupElement(name string) (Type, bool) {
	if t, ok := r.byName[name]; ok {
		return t, true
	}
	if t, ok := r.byName["struct:"+name]; ok {
		return t, true
	}
	return Type{}, false
}
