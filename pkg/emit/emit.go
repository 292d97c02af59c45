// Package emit defines the Emitter capability interface (spec.md §4.5/§6):
// the passive sink a Decoder Engine drives with document/node/array/value
// events. It mirrors the teacher's pkg/types.Reader capability-set pattern
// but for an output sink instead of an input source.
package emit

import "fmt"

// Kind enumerates the value shapes an Emitter can receive through Emit.
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindInt16
	KindInt64
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindVec2
	KindVec3
	KindQuat
	KindGUID
	KindString
)

// Vec2 is a two-component float vector.
type Vec2 struct{ X, Y float32 }

// Vec3 is a three-component float vector.
type Vec3 struct{ X, Y, Z float32 }

// Quat is a quaternion in w, x, y, z declaration order, matching spec.md
// §4.5's "Quat field order is w, x, y, z".
type Quat struct{ W, X, Y, Z float32 }

// Value is the sum type carried by Emit: exactly one of the typed fields is
// meaningful, selected by Kind. This mirrors the design note's "value is a
// sum type over {bool, i*, u*, f32, vec2, vec3, quat, guid, string}".
type Value struct {
	Kind Kind

	Bool    bool
	Int     int32
	Int16   int16
	Int64   int64
	Uint8   uint8
	Uint16  uint16
	Uint32  uint32
	Uint64  uint64
	Float32 float32
	Vec2    Vec2
	Vec3    Vec3
	Quat    Quat
	GUID    string
	String  string
}

// Bool builds a bool Value.
func Bool(v bool) Value { return Value{Kind: KindBool, Bool: v} }

// Int builds a 32-bit signed int Value.
func Int(v int32) Value { return Value{Kind: KindInt, Int: v} }

// Int16 builds an int16 Value.
func Int16(v int16) Value { return Value{Kind: KindInt16, Int16: v} }

// Int64 builds an int64 Value.
func Int64(v int64) Value { return Value{Kind: KindInt64, Int64: v} }

// Uint8 builds a uint8 Value.
func Uint8(v uint8) Value { return Value{Kind: KindUint8, Uint8: v} }

// Uint16 builds a uint16 Value.
func Uint16(v uint16) Value { return Value{Kind: KindUint16, Uint16: v} }

// Uint32 builds a uint32 Value, used for enum members too (spec.md's Enum
// primitive shares uint32's 4-byte little-endian representation).
func Uint32(v uint32) Value { return Value{Kind: KindUint32, Uint32: v} }

// Uint64 builds a uint64 Value.
func Uint64(v uint64) Value { return Value{Kind: KindUint64, Uint64: v} }

// Float32 builds a float32 Value.
func Float32(v float32) Value { return Value{Kind: KindFloat32, Float32: v} }

// VecValue2 builds a Vec2 Value.
func VecValue2(v Vec2) Value { return Value{Kind: KindVec2, Vec2: v} }

// VecValue3 builds a Vec3 Value.
func VecValue3(v Vec3) Value { return Value{Kind: KindVec3, Vec3: v} }

// QuatValue builds a Quat Value.
func QuatValue(v Quat) Value { return Value{Kind: KindQuat, Quat: v} }

// GUIDValue builds a string-formatted GUID Value. s is expected to already be
// in canonical `XXXXXXXX-XXXX-XXXX-XXXX-XXXXXXXXXXXX` form.
func GUIDValue(s string) Value { return Value{Kind: KindGUID, GUID: s} }

// String builds a string Value.
func String(v string) Value { return Value{Kind: KindString, String: v} }

// Text renders a Value for diagnostic/text-dump use; concrete emitters are
// free to format Values their own way instead of relying on this.
func (v Value) Text() string {
	switch v.Kind {
	case KindBool:
		return fmt.Sprintf("%v", v.Bool)
	case KindInt:
		return fmt.Sprintf("%d", v.Int)
	case KindInt16:
		return fmt.Sprintf("%d", v.Int16)
	case KindInt64:
		return fmt.Sprintf("%d", v.Int64)
	case KindUint8:
		return fmt.Sprintf("%d", v.Uint8)
	case KindUint16:
		return fmt.Sprintf("%d", v.Uint16)
	case KindUint32:
		return fmt.Sprintf("%d", v.Uint32)
	case KindUint64:
		return fmt.Sprintf("%d", v.Uint64)
	case KindFloat32:
		return fmt.Sprintf("%g", v.Float32)
	case KindVec2:
		return fmt.Sprintf("(%g, %g)", v.Vec2.X, v.Vec2.Y)
	case KindVec3:
		return fmt.Sprintf("(%g, %g, %g)", v.Vec3.X, v.Vec3.Y, v.Vec3.Z)
	case KindQuat:
		return fmt.Sprintf("(%g, %g, %g, %g)", v.Quat.W, v.Quat.X, v.Quat.Y, v.Quat.Z)
	case KindGUID:
		return v.GUID
	case KindString:
		return v.String
	default:
		return fmt.Sprintf("Value(kind=%d)", int(v.Kind))
	}
}

// Emitter is the passive sink a Decoder Engine drives (spec.md §4.5/§6).
// Implementations must tolerate a stream that aborts mid-way after any
// decode failure: every opened BeginNode/BeginArray/BeginArrayEntry is
// guaranteed a matching End call before the decoder returns, on both the
// success and failure paths, but EndDocument is only called on success.
type Emitter interface {
	BeginDocument()
	EndDocument()

	BeginNode(name string)
	EndNode()

	BeginArray(name string)
	EndArray()

	BeginArrayEntry()
	EndArrayEntry()

	Emit(name string, v Value)
}
