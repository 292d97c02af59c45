package emit

import (
	"bytes"
	"encoding/json"
	"io"
)

// field is one name/value pair of an object frame, kept in declaration
// order so JSONEmitter's output mirrors the member declaration order the
// decoder walks in (spec.md §5's ordering guarantee), the same concern the
// teacher's jsonKey struct addresses by using fixed fields instead of a map.
type field struct {
	name  string
	value any
}

// object is an ordered JSON object, marshaled by hand to preserve field
// order (encoding/json's map[string]any would sort keys alphabetically).
type object struct {
	fields []field
}

func (o *object) set(name string, v any) {
	o.fields = append(o.fields, field{name: name, value: v})
}

func (o *object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range o.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(f.value)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// frame is one level of nesting being built: either an object (node /
// array entry / document root) or an array of values collected under one
// array member.
type frame struct {
	isArray bool
	name    string // the name this frame will be attached under in its parent
	obj     *object
	arr     []any
}

// JSONEmitter accumulates the event stream into an ordered in-memory tree
// and marshals it on EndDocument, since JSON (unlike TextEmitter's line
// stream) needs the whole structure before it can write a single
// well-formed value.
type JSONEmitter struct {
	w      io.Writer
	stack  []*frame
	indent string
}

// NewJSONEmitter creates a JSONEmitter writing one indented JSON document
// to w when EndDocument is called.
func NewJSONEmitter(w io.Writer) *JSONEmitter {
	return &JSONEmitter{w: w, indent: "  "}
}

func (e *JSONEmitter) top() *frame { return e.stack[len(e.stack)-1] }

func (e *JSONEmitter) push(f *frame) { e.stack = append(e.stack, f) }

func (e *JSONEmitter) pop() *frame {
	f := e.top()
	e.stack = e.stack[:len(e.stack)-1]
	return f
}

// attach places a completed child value into whatever frame is now on top
// of the stack: an object frame gets it under name, an array frame just
// appends it.
func (e *JSONEmitter) attach(name string, v any) {
	if len(e.stack) == 0 {
		return
	}
	parent := e.top()
	if parent.isArray {
		parent.arr = append(parent.arr, v)
	} else {
		parent.obj.set(name, v)
	}
}

func (e *JSONEmitter) BeginDocument() {
	e.stack = nil
	e.push(&frame{obj: &object{}})
}

func (e *JSONEmitter) EndDocument() {
	root := e.pop()
	data, err := json.MarshalIndent(root.obj, "", e.indent)
	if err != nil {
		return
	}
	e.w.Write(data)
	e.w.Write([]byte("\n"))
}

func (e *JSONEmitter) BeginNode(name string) {
	e.push(&frame{name: name, obj: &object{}})
}

func (e *JSONEmitter) EndNode() {
	f := e.pop()
	e.attach(f.name, f.obj)
}

func (e *JSONEmitter) BeginArray(name string) {
	e.push(&frame{isArray: true, name: name})
}

func (e *JSONEmitter) EndArray() {
	f := e.pop()
	arr := f.arr
	if arr == nil {
		arr = []any{}
	}
	e.attach(f.name, arr)
}

func (e *JSONEmitter) BeginArrayEntry() {
	e.push(&frame{obj: &object{}})
}

func (e *JSONEmitter) EndArrayEntry() {
	f := e.pop()
	e.attach("", f.obj)
}

func (e *JSONEmitter) Emit(name string, v Value) {
	e.attach(name, jsonValueOf(v))
}

// jsonValueOf converts a Value into something encoding/json can marshal
// directly.
func jsonValueOf(v Value) any {
	switch v.Kind {
	case KindBool:
		return v.Bool
	case KindInt:
		return v.Int
	case KindInt16:
		return v.Int16
	case KindInt64:
		return v.Int64
	case KindUint8:
		return v.Uint8
	case KindUint16:
		return v.Uint16
	case KindUint32:
		return v.Uint32
	case KindUint64:
		return v.Uint64
	case KindFloat32:
		return v.Float32
	case KindVec2:
		return []float32{v.Vec2.X, v.Vec2.Y}
	case KindVec3:
		return []float32{v.Vec3.X, v.Vec3.Y, v.Vec3.Z}
	case KindQuat:
		return []float32{v.Quat.W, v.Quat.X, v.Quat.Y, v.Quat.Z}
	case KindGUID:
		return v.GUID
	case KindString:
		return v.String
	default:
		return v.Text()
	}
}
