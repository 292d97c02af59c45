// Package decoder implements the Decoder Engine (spec.md §4.5): the
// traversal state machine that walks a Struct Registry against a byte
// buffer using the twin-cursor offset model, driving an emit.Emitter.
package decoder

import (
	"fmt"
	"strings"

	"github.com/joshuapare/assetdecode/internal/buf"
	"github.com/joshuapare/assetdecode/internal/cursor"
	"github.com/joshuapare/assetdecode/internal/router"
	"github.com/joshuapare/assetdecode/internal/schema"
	"github.com/joshuapare/assetdecode/pkg/emit"
)

// Decoder holds the state of one in-progress decode. It borrows a Schema
// and Router (process-wide, read-only) and owns its own cursor and
// decode-frame state for the lifetime of a single Decode call; per
// spec.md §5 a Decoder must not be shared across concurrent decodes, but
// distinct Decoders over the same Schema/Router may run concurrently.
type Decoder struct {
	schema *schema.Schema
	router *router.Router
	opts   Options

	cur      *cursor.Cursor
	emitter  emit.Emitter
	filename string

	// Decode-frame state (spec.md §4.5 "State held during one decode").
	// These fields are saved/restored explicitly at every recursion point
	// (decode_struct's own base-offset stack, and the array/nullable
	// sub-protocols' flag save/restore) rather than threaded through
	// return values, per the design note's call to make a stack of
	// explicit DecodeFrame records instead of ad hoc mutable fields -
	// the stack discipline lives in the save/restore helpers below, not
	// in implicit global mutation.
	currentStructBase int
	baseStack         []int
	secondaryMode     bool
	inArrayElement    bool
	inNullable        bool
	processingRoot    bool
	nullableStartOffset int
	arrayElemBase     int

	diag *Diagnostics
}

// New creates a Decoder borrowing s and r. opts controls optional
// diagnostics collection.
func New(s *schema.Schema, r *router.Router, opts Options) *Decoder {
	return &Decoder{schema: s, router: r, opts: opts}
}

// Diagnostics returns the breadcrumb trail recorded by the most recent
// Decode call, or nil if Options.CollectDiagnostics was not set.
func (d *Decoder) Diagnostics() *Diagnostics { return d.diag }

// flagSnapshot is the subset of decode-frame state the array and nullable
// sub-protocols save before recursing and restore afterward.
type flagSnapshot struct {
	secondaryMode       bool
	inArrayElement      bool
	inNullable          bool
	nullableStartOffset int
	arrayElemBase       int
}

func (d *Decoder) snapshotFlags() flagSnapshot {
	return flagSnapshot{
		secondaryMode:       d.secondaryMode,
		inArrayElement:      d.inArrayElement,
		inNullable:          d.inNullable,
		nullableStartOffset: d.nullableStartOffset,
		arrayElemBase:       d.arrayElemBase,
	}
}

func (d *Decoder) restoreFlags(s flagSnapshot) {
	d.secondaryMode = s.secondaryMode
	d.inArrayElement = s.inArrayElement
	d.inNullable = s.inNullable
	d.nullableStartOffset = s.nullableStartOffset
	d.arrayElemBase = s.arrayElemBase
}

// Decode is the entry point (spec.md §4.5 "Entry point"): resolve the
// filename's binding, position the cursors, and decode each root struct in
// turn. No events are emitted at all if the binding lookup fails
// (scenario C).
func (d *Decoder) Decode(data []byte, filename string, emitter emit.Emitter) error {
	if d.opts.CollectDiagnostics {
		d.diag = &Diagnostics{}
	} else {
		d.diag = nil
	}

	binding, err := d.router.Resolve(filename)
	if err != nil {
		return wrapBindingErr(filename, err)
	}

	d.cur = cursor.New(data)
	d.cur.SetPrimary(0)
	d.cur.SetSecondary(binding.InitialSecondaryOffset)
	d.emitter = emitter
	d.filename = filename
	d.baseStack = nil
	d.secondaryMode = false
	d.inArrayElement = false
	d.inNullable = false
	d.nullableStartOffset = 0
	d.arrayElemBase = 0

	emitter.BeginDocument()

	for _, rootName := range binding.RootStructs {
		d.processingRoot = true
		d.currentStructBase = 0
		d.cur.SetPrimary(0)

		emitter.BeginNode(strings.ToLower(rootName))
		err := d.decodeStruct(rootName, nil)
		emitter.EndNode()
		if err != nil {
			return err
		}
	}

	emitter.EndDocument()
	return nil
}

// decodeStruct implements spec.md §4.5's decode_struct: base-offset
// transition, then each member in declaration order.
func (d *Decoder) decodeStruct(name string, arrayIndex *int) error {
	st, ok := d.schema.Structs.Lookup(name)
	if !ok {
		return d.unknownStruct("", "", name)
	}

	previousBase := d.currentStructBase
	if d.secondaryMode {
		d.baseStack = append(d.baseStack, previousBase)
		d.currentStructBase = d.cur.Secondary()
		if !d.inArrayElement {
			d.cur.SetSecondary(d.cur.Secondary() + st.FixedSize)
		}
	}

	structStart := d.cur.Primary()

	var memberErr error
	for _, m := range st.Members {
		if d.inArrayElement {
			d.cur.SetPrimary(structStart)
		}
		d.diag.record(st.Name, m.Name, d.cur.Primary(), d.cur.Secondary())
		if err := d.decodeMember(m, st); err != nil {
			memberErr = err
			break
		}
	}

	if d.secondaryMode {
		n := len(d.baseStack) - 1
		d.currentStructBase = d.baseStack[n]
		d.baseStack = d.baseStack[:n]
	} else {
		d.currentStructBase = previousBase
	}

	return memberErr
}

// stepAPosition implements spec.md §4.5's "Step A" primary-cursor
// positioning table, shared by decode_member and the array/nullable
// sub-protocols (which position their own presence/count/target words the
// same way before diverging into their own logic).
//
// in_nullable is checked ahead of in_array_element: the nullable
// sub-protocol forces in_array_element=true purely to stop decode_struct
// from reserving a second fixed_size block in the secondary region (it
// already reserved one itself), not to redirect member addressing - only
// nullable_start_offset is a meaningful base while in_nullable.
func (d *Decoder) stepAPosition(m schema.Member) int {
	switch {
	case d.secondaryMode && d.inNullable:
		return d.nullableStartOffset + m.Offset
	case d.secondaryMode && d.inArrayElement:
		return d.arrayElemBase + m.Offset
	case d.secondaryMode:
		return d.currentStructBase + m.Offset
	case !d.secondaryMode && m.UseSecondary:
		return m.Offset
	default:
		return d.currentStructBase + m.Offset
	}
}

// decodeMember implements spec.md §4.5's decode_member dispatch.
func (d *Decoder) decodeMember(m schema.Member, parent *schema.Struct) error {
	if m.Form == schema.FormArray {
		return d.decodeArray(m, parent)
	}

	t, ok := d.schema.Types.Lookup(m.TypeName)
	if !ok {
		return d.unknownType(parent.Name, m.Name, m.TypeName)
	}

	switch t.Derived {
	case schema.Nullable:
		return d.decodeNullable(m, parent, t)
	case schema.StructKind:
		return d.decodeStructMember(m, parent, t)
	default:
		return d.decodeScalar(m, parent, t)
	}
}

// decodeStructMember handles an inline or named sub-struct member (spec.md
// §4.5: "Struct — emit begin_node(member.name) if has_custom_name, then
// decode_struct(target) with current_struct_base = primary_cursor").
func (d *Decoder) decodeStructMember(m schema.Member, parent *schema.Struct, t schema.Type) error {
	d.cur.SetPrimary(d.stepAPosition(m))
	d.currentStructBase = d.cur.Primary()

	opened := m.HasCustomName
	if opened {
		d.emitter.BeginNode(m.Name)
	}
	err := d.decodeStruct(t.Target, nil)
	if opened {
		d.emitter.EndNode()
	}
	return err
}

// decodeScalar implements Step B for every non-derived primitive kind.
func (d *Decoder) decodeScalar(m schema.Member, parent *schema.Struct, t schema.Type) error {
	d.cur.SetPrimary(d.stepAPosition(m))

	switch t.Primitive {
	case schema.Bool:
		v, err := d.cur.Bool(cursor.Primary)
		if err != nil {
			return d.wrapCursorErr(err, parent.Name, m.Name)
		}
		d.emitter.Emit(m.Name, emit.Bool(v))

	case schema.Int:
		v, err := d.cur.I32(cursor.Primary)
		if err != nil {
			return d.wrapCursorErr(err, parent.Name, m.Name)
		}
		d.emitter.Emit(m.Name, emit.Int(v))

	case schema.Int16:
		v, err := d.cur.I16(cursor.Primary)
		if err != nil {
			return d.wrapCursorErr(err, parent.Name, m.Name)
		}
		d.emitter.Emit(m.Name, emit.Int16(v))

	case schema.Int64:
		v, err := d.cur.I64(cursor.Primary)
		if err != nil {
			return d.wrapCursorErr(err, parent.Name, m.Name)
		}
		d.emitter.Emit(m.Name, emit.Int64(v))

	case schema.UInt8:
		v, err := d.cur.U8(cursor.Primary)
		if err != nil {
			return d.wrapCursorErr(err, parent.Name, m.Name)
		}
		d.emitter.Emit(m.Name, emit.Uint8(v))

	case schema.UInt16:
		v, err := d.cur.U16(cursor.Primary)
		if err != nil {
			return d.wrapCursorErr(err, parent.Name, m.Name)
		}
		d.emitter.Emit(m.Name, emit.Uint16(v))

	case schema.UInt32:
		v, err := d.cur.U32(cursor.Primary)
		if err != nil {
			return d.wrapCursorErr(err, parent.Name, m.Name)
		}
		d.emitter.Emit(m.Name, emit.Uint32(v))

	case schema.UInt64:
		v, err := d.cur.U64(cursor.Primary)
		if err != nil {
			return d.wrapCursorErr(err, parent.Name, m.Name)
		}
		d.emitter.Emit(m.Name, emit.Uint64(v))

	case schema.Float:
		v, err := d.cur.F32(cursor.Primary)
		if err != nil {
			return d.wrapCursorErr(err, parent.Name, m.Name)
		}
		d.emitter.Emit(m.Name, emit.Float32(v))

	case schema.Enum:
		v, err := d.cur.U32(cursor.Primary)
		if err != nil {
			return d.wrapCursorErr(err, parent.Name, m.Name)
		}
		d.emitter.Emit(m.Name, emit.Uint32(v))

	case schema.Guid:
		return d.decodeGUID(m, parent)

	case schema.Vec2:
		x, err := d.cur.F32(cursor.Primary)
		if err != nil {
			return d.wrapCursorErr(err, parent.Name, m.Name)
		}
		y, err := d.cur.F32(cursor.Primary)
		if err != nil {
			return d.wrapCursorErr(err, parent.Name, m.Name)
		}
		d.emitter.Emit(m.Name, emit.VecValue2(emit.Vec2{X: x, Y: y}))

	case schema.Vec3:
		x, err := d.cur.F32(cursor.Primary)
		if err != nil {
			return d.wrapCursorErr(err, parent.Name, m.Name)
		}
		y, err := d.cur.F32(cursor.Primary)
		if err != nil {
			return d.wrapCursorErr(err, parent.Name, m.Name)
		}
		z, err := d.cur.F32(cursor.Primary)
		if err != nil {
			return d.wrapCursorErr(err, parent.Name, m.Name)
		}
		d.emitter.Emit(m.Name, emit.VecValue3(emit.Vec3{X: x, Y: y, Z: z}))

	case schema.Quat:
		w, err := d.cur.F32(cursor.Primary)
		if err != nil {
			return d.wrapCursorErr(err, parent.Name, m.Name)
		}
		x, err := d.cur.F32(cursor.Primary)
		if err != nil {
			return d.wrapCursorErr(err, parent.Name, m.Name)
		}
		y, err := d.cur.F32(cursor.Primary)
		if err != nil {
			return d.wrapCursorErr(err, parent.Name, m.Name)
		}
		z, err := d.cur.F32(cursor.Primary)
		if err != nil {
			return d.wrapCursorErr(err, parent.Name, m.Name)
		}
		d.emitter.Emit(m.Name, emit.QuatValue(emit.Quat{W: w, X: x, Y: y, Z: z}))

	case schema.Char:
		s, err := d.cur.ReadString(cursor.Primary)
		if err != nil {
			return d.wrapCursorErr(err, parent.Name, m.Name)
		}
		if s == "" || s == "0" {
			return nil
		}
		d.emitter.Emit(m.Name, emit.String(s))

	case schema.CharPtr, schema.Key, schema.Asset, schema.KeyAsset:
		return d.decodeHandleString(m, parent)

	case schema.LocalizedAssetString:
		return d.decodeLocalizedAssetString(m, parent)

	default:
		return d.unknownType(parent.Name, m.Name, m.TypeName)
	}
	return nil
}

// decodeGUID implements spec.md §4.5's GUID read: u32, u16, u16, u64 in
// order, formatted canonically with the u64's high 16 / low 48 bits split
// by a hyphen.
func (d *Decoder) decodeGUID(m schema.Member, parent *schema.Struct) error {
	a, err := d.cur.U32(cursor.Primary)
	if err != nil {
		return d.wrapCursorErr(err, parent.Name, m.Name)
	}
	b, err := d.cur.U16(cursor.Primary)
	if err != nil {
		return d.wrapCursorErr(err, parent.Name, m.Name)
	}
	c, err := d.cur.U16(cursor.Primary)
	if err != nil {
		return d.wrapCursorErr(err, parent.Name, m.Name)
	}
	e, err := d.cur.U64(cursor.Primary)
	if err != nil {
		return d.wrapCursorErr(err, parent.Name, m.Name)
	}
	high16 := uint16(e >> 48)
	low48 := e & 0x0000ffffffffffff
	guid := fmt.Sprintf("%08X-%04X-%04X-%04X-%012X", a, b, c, high16, low48)
	d.emitter.Emit(m.Name, emit.GUIDValue(guid))
	return nil
}

// decodeHandleString implements the CharPtr/Key/Asset/KeyAsset rule:
// 4-byte handle at primary; zero means absent, non-zero reads one string
// from the running secondary cursor.
func (d *Decoder) decodeHandleString(m schema.Member, parent *schema.Struct) error {
	handle, err := d.cur.U32(cursor.Primary)
	if err != nil {
		return d.wrapCursorErr(err, parent.Name, m.Name)
	}
	if handle == 0 {
		return nil
	}
	s, err := d.cur.ReadString(cursor.Secondary)
	if err != nil {
		return d.wrapCursorErr(err, parent.Name, m.Name)
	}
	d.emitter.Emit(m.Name, emit.String(s))
	return nil
}

// decodeLocalizedAssetString implements the two-u32-handle rule: the first
// handle gates presence of the text string, the second an optional id
// string.
func (d *Decoder) decodeLocalizedAssetString(m schema.Member, parent *schema.Struct) error {
	textHandle, err := d.cur.U32(cursor.Primary)
	if err != nil {
		return d.wrapCursorErr(err, parent.Name, m.Name)
	}
	idHandle, err := d.cur.U32(cursor.Primary)
	if err != nil {
		return d.wrapCursorErr(err, parent.Name, m.Name)
	}
	if textHandle == 0 {
		return nil
	}
	text, err := d.cur.ReadString(cursor.Secondary)
	if err != nil {
		return d.wrapCursorErr(err, parent.Name, m.Name)
	}
	if idHandle == 0 {
		d.emitter.Emit(m.Name, emit.String(text))
		return nil
	}
	id, err := d.cur.ReadString(cursor.Secondary)
	if err != nil {
		return d.wrapCursorErr(err, parent.Name, m.Name)
	}
	d.emitter.BeginNode(m.Name)
	d.emitter.Emit("text", emit.String(text))
	d.emitter.Emit("id", emit.String(id))
	d.emitter.EndNode()
	return nil
}

// decodeNullable implements spec.md §4.5.2.
func (d *Decoder) decodeNullable(m schema.Member, parent *schema.Struct, t schema.Type) error {
	d.cur.SetPrimary(d.stepAPosition(m))
	savedPrimary := d.cur.Primary()

	presence, err := d.cur.U32(cursor.Primary)
	if err != nil {
		return d.wrapCursorErr(err, parent.Name, m.Name)
	}
	if presence == 0 {
		d.cur.SetPrimary(savedPrimary + 4)
		return nil
	}

	target, ok := d.schema.Structs.Lookup(t.Target)
	if !ok {
		return d.unknownStruct(parent.Name, m.Name, t.Target)
	}

	saved := d.snapshotFlags()
	d.nullableStartOffset = d.cur.Secondary()
	d.secondaryMode = true
	d.inArrayElement = true
	d.inNullable = true
	d.cur.SetPrimary(d.cur.Secondary())
	d.cur.SetSecondary(d.cur.Secondary() + target.FixedSize)

	d.emitter.BeginNode(m.Name)
	err = d.decodeStruct(t.Target, nil)
	d.emitter.EndNode()

	d.restoreFlags(saved)
	d.cur.SetPrimary(savedPrimary + 4)
	return err
}

// decodeArray implements spec.md §4.5.1.
func (d *Decoder) decodeArray(m schema.Member, parent *schema.Struct) error {
	d.cur.SetPrimary(d.stepAPosition(m))

	presence, err := d.cur.U32(cursor.Primary)
	if err != nil {
		return d.wrapCursorErr(err, parent.Name, m.Name)
	}
	if presence == 0 {
		return nil
	}

	var count uint32
	if m.CountOffset > 0 {
		b, err := d.cur.ReadAt(d.nullableStartOffset+m.Offset+m.CountOffset, 4)
		if err != nil {
			return d.wrapCursorErr(err, parent.Name, m.Name)
		}
		count = buf.U32LE(b)
	} else {
		count, err = d.cur.U32(cursor.Primary)
		if err != nil {
			return d.wrapCursorErr(err, parent.Name, m.Name)
		}
	}

	elemType, ok := d.schema.Types.LookupElement(m.ElementType)
	if !ok {
		return d.unknownType(parent.Name, m.Name, m.ElementType)
	}

	var elementStruct *schema.Struct
	elementSize := elemType.Size
	if elemType.Derived == schema.StructKind {
		elementStruct, ok = d.schema.Structs.Lookup(elemType.Target)
		if !ok {
			return d.unknownStruct(parent.Name, m.Name, elemType.Target)
		}
		elementSize = elementStruct.FixedSize
	}

	elementsInSecondary := !d.inArrayElement && !d.secondaryMode

	var arrayBase int
	if elementsInSecondary {
		arrayBase = d.cur.Secondary()
		d.cur.SetSecondary(d.cur.Secondary() + int(count)*elementSize)
	} else {
		arrayBase = d.cur.Primary()
	}

	d.emitter.BeginArray(m.Name)

	savedInArrayElement := d.inArrayElement
	savedArrayElemBase := d.arrayElemBase
	savedSecondaryMode := d.secondaryMode
	d.inArrayElement = true

	var loopErr error
	for i := 0; i < int(count); i++ {
		d.emitter.BeginArrayEntry()

		elemBase := arrayBase + i*elementSize
		d.arrayElemBase = elemBase

		if elementStruct != nil {
			d.cur.SetPrimary(elemBase)
			if elementsInSecondary {
				d.secondaryMode = true
			}
			idx := i
			loopErr = d.decodeStruct(elementStruct.Name, &idx)
			d.secondaryMode = savedSecondaryMode
		} else {
			d.cur.SetPrimary(elemBase)
			if elementsInSecondary {
				d.secondaryMode = true
			}
			synthetic := schema.Member{Name: "entry", TypeName: m.ElementType, Offset: 0}
			loopErr = d.decodeMember(synthetic, parent)
			d.secondaryMode = savedSecondaryMode
		}

		d.emitter.EndArrayEntry()
		if loopErr != nil {
			break
		}
	}

	d.inArrayElement = savedInArrayElement
	d.arrayElemBase = savedArrayElemBase
	d.emitter.EndArray()

	return loopErr
}
