package decoder_test

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/joshuapare/assetdecode/internal/decoder"
	"github.com/joshuapare/assetdecode/internal/router"
	internalschema "github.com/joshuapare/assetdecode/internal/schema"
	"github.com/joshuapare/assetdecode/pkg/emit"
	"github.com/joshuapare/assetdecode/pkg/schema"
)

// event is one recorded call against a recordingEmitter, flattened to a
// comparable struct so tests can assert an exact event sequence.
type event struct {
	kind string
	name string
	val  emit.Value
}

// recordingEmitter is a spy emit.Emitter: it appends one event per call,
// letting tests assert the exact sequence spec.md §8's scenarios describe.
type recordingEmitter struct {
	events []event
}

func (r *recordingEmitter) BeginDocument() { r.events = append(r.events, event{kind: "begin_document"}) }
func (r *recordingEmitter) EndDocument()   { r.events = append(r.events, event{kind: "end_document"}) }
func (r *recordingEmitter) BeginNode(name string) {
	r.events = append(r.events, event{kind: "begin_node", name: name})
}
func (r *recordingEmitter) EndNode() { r.events = append(r.events, event{kind: "end_node"}) }
func (r *recordingEmitter) BeginArray(name string) {
	r.events = append(r.events, event{kind: "begin_array", name: name})
}
func (r *recordingEmitter) EndArray() { r.events = append(r.events, event{kind: "end_array"}) }
func (r *recordingEmitter) BeginArrayEntry() {
	r.events = append(r.events, event{kind: "begin_array_entry"})
}
func (r *recordingEmitter) EndArrayEntry() {
	r.events = append(r.events, event{kind: "end_array_entry"})
}
func (r *recordingEmitter) Emit(name string, v emit.Value) {
	r.events = append(r.events, event{kind: "emit", name: name, val: v})
}

func (r *recordingEmitter) kinds() []string {
	ks := make([]string, len(r.events))
	for i, e := range r.events {
		ks[i] = e.kind
	}
	return ks
}

func (r *recordingEmitter) names() []string {
	ns := make([]string, len(r.events))
	for i, e := range r.events {
		ns[i] = e.name
	}
	return ns
}

// buildPhaseSchema constructs the Phase / cGambitDefinition schema spec.md
// §8's worked scenarios declare, bound to the ".phase" extension with no
// configured version (a single, version-less binding).
func buildPhaseSchema(t *testing.T) (*internalschema.Schema, *router.Router) {
	t.Helper()
	b := schema.NewBuilder("")
	b.Struct("cGambitDefinition", 52).
		Scalar("condition", "key", 12).
		Scalar("ability", "key", 36).
		Scalar("randomizeCooldown", "bool", 48)
	b.Struct("Phase", 68).
		Array("gambit", "cGambitDefinition", 0, 0).
		Scalar("phaseType", "enum", 4).
		Scalar("startNode", "bool", 12)
	b.BindExtension(".phase", []string{"Phase"}, 68)
	s, r, err := b.Build()
	require.NoError(t, err)
	return s, r
}

func le32(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

func putLe32(buf []byte, offset int, v uint32) {
	binary.LittleEndian.PutUint32(buf[offset:offset+4], v)
}

// Scenario A - empty phase (spec.md §8): array presence word is 0, which
// per the stricter reading emits no begin_array/end_array at all.
func TestScenarioA_EmptyPhase(t *testing.T) {
	s, r := buildPhaseSchema(t)

	buf := make([]byte, 68)
	putLe32(buf, 0, 0)  // gambit presence = 0
	putLe32(buf, 4, 2)  // phaseType = 2
	buf[12] = 1         // startNode = true

	rec := &recordingEmitter{}
	d := New(s, r, Options{})
	err := d.Decode(buf, "test.phase", rec)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"begin_document",
		"begin_node",
		"emit", // phaseType
		"emit", // startNode
		"end_node",
		"end_document",
	}, rec.kinds())
	assert.Equal(t, "phase", rec.events[1].name)
	assert.Equal(t, "phaseType", rec.events[2].name)
	assert.Equal(t, uint32(2), rec.events[2].val.Uint32)
	assert.Equal(t, "startNode", rec.events[3].name)
	assert.Equal(t, true, rec.events[3].val.Bool)
}

// Scenario B - one gambit (spec.md §8): the array element lives in the
// secondary region; the condition handle resolves to a string, the ability
// handle is absent, randomizeCooldown is a plain bool.
//
// This uses a Phase containing only the gambit array (no phaseType/
// startNode): when the array is present, its count word occupies primary
// bytes [4:8) sequentially, which would otherwise collide with the full
// schema's phaseType at the same declared offset. Scenario A (presence=0,
// no count word consumed) exercises the full three-member Phase instead.
func TestScenarioB_OneGambit(t *testing.T) {
	b := schema.NewBuilder("")
	b.Struct("cGambitDefinition", 52).
		Scalar("condition", "key", 12).
		Scalar("ability", "key", 36).
		Scalar("randomizeCooldown", "bool", 48)
	b.Struct("Phase", 68).
		Array("gambit", "cGambitDefinition", 0, 0)
	b.BindExtension(".phase", []string{"Phase"}, 68)
	s, r, err := b.Build()
	require.NoError(t, err)

	const secondaryStart = 68
	const gambitSize = 52
	const stringStart = secondaryStart + gambitSize // 120

	str := "onDeath\x00"
	buf := make([]byte, stringStart+len(str))

	putLe32(buf, 0, 1) // gambit presence = 1
	putLe32(buf, 4, 1) // gambit count = 1

	putLe32(buf, secondaryStart+12, 1) // condition handle = 1 (present)
	putLe32(buf, secondaryStart+36, 0) // ability handle = 0 (absent)
	buf[secondaryStart+48] = 1         // randomizeCooldown = true

	copy(buf[stringStart:], str)

	rec := &recordingEmitter{}
	d := New(s, r, Options{})
	err = d.Decode(buf, "test.phase", rec)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"begin_document",
		"begin_node",
		"begin_array",
		"begin_array_entry",
		"emit", // condition
		"emit", // randomizeCooldown
		"end_array_entry",
		"end_array",
		"end_node",
		"end_document",
	}, rec.kinds())

	assert.Equal(t, "condition", rec.events[4].name)
	assert.Equal(t, "onDeath", rec.events[4].val.String)
	assert.Equal(t, "randomizeCooldown", rec.events[5].name)
	assert.Equal(t, true, rec.events[5].val.Bool)
}

// Scenario C - unknown extension: Decode fails with UnknownBinding and the
// emitter receives no calls at all.
func TestScenarioC_UnknownExtension(t *testing.T) {
	s, r := buildPhaseSchema(t)

	rec := &recordingEmitter{}
	d := New(s, r, Options{})
	err := d.Decode([]byte{1, 2, 3}, "foo.Unknown", rec)

	require.Error(t, err)
	var derr *Error
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, ErrKindBinding, derr.Kind)
	assert.Empty(t, rec.events)
}

// Scenario D - truncated string: a handle's secondary read runs off the end
// of the buffer without a null terminator, surfacing InvalidString after a
// partial event sequence.
func TestScenarioD_TruncatedString(t *testing.T) {
	s, r := buildPhaseSchema(t)

	const secondaryStart = 68
	const gambitSize = 52
	const tailStart = secondaryStart + gambitSize

	buf := make([]byte, tailStart+3) // no null terminator before EOF
	putLe32(buf, 0, 1)
	putLe32(buf, 4, 1)
	putLe32(buf, 8, 2)
	buf[16] = 1

	putLe32(buf, secondaryStart+12, 1) // condition handle present
	putLe32(buf, secondaryStart+36, 0)
	buf[secondaryStart+48] = 1
	copy(buf[tailStart:], []byte("abc")) // never terminated

	rec := &recordingEmitter{}
	d := New(s, r, Options{})
	err := d.Decode(buf, "test.phase", rec)

	require.Error(t, err)
	var derr *Error
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, ErrKindString, derr.Kind)

	// Every opened begin_array_entry/begin_array/begin_node closes even on
	// the failure path (property 4); only end_document never fires, since
	// Decode returns before reaching it.
	assert.Equal(t, []string{
		"begin_document",
		"begin_node",
		"begin_array",
		"begin_array_entry",
		"end_array_entry",
		"end_array",
		"end_node",
	}, rec.kinds())
}

// Scenario E - nullable absent then present: presence=0 emits nothing and
// leaves the primary cursor at saved_primary+4 (property 8); presence=1
// wraps the target struct's fields in a begin_node/end_node pair.
func TestScenarioE_NullableAbsentThenPresent(t *testing.T) {
	b := schema.NewBuilder("")
	b.Struct("doorDef", 8).
		Scalar("locked", "bool", 0)
	b.Struct("root", 8).
		Nullable("door", "doorDef", 0)
	b.BindExtension(".root", []string{"root"}, 8)
	s, r, err := b.Build()
	require.NoError(t, err)

	t.Run("absent", func(t *testing.T) {
		buf := make([]byte, 8)
		putLe32(buf, 0, 0) // presence = 0

		rec := &recordingEmitter{}
		d := New(s, r, Options{})
		err := d.Decode(buf, "test.root", rec)
		require.NoError(t, err)

		assert.Equal(t, []string{"begin_document", "begin_node", "end_node", "end_document"}, rec.kinds())
	})

	t.Run("present", func(t *testing.T) {
		buf := make([]byte, 16)
		putLe32(buf, 0, 1) // presence = 1
		buf[8] = 1         // doorDef.locked at secondary offset 8 (root fixed size)

		rec := &recordingEmitter{}
		d := New(s, r, Options{})
		err := d.Decode(buf, "test.root", rec)
		require.NoError(t, err)

		assert.Equal(t, []string{
			"begin_document",
			"begin_node", // root
			"begin_node", // door
			"emit",       // locked
			"end_node",   // door
			"end_node",   // root
			"end_document",
		}, rec.kinds())
		assert.Equal(t, "door", rec.events[2].name)
		assert.Equal(t, "locked", rec.events[3].name)
		assert.Equal(t, true, rec.events[3].val.Bool)
	})
}

// Scenario F - version selection: a binding whose only version entry is
// "1.0" is still used when the router's configured version is a newer
// literal that doesn't match it, falling back to the first declared entry.
func TestScenarioF_VersionSelectionFallback(t *testing.T) {
	b := schema.NewBuilder("5.3.0.103")
	b.Struct("root", 4).
		Scalar("value", "int", 0)
	b.BindVersionedExtension(".dat", "1.0", []string{"root"}, 4)
	s, r, err := b.Build()
	require.NoError(t, err)

	buf := le32(42)
	rec := &recordingEmitter{}
	d := New(s, r, Options{})
	decErr := d.Decode(buf, "test.dat", rec)
	require.NoError(t, decErr)

	assert.Equal(t, []string{"begin_document", "begin_node", "emit", "end_node", "end_document"}, rec.kinds())
	assert.Equal(t, int32(42), rec.events[2].val.Int)
}

// Property 9: handle-to-string with a zero offset word emits no event.
func TestHandleStringZeroEmitsNothing(t *testing.T) {
	b := schema.NewBuilder("")
	b.Struct("root", 4).
		Scalar("name", "key", 0)
	b.BindExtension(".root", []string{"root"}, 4)
	s, r, err := b.Build()
	require.NoError(t, err)

	buf := make([]byte, 4)
	putLe32(buf, 0, 0) // handle = 0

	rec := &recordingEmitter{}
	d := New(s, r, Options{})
	decErr := d.Decode(buf, "test.root", rec)
	require.NoError(t, decErr)

	assert.Equal(t, []string{"begin_document", "begin_node", "end_node", "end_document"}, rec.kinds())
}

// Property 10: count_offset > 0 reads the element count from the sideband
// position rather than the word immediately following presence.
func TestArrayCountOffsetReadsSideband(t *testing.T) {
	b := schema.NewBuilder("")
	b.Struct("elem", 4).
		Scalar("v", "int", 0)
	b.Struct("root", 12).
		Array("items", "elem", 0, 8) // count lives at struct offset 8, not offset 4
	b.BindExtension(".root", []string{"root"}, 12)
	s, r, err := b.Build()
	require.NoError(t, err)

	buf := make([]byte, 12+2*4)
	putLe32(buf, 0, 1)  // presence
	putLe32(buf, 4, 99) // a decoy word at the "normal" count position
	putLe32(buf, 8, 2)  // real count, at count_offset=8
	putLe32(buf, 12, 7) // elem[0].v
	putLe32(buf, 16, 8) // elem[1].v

	rec := &recordingEmitter{}
	d := New(s, r, Options{})
	decErr := d.Decode(buf, "test.root", rec)
	require.NoError(t, decErr)

	var emits []event
	for _, e := range rec.events {
		if e.kind == "emit" {
			emits = append(emits, e)
		}
	}
	require.Len(t, emits, 2)
	assert.Equal(t, int32(7), emits[0].val.Int)
	assert.Equal(t, int32(8), emits[1].val.Int)
}

// Property 11: extensions and exact filenames match case-insensitively.
func TestBindingMatchIsCaseInsensitive(t *testing.T) {
	s, r := buildPhaseSchema(t)

	buf := make([]byte, 68)
	putLe32(buf, 4, 2)
	buf[12] = 1

	rec := &recordingEmitter{}
	d := New(s, r, Options{})
	err := d.Decode(buf, "weird.PHASE", rec)
	require.NoError(t, err)
	assert.NotEmpty(t, rec.events)
}
