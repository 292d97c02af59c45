package assetdecode

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/assetdecode/pkg/emit"
	"github.com/joshuapare/assetdecode/pkg/schema"
)

type captureEmitter struct {
	values map[string]emit.Value
}

func newCaptureEmitter() *captureEmitter { return &captureEmitter{values: map[string]emit.Value{}} }

func (c *captureEmitter) BeginDocument()        {}
func (c *captureEmitter) EndDocument()          {}
func (c *captureEmitter) BeginNode(string)      {}
func (c *captureEmitter) EndNode()              {}
func (c *captureEmitter) BeginArray(string)     {}
func (c *captureEmitter) EndArray()             {}
func (c *captureEmitter) BeginArrayEntry()      {}
func (c *captureEmitter) EndArrayEntry()        {}
func (c *captureEmitter) Emit(name string, v emit.Value) { c.values[name] = v }

func TestDecodeSucceedsAndReturnsNoError(t *testing.T) {
	b := schema.NewBuilder("")
	b.Struct("root", 4).Scalar("value", "int", 0)
	b.BindExtension(".root", []string{"root"}, 4)
	s, r, err := b.Build()
	require.NoError(t, err)

	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, 7)

	e := newCaptureEmitter()
	res := Decode(s, r, buf, "test.root", e, Options{})

	require.True(t, res.OK)
	require.NoError(t, res.Err)
	assert.Equal(t, int32(7), e.values["value"].Int)
}

func TestDecodeBindingFailureReturnsEmptyTrail(t *testing.T) {
	b := schema.NewBuilder("")
	b.Struct("root", 4).Scalar("value", "int", 0)
	b.BindExtension(".root", []string{"root"}, 4)
	s, r, err := b.Build()
	require.NoError(t, err)

	e := newCaptureEmitter()
	res := Decode(s, r, []byte{}, "missing.other", e, Options{CollectDiagnostics: true})

	assert.False(t, res.OK)
	require.Error(t, res.Err)
	assert.Empty(t, res.Trail)
}
