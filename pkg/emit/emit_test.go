package emit

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextEmitterIndentsNestedNodes(t *testing.T) {
	var buf bytes.Buffer
	e := NewTextEmitter(&buf, DefaultTextOptions())

	e.BeginDocument()
	e.BeginNode("phase")
	e.Emit("phaseType", Uint32(2))
	e.BeginArray("gambit")
	e.BeginArrayEntry()
	e.Emit("condition", String("onDeath"))
	e.EndArrayEntry()
	e.EndArray()
	e.EndNode()
	e.EndDocument()

	want := "phase:\n" +
		"  phaseType = 2\n" +
		"  gambit: [\n" +
		"    -\n" +
		"      condition = onDeath\n" +
		"  ]\n"
	assert.Equal(t, want, buf.String())
}

func TestJSONEmitterPreservesDeclarationOrder(t *testing.T) {
	var buf bytes.Buffer
	e := NewJSONEmitter(&buf)

	e.BeginDocument()
	e.BeginNode("phase")
	e.Emit("zeta", Int(1))
	e.Emit("alpha", Int(2))
	e.EndNode()
	e.EndDocument()

	// A map-backed encoder would alphabetize alpha before zeta; asserting
	// the raw byte order confirms object.MarshalJSON preserves emission
	// order instead.
	out := buf.String()
	zetaIdx := indexOf(out, `"zeta"`)
	alphaIdx := indexOf(out, `"alpha"`)
	require.GreaterOrEqual(t, zetaIdx, 0)
	require.GreaterOrEqual(t, alphaIdx, 0)
	assert.Less(t, zetaIdx, alphaIdx)
}

func TestJSONEmitterArrayEntriesAreObjects(t *testing.T) {
	var buf bytes.Buffer
	e := NewJSONEmitter(&buf)

	e.BeginDocument()
	e.BeginNode("phase")
	e.BeginArray("gambit")
	e.BeginArrayEntry()
	e.Emit("condition", String("onDeath"))
	e.EndArrayEntry()
	e.EndArray()
	e.EndNode()
	e.EndDocument()

	assert.Contains(t, buf.String(), `"condition": "onDeath"`)
	assert.Contains(t, buf.String(), `"gambit"`)
}

func TestDefaultRegistryResolvesTextAndJSON(t *testing.T) {
	reg := DefaultRegistry()

	var buf bytes.Buffer
	textEmitter, err := reg.New("text", &buf)
	require.NoError(t, err)
	_, ok := textEmitter.(*TextEmitter)
	assert.True(t, ok)

	jsonEmitter, err := reg.New("json", &buf)
	require.NoError(t, err)
	_, ok = jsonEmitter.(*JSONEmitter)
	assert.True(t, ok)

	_, err = reg.New("yaml", &buf)
	assert.Error(t, err)
}

func TestRegistryNamesIncludesRegistered(t *testing.T) {
	names := DefaultRegistry().Names()
	assert.Contains(t, names, "text")
	assert.Contains(t, names, "json")
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}
