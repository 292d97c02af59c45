package router

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveByExtensionCaseInsensitive(t *testing.T) {
	r := New("5.3.0.103")
	r.AddExtensionBinding(".phase", FileBinding{RootStructs: []string{"Phase"}, InitialSecondaryOffset: 68})

	b, err := r.Resolve("something.Phase")
	require.NoError(t, err)
	require.Equal(t, []string{"Phase"}, b.RootStructs)
	require.Equal(t, 68, b.InitialSecondaryOffset)
}

func TestResolveByExactNameFallback(t *testing.T) {
	r := New("")
	r.AddExactNameBinding("gameconfig.bin", FileBinding{RootStructs: []string{"GameConfig"}})

	b, err := r.Resolve("GameConfig.BIN")
	require.NoError(t, err)
	require.Equal(t, []string{"GameConfig"}, b.RootStructs)
}

func TestResolveExtensionTakesPriorityOverExactName(t *testing.T) {
	r := New("")
	r.AddExtensionBinding(".noun", FileBinding{RootStructs: []string{"ByExtension"}})
	r.AddExactNameBinding("creature.noun", FileBinding{RootStructs: []string{"ByExactName"}})

	b, err := r.Resolve("creature.noun")
	require.NoError(t, err)
	require.Equal(t, []string{"ByExtension"}, b.RootStructs)
}

func TestResolveUnknownExtension(t *testing.T) {
	r := New("")
	r.AddExtensionBinding(".phase", FileBinding{RootStructs: []string{"Phase"}})

	_, err := r.Resolve("foo.Unknown")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrUnknownBinding))
}

// TestVersionFallbackToFirstEntry implements spec.md scenario F: a schema
// configured for version "5.3.0.103" with a binding whose only version
// entry is "1.0" still uses that binding (fallback to the first entry).
func TestVersionFallbackToFirstEntry(t *testing.T) {
	r := New("5.3.0.103")
	r.AddVersionedExtensionBinding(".noun", "1.0", FileBinding{RootStructs: []string{"Noun"}})

	b, err := r.Resolve("creature.noun")
	require.NoError(t, err)
	require.Equal(t, []string{"Noun"}, b.RootStructs)
}

func TestVersionSelectsMatchingConstraint(t *testing.T) {
	r := New("5.3.0")
	r.AddVersionedExtensionBinding(".noun", "<5.0.0", FileBinding{RootStructs: []string{"OldNoun"}})
	r.AddVersionedExtensionBinding(".noun", ">=5.0.0", FileBinding{RootStructs: []string{"NewNoun"}})

	b, err := r.Resolve("creature.noun")
	require.NoError(t, err)
	require.Equal(t, []string{"NewNoun"}, b.RootStructs)
}
