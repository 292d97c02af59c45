package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/assetdecode/internal/decoder"
)

func TestBuilderBuildsValidSchema(t *testing.T) {
	b := NewBuilder("1.0.0")
	b.Struct("leaf", 4).
		Scalar("v", "int", 0)
	b.Struct("root", 4).
		NamedStruct("child", "leaf", 0)
	b.BindExtension(".root", []string{"root"}, 4)

	s, r, err := b.Build()
	require.NoError(t, err)
	require.NotNil(t, s)
	require.NotNil(t, r)

	_, ok := s.Structs.Lookup("root")
	assert.True(t, ok)
}

func TestBuilderBuildSurfacesValidationAsSchemaError(t *testing.T) {
	b := NewBuilder("")
	// "child" refers to struct "missing", which is never declared, so
	// validation must fail.
	b.Struct("root", 4).
		NamedStruct("child", "missing", 0)
	b.BindExtension(".root", []string{"root"}, 4)

	_, _, err := b.Build()
	require.Error(t, err)

	var derr *decoder.Error
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, decoder.ErrKindSchema, derr.Kind)
	assert.Equal(t, "root", derr.Struct)
	assert.Equal(t, "child", derr.Member)
}
