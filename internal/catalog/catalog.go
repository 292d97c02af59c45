// Package catalog is a hardcoded schema registration, the Go analogue of
// original_source's Game::AssetCatalog constructor building up its
// TypeDefinition/struct tables in code rather than from a config file
// (spec.md's core explicitly treats "a pre-built schema" as an input, not
// something the core itself loads). cmd/assetdump uses this catalog as its
// built-in demo schema; a production deployment would supply its own.
package catalog

import (
	internalschema "github.com/joshuapare/assetdecode/internal/schema"
	"github.com/joshuapare/assetdecode/internal/router"
	"github.com/joshuapare/assetdecode/pkg/schema"
)

// Version is the catalog's configured schema version, used for
// version-keyed file binding resolution (spec.md §4.4/§6).
const Version = "5.3.0"

// Build registers the Phase / cGambitDefinition schema used throughout
// spec.md §8's worked scenarios and returns the validated Schema/Router
// pair ready for a decoder.
func Build() (*internalschema.Schema, *router.Router, error) {
	b := schema.NewBuilder(Version)

	b.Struct("cGambitDefinition", 52).
		Scalar("condition", "key", 12).
		Scalar("ability", "key", 36).
		Scalar("randomizeCooldown", "bool", 48)

	b.Struct("Phase", 68).
		Array("gambit", "cGambitDefinition", 0, 0).
		Scalar("phaseType", "enum", 4).
		Scalar("startNode", "bool", 12)

	b.BindExtension(".phase", []string{"Phase"}, 68)

	return b.Build()
}
