// Package router implements the File-Type Router (spec.md §4.4): resolving a
// logical filename to the ordered list of root struct names to decode and
// the secondary cursor's starting offset.
package router

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ErrUnknownBinding is returned by Resolve when neither the extension map nor
// the exact-name map has an entry for the given filename (spec.md §7).
var ErrUnknownBinding = errors.New("router: no file binding for filename")

// FileBinding is the resolved decode plan for one file: the ordered root
// struct names to decode and the secondary cursor's initial offset.
type FileBinding struct {
	RootStructs            []string
	InitialSecondaryOffset int
}

// versionEntry pairs a version constraint with the binding it selects.
// Version is matched against the Router's configured version using
// semver.Constraints when it parses as one, and is also compared for exact
// string equality with the configured version. A route with a single entry
// (the spec's scenario F, whose only version entry is "1.0") resolves to
// that entry without any version comparison.
type versionEntry struct {
	version string
	binding FileBinding
}

// route is everything registered under one extension or exact filename key:
// at least one version entry, matched in declaration order.
type route struct {
	versions []versionEntry
}

// Router holds the extension and exact-name maps plus the schema's current
// version string used to pick among version-keyed bindings.
type Router struct {
	byExtension map[string]*route // key includes the leading dot, lowercased
	byExactName map[string]*route // lowercased basename
	version     string
}

// New creates an empty Router. version is the schema's configured version
// string (spec.md §4.4/§6); pass "" if the schema has no version-keyed
// bindings.
func New(version string) *Router {
	return &Router{
		byExtension: make(map[string]*route),
		byExactName: make(map[string]*route),
		version:     version,
	}
}

// AddExtensionBinding registers a single, version-less binding for
// extension (case-insensitive, must include the leading dot).
func (r *Router) AddExtensionBinding(extension string, binding FileBinding) {
	r.AddVersionedExtensionBinding(extension, "", binding)
}

// AddVersionedExtensionBinding registers a binding for extension under the
// given version key. Calling this multiple times for the same extension with
// different version keys builds a version-keyed route; resolution picks the
// first whose version satisfies the Router's configured version, per
// spec.md §4.4/§6.
func (r *Router) AddVersionedExtensionBinding(extension, version string, binding FileBinding) {
	key := strings.ToLower(extension)
	rt, ok := r.byExtension[key]
	if !ok {
		rt = &route{}
		r.byExtension[key] = rt
	}
	rt.versions = append(rt.versions, versionEntry{version: version, binding: binding})
}

// AddExactNameBinding registers a single, version-less binding for an exact
// basename (case-insensitive).
func (r *Router) AddExactNameBinding(name string, binding FileBinding) {
	r.AddVersionedExactNameBinding(name, "", binding)
}

// AddVersionedExactNameBinding is the exact-name analogue of
// AddVersionedExtensionBinding.
func (r *Router) AddVersionedExactNameBinding(name, version string, binding FileBinding) {
	key := strings.ToLower(name)
	rt, ok := r.byExactName[key]
	if !ok {
		rt = &route{}
		r.byExactName[key] = rt
	}
	rt.versions = append(rt.versions, versionEntry{version: version, binding: binding})
}

// Resolve implements spec.md §4.4's two-step lookup: try the extension map
// on ext(filename), then the exact-name map on basename(filename). Returns
// ErrUnknownBinding if neither matches.
func (r *Router) Resolve(filename string) (FileBinding, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != "" {
		if rt, ok := r.byExtension[ext]; ok {
			return r.pick(rt), nil
		}
	}
	base := strings.ToLower(filepath.Base(filename))
	if rt, ok := r.byExactName[base]; ok {
		return r.pick(rt), nil
	}
	return FileBinding{}, ErrUnknownBinding
}

// Extensions returns the registered extension keys in no particular order,
// for diagnostic listing (cmd/assetdump's schema subcommand).
func (r *Router) Extensions() []string {
	names := make([]string, 0, len(r.byExtension))
	for k := range r.byExtension {
		names = append(names, k)
	}
	return names
}

// ExactNames returns the registered exact-basename keys in no particular
// order, for diagnostic listing.
func (r *Router) ExactNames() []string {
	names := make([]string, 0, len(r.byExactName))
	for k := range r.byExactName {
		names = append(names, k)
	}
	return names
}

// pick selects among a route's version entries using the Router's
// configured version, falling back to the first declared entry when no
// version matches (spec.md §4.4, §6, scenario F).
func (r *Router) pick(rt *route) FileBinding {
	if len(rt.versions) == 1 {
		return rt.versions[0].binding
	}
	current, err := semver.NewVersion(r.version)
	if err == nil {
		for _, v := range rt.versions {
			if v.version == "" {
				continue
			}
			if c, cerr := semver.NewConstraint(v.version); cerr == nil && c.Check(current) {
				return v.binding
			}
			if v.version == r.version { // exact literal match, e.g. "1.0"
				return v.binding
			}
		}
	} else {
		for _, v := range rt.versions {
			if v.version == r.version {
				return v.binding
			}
		}
	}
	return rt.versions[0].binding
}
