// Package assetdecode is the public entry point: hand it a built schema, a
// byte buffer, a logical filename, and an emit.Emitter, and it drives the
// Decoder Engine to completion or failure.
package assetdecode

import (
	"github.com/joshuapare/assetdecode/internal/decoder"
	internalschema "github.com/joshuapare/assetdecode/internal/schema"
	"github.com/joshuapare/assetdecode/internal/router"
	"github.com/joshuapare/assetdecode/pkg/emit"
)

// Options mirrors decoder.Options, re-exported so callers never need to
// import the internal package directly.
type Options = decoder.Options

// Error is decoder.Error re-exported; use errors.As to recover it and
// inspect Kind/Struct/Member/Primary/Secondary.
type Error = decoder.Error

// Result is the public entry point's return value: a boolean success flag
// (spec.md §7 "the public entry point returns a boolean success / failure
// with a diagnostic record") plus the error that caused failure, if any.
type Result struct {
	OK    bool
	Err   error
	Trail []decoder.Breadcrumb
}

// Decode resolves filename against schema's file bindings and walks the
// corresponding root structs over buf, driving emitter. schema and router
// are the values returned by a pkg/schema Builder's Build call.
func Decode(s *internalschema.Schema, r *router.Router, buf []byte, filename string, emitter emit.Emitter, opts Options) Result {
	d := decoder.New(s, r, opts)
	err := d.Decode(buf, filename, emitter)
	res := Result{OK: err == nil, Err: err}
	if diag := d.Diagnostics(); diag != nil {
		res.Trail = diag.Trail
	}
	return res
}
