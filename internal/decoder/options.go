package decoder

// Options controls optional ambient behavior of a Decoder, mirroring
// original_source/darkspore_server's Parser silentMode/debugMode flags:
// silentMode gated whether progress was printed at all, and debugMode
// prefixed printed lines with the current (primary, secondary) offsets.
// The core never performs I/O itself (spec.md non-goals), so here
// CollectDiagnostics instead gates whether breadcrumbs are appended to
// Diagnostics.
type Options struct {
	// CollectDiagnostics, when true, records a Breadcrumb for every member
	// decoded (struct/member name plus cursor offsets at the time). Disabled
	// by default so a hot decode path pays nothing for it, matching the
	// teacher's OpenOptions.CollectDiagnostics convention.
	CollectDiagnostics bool

	// Debug is carried for the original parser's debugMode but is not
	// consulted by the decoder: every breadcrumb records the primary and
	// secondary offsets whether or not Debug is set.
	Debug bool
}

// Breadcrumb is one recorded step of a decode: the struct/member in
// progress and the cursor state at that point.
type Breadcrumb struct {
	Struct    string
	Member    string
	Primary   int
	Secondary int
}

// Diagnostics collects breadcrumbs for one decode when Options.CollectDiagnostics
// is set. A Decoder's Diagnostics is reset at the start of every Decode call.
type Diagnostics struct {
	Trail []Breadcrumb
}

func (d *Diagnostics) record(structName, member string, primary, secondary int) {
	if d == nil {
		return
	}
	d.Trail = append(d.Trail, Breadcrumb{Struct: structName, Member: member, Primary: primary, Secondary: secondary})
}

// Last returns the most recent breadcrumb, or the zero value if none were
// recorded, useful for building a diagnostic message alongside a returned
// *Error.
func (d *Diagnostics) Last() Breadcrumb {
	if d == nil || len(d.Trail) == 0 {
		return Breadcrumb{}
	}
	return d.Trail[len(d.Trail)-1]
}
