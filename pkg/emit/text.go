package emit

import (
	"fmt"
	"io"
	"strings"
)

// TextOptions controls TextEmitter's formatting, mirroring the teacher's
// printer.Options (IndentSize) but scoped to what a streaming event sink
// needs.
type TextOptions struct {
	// IndentSize is the number of spaces per nesting level.
	IndentSize int
}

// DefaultTextOptions returns the conventional two-space indent.
func DefaultTextOptions() TextOptions {
	return TextOptions{IndentSize: 2}
}

// TextEmitter writes an indented, human-readable trace of the event stream
// as it arrives - one line per node/array/value, grounded on
// original_source's Parser::logParse (which printed one line per
// parse_struct/parse_member call prefixed by a depth-proportional indent).
type TextEmitter struct {
	w     io.Writer
	opts  TextOptions
	depth int
}

// NewTextEmitter creates a TextEmitter writing to w.
func NewTextEmitter(w io.Writer, opts TextOptions) *TextEmitter {
	return &TextEmitter{w: w, opts: opts}
}

func (e *TextEmitter) indent() string {
	return strings.Repeat(" ", e.depth*e.opts.IndentSize)
}

func (e *TextEmitter) BeginDocument() {}
func (e *TextEmitter) EndDocument()   {}

func (e *TextEmitter) BeginNode(name string) {
	fmt.Fprintf(e.w, "%s%s:\n", e.indent(), name)
	e.depth++
}

func (e *TextEmitter) EndNode() {
	e.depth--
}

func (e *TextEmitter) BeginArray(name string) {
	fmt.Fprintf(e.w, "%s%s: [\n", e.indent(), name)
	e.depth++
}

func (e *TextEmitter) EndArray() {
	e.depth--
	fmt.Fprintf(e.w, "%s]\n", e.indent())
}

func (e *TextEmitter) BeginArrayEntry() {
	fmt.Fprintf(e.w, "%s-\n", e.indent())
	e.depth++
}

func (e *TextEmitter) EndArrayEntry() {
	e.depth--
}

func (e *TextEmitter) Emit(name string, v Value) {
	fmt.Fprintf(e.w, "%s%s = %s\n", e.indent(), name, v.Text())
}
