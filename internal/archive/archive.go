// Package archive is the external collaborator spec.md §6 describes:
// something that resolves a logical resource key to a (buffer, filename)
// pair. It performs the file I/O and memory mapping the core explicitly
// excludes (spec.md §1 non-goals): no container format, no decompression,
// just raw bytes handed to the decoder.
package archive

import "path/filepath"

// Resource is one opened asset file: its mapped bytes and the logical
// filename the File-Type Router binds against.
type Resource struct {
	data     []byte
	filename string
	close    func() error
}

// Bytes returns the resource's raw contents. The slice is only valid until
// Close is called.
func (r *Resource) Bytes() []byte { return r.data }

// Filename returns the logical filename (basename) used for binding
// lookup, per spec.md §6 "a logical filename (used only for binding
// lookup - no file I/O is performed by the core)".
func (r *Resource) Filename() string { return r.filename }

// Close releases the resource's memory mapping.
func (r *Resource) Close() error {
	if r.close == nil {
		return nil
	}
	return r.close()
}

// Open memory-maps the file at path and returns a Resource ready to hand
// to a decoder.Decoder. The filename used for binding resolution is
// path's basename.
func Open(path string) (*Resource, error) {
	data, closeFn, err := mapFile(path)
	if err != nil {
		return nil, err
	}
	return &Resource{data: data, filename: filepath.Base(path), close: closeFn}, nil
}
