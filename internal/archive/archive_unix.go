//go:build unix

package archive

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// mapFile memory-maps path read-only, grounded on the teacher's
// hive/dirty flush_unix.go use of golang.org/x/sys/unix for page-level
// operations - here unix.Mmap in place of unix.Msync/Fdatasync, since this
// collaborator only ever reads.
func mapFile(path string) ([]byte, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, nil, err
	}
	size := info.Size()
	if size == 0 {
		return []byte{}, func() error { return nil }, nil
	}
	if size > int64(^uint(0)>>1) {
		return nil, nil, fmt.Errorf("archive: file too large to map (%d bytes)", size)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, fmt.Errorf("archive: mmap %s: %w", path, err)
	}

	closeFn := func() error {
		if data == nil {
			return nil
		}
		return unix.Munmap(data)
	}
	return data, closeFn, nil
}
