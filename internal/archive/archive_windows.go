//go:build windows

package archive

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/windows"
)

func unsafeSlice(addr uintptr, size int) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size)
}

// mapFile memory-maps path read-only on Windows via CreateFileMapping /
// MapViewOfFile, the same collaborator this package's unix variant builds
// with unix.Mmap - mirroring the teacher's split between
// hive/dirty/flush_unix.go and flush_windows.go for the same platform
// divide.
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

	h, err := windows.CreateFileMapping(windows.Handle(f.Fd()), nil, windows.PAGE_READONLY, 0, 0, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("archive: CreateFileMapping %s: %w", path, err)
	}

	addr, err := windows.MapViewOfFile(h, windows.FILE_MAP_READ, 0, 0, uintptr(size))
	if err != nil {
		windows.CloseHandle(h)
		return nil, nil, fmt.Errorf("archive: MapViewOfFile %s: %w", path, err)
	}

	data := unsafeSlice(addr, int(size))
	closeFn := func() error {
		err := windows.UnmapViewOfFile(addr)
		windows.CloseHandle(h)
		return err
	}
	return data, closeFn, nil
}
