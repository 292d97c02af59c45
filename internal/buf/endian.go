package buf

import (
	"encoding/binary"
	"math"
)

// U16LE reads a little-endian uint16 from b. Caller must have checked bounds.
func U16LE(b []byte) uint16 { return binary.LittleEndian.Uint16(b) }

// U32LE reads a little-endian uint32 from b. Caller must have checked bounds.
func U32LE(b []byte) uint32 { return binary.LittleEndian.Uint32(b) }

// U64LE reads a little-endian uint64 from b. Caller must have checked bounds.
func U64LE(b []byte) uint64 { return binary.LittleEndian.Uint64(b) }

// I16LE reads a little-endian int16 from b.
func I16LE(b []byte) int16 { return int16(binary.LittleEndian.Uint16(b)) }

// I32LE reads a little-endian int32 from b.
func I32LE(b []byte) int32 { return int32(binary.LittleEndian.Uint32(b)) }

// I64LE reads a little-endian int64 from b.
func I64LE(b []byte) int64 { return int64(binary.LittleEndian.Uint64(b)) }

// F32LE reads a little-endian IEEE-754 float32 from b.
func F32LE(b []byte) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(b)) }

// F64LE reads a little-endian IEEE-754 float64 from b.
func F64LE(b []byte) float64 { return math.Float64frombits(binary.LittleEndian.Uint64(b)) }
