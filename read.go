package wyrand

import "encoding/binary"

// read8 decodes the first 8 bytes of b as a little-endian uint64.
func read8(b []byte) uint64 {
	return binary.LittleEndian.Uint64(b)
}

// read4 decodes the first 4 bytes of b as a little-endian value,
// zero-extended to 64 bits.
func read4(b []byte) uint64 {
	return uint64(binary.LittleEndian.Uint32(b))
}

// readUpTo3 packs a 1 to 3 byte slice into 24 bits: first byte on top,
// the middle byte next, the last byte at the bottom. Bytes are reused
// when len(b) < 3.
func readUpTo3(b []byte) uint64 {
	n := len(b)
	return uint64(b[0])<<16 | uint64(b[n>>1])<<8 | uint64(b[n-1])
}
