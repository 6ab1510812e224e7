// Package internal wraps the golang.org/x/crypto primitives used by wyrand.
package internal

import (
	"golang.org/x/crypto/blake2b"
)

// Blake2b512 computes a 512-bit Blake2b hash (64 bytes).
func Blake2b512(data []byte) [64]byte {
	return blake2b.Sum512(data)
}

// Blake2b512Keyed computes a 512-bit keyed Blake2b hash (a MAC) of data.
// Keys longer than 64 bytes are first reduced with unkeyed Blake2b-512,
// so any key length is accepted.
func Blake2b512Keyed(key, data []byte) [64]byte {
	if len(key) > blake2b.Size {
		sum := blake2b.Sum512(key)
		key = sum[:]
	}

	var out [64]byte
	h, err := blake2b.New512(key)
	if err != nil {
		// Unreachable: key is at most blake2b.Size bytes.
		panic("internal: blake2b: " + err.Error())
	}
	h.Write(data)
	copy(out[:], h.Sum(nil))
	return out
}
