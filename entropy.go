package wyrand

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/opd-ai/go-wyrand/internal"
)

// ErrEntropy is returned when an entropy source cannot produce a value.
// There is no retry and no fallback to weaker randomness.
var ErrEntropy = errors.New("wyrand: failed to source entropy")

// EntropySource produces 64-bit seeds for randomized construction.
// Implementations either return uniformly distributed bits or an error.
type EntropySource interface {
	Uint64() (uint64, error)
}

type systemEntropy struct{}

// SystemEntropy returns the operating system's entropy source
// (crypto/rand).
func SystemEntropy() EntropySource {
	return systemEntropy{}
}

func (systemEntropy) Uint64() (uint64, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrEntropy, err)
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// keyedEntropy is a deterministic entropy stream based on Blake2b.
//
// It holds a 64-byte block that is repeatedly re-hashed with Blake2b-512
// to produce the stream, the first block being a keyed hash of a fixed
// label.
type keyedEntropy struct {
	data [64]byte // Current Blake2b-512 output
	pos  int      // Position in current output (0-64)
}

// NewKeyedEntropy returns a deterministic EntropySource derived from key.
// Two sources with the same key produce the same sequence. It is meant
// for reproducible tests and tooling, not for protection against hash
// flooding. The returned source is not safe for concurrent use.
func NewKeyedEntropy(key []byte) EntropySource {
	return &keyedEntropy{
		data: internal.Blake2b512Keyed(key, []byte("wyrand keyed entropy")),
	}
}

// generate replaces the exhausted block with its own hash.
func (k *keyedEntropy) generate() {
	k.data = internal.Blake2b512(k.data[:])
	k.pos = 0
}

// Uint64 returns the next 8 bytes of the stream, little-endian. It never
// fails.
func (k *keyedEntropy) Uint64() (uint64, error) {
	if k.pos+8 > len(k.data) {
		k.generate()
	}
	v := binary.LittleEndian.Uint64(k.data[k.pos:])
	k.pos += 8
	return v, nil
}
