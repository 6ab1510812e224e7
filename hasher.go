package wyrand

import (
	"encoding/binary"
	"fmt"
	"hash"
)

// Hasher computes wyhash digests. It implements hash.Hash64.
//
// Input is consumed lazily one chunk behind: each Write or WriteUintN
// call stores its chunk as the pending lo/hi words and only folds the
// previous chunk into the running seed. Sum64 does not modify the state
// and may be called any number of times.
//
// # Stability
//
// The digest matches the reference implementation only when Write is
// called exactly once before Sum64. Any other sequence of calls, including
// the fixed-width WriteUintN methods or several smaller Writes, produces
// digests that are stable across platforms and releases but do not map to
// the reference. Mixing the byte-stream and fixed-width styles on one
// Hasher is allowed and equally stable, but matches no reference vector.
//
// The zero value is a Legacy hasher with seed zero and an all-zero
// secret. It is usable but its output is weak; use a constructor.
//
// A Hasher is not safe for concurrent use.
type Hasher struct {
	seed uint64
	lo   uint64
	hi   uint64
	size uint64

	// initSeed is the seed right after construction, restored by Reset.
	initSeed uint64
	secret   Secret
}

var _ hash.Hash64 = (*Hasher)(nil)

// NewHasher returns a Hasher with a secret derived from secretSeed by
// MakeSecret. Deriving the secret is expensive; prefer building the
// secret once and calling NewHasherWithSecret.
func NewHasher(rev Revision, seed, secretSeed uint64) *Hasher {
	return NewHasherWithSecret(seed, MakeSecret(rev, secretSeed))
}

// NewHasherWithDefaultSecret returns a Hasher using the fixed default
// secret of rev.
func NewHasherWithDefaultSecret(rev Revision, seed uint64) *Hasher {
	return NewHasherWithSecret(seed, DefaultSecret(rev))
}

// NewHasherWithSecret returns a Hasher for the revision of secret. The
// secret should come from MakeSecret or DefaultSecret; arbitrary values
// give weak output.
func NewHasherWithSecret(seed uint64, secret Secret) *Hasher {
	secret.rev.params() // panics on an unknown revision
	seed ^= wymix(seed^secret.v[0], secret.v[1])
	return &Hasher{
		seed:     seed,
		initSeed: seed,
		secret:   secret,
	}
}

// Sum64 hashes data in a single Write with the default secret of rev.
func Sum64(rev Revision, seed uint64, data []byte) uint64 {
	h := NewHasherWithDefaultSecret(rev, seed)
	h.Write(data)
	return h.Sum64()
}

// Sum64WithSecret hashes data in a single Write with secret.
func Sum64WithSecret(seed uint64, secret Secret, data []byte) uint64 {
	h := NewHasherWithSecret(seed, secret)
	h.Write(data)
	return h.Sum64()
}

// Revision returns the revision the hasher runs.
func (h *Hasher) Revision() Revision {
	return h.secret.rev
}

// mixPending folds the pending chunk into the running seed. Nothing is
// pending before the first write.
func (h *Hasher) mixPending() {
	if h.size != 0 {
		h.seed = wymix(h.lo, h.hi^h.seed)
	}
}

// consume decodes one chunk into its lo/hi words and the seed that
// results from bulk-mixing all but the final 16 bytes.
func (h *Hasher) consume(b []byte) (lo, hi, seed uint64) {
	n := len(b)
	seed = h.seed

	switch {
	case n == 0:
		return 0, 0, seed
	case n <= 3:
		return readUpTo3(b), 0, seed
	case n <= 16:
		// Two overlapping 4-byte reads anchored at each end. From 8 bytes
		// up the inner reads move 4 bytes in from either edge.
		off := (n >> 3) << 2
		lo = read4(b)<<32 | read4(b[off:])
		hi = read4(b[n-4:])<<32 | read4(b[n-4-off:])
		return lo, hi, seed
	}

	p := h.secret.rev.params()
	s := &h.secret.v
	rest, start := n, 0

	if p.isBulk(n) {
		seed1, seed2 := seed, seed
		for p.isBulk(rest) {
			seed = wymix(read8(b[start:])^s[1], read8(b[start+8:])^seed)
			seed1 = wymix(read8(b[start+16:])^s[2], read8(b[start+24:])^seed1)
			seed2 = wymix(read8(b[start+32:])^s[3], read8(b[start+40:])^seed2)
			rest -= 48
			start += 48
		}
		seed ^= seed1 ^ seed2
	}

	for rest > 16 {
		seed = wymix(read8(b[start:])^s[1], read8(b[start+8:])^seed)
		rest -= 16
		start += 16
	}

	return read8(b[n-16:]), read8(b[n-8:]), seed
}

// Write adds b as one chunk. It never returns an error.
func (h *Hasher) Write(b []byte) (int, error) {
	h.mixPending()
	h.lo, h.hi, h.seed = h.consume(b)
	h.size += uint64(len(b))
	return len(b), nil
}

// WriteString adds s as one chunk, exactly as Write([]byte(s)) would.
func (h *Hasher) WriteString(s string) (int, error) {
	return h.Write([]byte(s))
}

// WriteUint64 adds v as one fixed-width chunk of 8 bytes.
func (h *Hasher) WriteUint64(v uint64) {
	h.mixPending()
	h.lo = v
	h.hi = 0
	h.size += 8
}

// WriteUint8 adds v widened to 64 bits; it counts as 8 bytes.
func (h *Hasher) WriteUint8(v uint8) {
	h.WriteUint64(uint64(v))
}

// WriteUint16 adds v widened to 64 bits; it counts as 8 bytes.
func (h *Hasher) WriteUint16(v uint16) {
	h.WriteUint64(uint64(v))
}

// WriteUint32 adds v widened to 64 bits; it counts as 8 bytes.
func (h *Hasher) WriteUint32(v uint32) {
	h.WriteUint64(uint64(v))
}

// WriteUint adds v widened to 64 bits; it counts as 8 bytes on every
// platform.
func (h *Hasher) WriteUint(v uint) {
	h.WriteUint64(uint64(v))
}

// WriteUint128 adds the 128-bit value hi<<64 | lo as one fixed-width
// chunk of 16 bytes.
func (h *Hasher) WriteUint128(hi, lo uint64) {
	h.mixPending()
	h.lo = lo
	h.hi = hi
	h.size += 16
}

// Sum64 returns the digest of everything written so far. It does not
// change the hasher state.
func (h *Hasher) Sum64() uint64 {
	s := &h.secret.v
	lo, hi := wymul(h.lo^s[1], h.hi^h.seed)
	return wymix(lo^s[0]^h.size, hi^s[1])
}

// Sum appends the big-endian encoding of Sum64 to b.
func (h *Hasher) Sum(b []byte) []byte {
	return binary.BigEndian.AppendUint64(b, h.Sum64())
}

// Reset restores the hasher to its state right after construction.
func (h *Hasher) Reset() {
	h.seed = h.initSeed
	h.lo, h.hi, h.size = 0, 0, 0
}

// Size returns the number of bytes Sum appends.
func (h *Hasher) Size() int { return 8 }

// BlockSize returns 1: Write accepts chunks of any length.
func (h *Hasher) BlockSize() int { return 1 }

// Clone returns an independent copy of the hasher, including any
// pending input.
func (h *Hasher) Clone() *Hasher {
	c := *h
	return &c
}

// String exposes only the number of bytes written.
func (h *Hasher) String() string {
	return fmt.Sprintf("wyrand.Hasher{%s, size: %d}", h.secret.rev, h.size)
}
