package wyrand

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand/v2"
)

// Rand is the wyrand pseudorandom number generator. Its whole state is a
// single 64-bit word, so any seed, including zero, is valid.
//
// Rand implements math/rand/v2.Source, so it can back a *rand.Rand:
//
//	r := rand.New(wyrand.NewRand(wyrand.Current, seed))
//
// A Rand is not safe for concurrent use.
type Rand struct {
	state uint64
	rev   Revision
}

// NewRand returns a generator for the given revision whose state is seed.
// The seed is used as-is, without any tempering.
func NewRand(rev Revision, seed uint64) *Rand {
	rev.params()
	return &Rand{state: seed, rev: rev}
}

// NewRandFrom seeds a new generator with a single Uint64 drawn from src.
func NewRandFrom(rev Revision, src rand.Source) *Rand {
	return NewRand(rev, src.Uint64())
}

// GenUint64 advances state by one step of the rev generator and returns
// the produced value together with the new state. It is the pure form
// of (*Rand).Uint64.
func GenUint64(rev Revision, state uint64) (value, next uint64) {
	return genUint64(rev.params(), state)
}

func genUint64(p *revisionParams, state uint64) (value, next uint64) {
	next = state + p.wy[0]
	return wymix(next, next^p.wy[1]), next
}

// Seed resets the generator state to seed.
func (r *Rand) Seed(seed uint64) {
	r.state = seed
}

// Revision returns the revision the generator runs.
func (r *Rand) Revision() Revision {
	return r.rev
}

// Uint64 returns the next pseudorandom 64-bit value.
func (r *Rand) Uint64() uint64 {
	var v uint64
	v, r.state = genUint64(r.rev.params(), r.state)
	return v
}

// Uint32 returns the low 32 bits of the next 64-bit value.
func (r *Rand) Uint32() uint32 {
	return uint32(r.Uint64())
}

// Read fills p with pseudorandom bytes and always returns len(p), nil.
//
// Each 64-bit draw is written little-endian regardless of the host byte
// order. A trailing partial word takes the low-order bytes of one more
// draw, and the rest of that draw is discarded.
func (r *Rand) Read(p []byte) (n int, err error) {
	n = len(p)
	for len(p) >= 8 {
		binary.LittleEndian.PutUint64(p, r.Uint64())
		p = p[8:]
	}
	if len(p) > 0 {
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], r.Uint64())
		copy(p, buf[:])
	}
	return n, nil
}

// Clone returns an independent copy of the generator.
func (r *Rand) Clone() *Rand {
	c := *r
	return &c
}

// String does not expose the generator state.
func (r *Rand) String() string {
	return fmt.Sprintf("wyrand.Rand{%s}", r.rev)
}

const randMarshalPrefix = "wyrand:"

var errUnmarshalRand = errors.New("wyrand: invalid Rand encoding")

// MarshalBinary implements the encoding.BinaryMarshaler interface.
// The encoding is the prefix "wyrand:", one revision byte, then the
// state as big-endian uint64.
func (r *Rand) MarshalBinary() ([]byte, error) {
	b := make([]byte, len(randMarshalPrefix)+1+8)
	copy(b, randMarshalPrefix)
	b[len(randMarshalPrefix)] = byte(r.rev)
	binary.BigEndian.PutUint64(b[len(randMarshalPrefix)+1:], r.state)
	return b, nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface.
func (r *Rand) UnmarshalBinary(data []byte) error {
	if len(data) != len(randMarshalPrefix)+1+8 || string(data[:len(randMarshalPrefix)]) != randMarshalPrefix {
		return errUnmarshalRand
	}
	rev := Revision(data[len(randMarshalPrefix)])
	if err := rev.Validate(); err != nil {
		return fmt.Errorf("%w: %w", errUnmarshalRand, err)
	}
	r.rev = rev
	r.state = binary.BigEndian.Uint64(data[len(randMarshalPrefix)+1:])
	return nil
}
