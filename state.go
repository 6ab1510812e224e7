package wyrand

import (
	"fmt"
	"sync"
)

// sharedSecrets holds one lazily derived secret per revision. Each is
// computed at most once per process from a single system entropy draw,
// and every later caller sees the same value. A failed draw is kept as
// the result; entropy failure is not retried.
var sharedSecrets = [...]func() (Secret, error){
	Legacy:  sync.OnceValues(func() (Secret, error) { return drawSecret(Legacy, SystemEntropy()) }),
	Current: sync.OnceValues(func() (Secret, error) { return drawSecret(Current, SystemEntropy()) }),
}

func drawSecret(rev Revision, src EntropySource) (Secret, error) {
	seed, err := src.Uint64()
	if err != nil {
		return Secret{}, fmt.Errorf("wyrand: secret seed: %w", err)
	}
	return MakeSecret(rev, seed), nil
}

// SharedSecret returns the process-wide random secret for rev, deriving it
// on first use. Concurrent first calls block until the single derivation
// finishes.
func SharedSecret(rev Revision) (Secret, error) {
	if err := rev.Validate(); err != nil {
		return Secret{}, err
	}
	return sharedSecrets[rev]()
}

// RandomState builds Hashers that share a random seed and secret. It is
// the randomized counterpart of NewHasherWithSecret, intended for hash
// tables that must resist precomputed collisions.
//
// A RandomState is immutable and safe for concurrent use; the Hashers it
// returns are not.
type RandomState struct {
	seed   uint64
	secret Secret
}

// NewRandomState returns a RandomState with a fresh seed from the system
// entropy source and the shared random secret of rev (see SharedSecret).
func NewRandomState(rev Revision) (*RandomState, error) {
	secret, err := SharedSecret(rev)
	if err != nil {
		return nil, err
	}
	return NewRandomStateWithSecret(secret)
}

// MustNewRandomState is like NewRandomState but panics if entropy cannot
// be sourced.
func MustNewRandomState(rev Revision) *RandomState {
	rs, err := NewRandomState(rev)
	if err != nil {
		panic(err)
	}
	return rs
}

// NewRandomStateWithSecret returns a RandomState with a fresh seed from
// the system entropy source and the given secret.
func NewRandomStateWithSecret(secret Secret) (*RandomState, error) {
	seed, err := SystemEntropy().Uint64()
	if err != nil {
		return nil, fmt.Errorf("wyrand: random state seed: %w", err)
	}
	return &RandomState{seed: seed, secret: secret}, nil
}

// NewRandomStateFrom draws the seed and then the secret seed from src.
// The secret is derived for this state alone and is not cached.
func NewRandomStateFrom(src EntropySource, rev Revision) (*RandomState, error) {
	if err := rev.Validate(); err != nil {
		return nil, err
	}
	seed, err := src.Uint64()
	if err != nil {
		return nil, fmt.Errorf("wyrand: random state seed: %w", err)
	}
	secret, err := drawSecret(rev, src)
	if err != nil {
		return nil, err
	}
	return &RandomState{seed: seed, secret: secret}, nil
}

// Revision returns the revision of the state's secret.
func (rs *RandomState) Revision() Revision {
	return rs.secret.rev
}

// Hasher returns a new Hasher seeded from the state. Hashers from the
// same RandomState produce equal digests for equal input.
func (rs *RandomState) Hasher() *Hasher {
	return NewHasherWithSecret(rs.seed, rs.secret)
}

// Hash returns the digest of data written in a single call.
func (rs *RandomState) Hash(data []byte) uint64 {
	return Sum64WithSecret(rs.seed, rs.secret, data)
}

// HashString returns the digest of s written in a single call.
func (rs *RandomState) HashString(s string) uint64 {
	h := rs.Hasher()
	h.WriteString(s)
	return h.Sum64()
}

// String does not expose the seed or secret.
func (rs *RandomState) String() string {
	return fmt.Sprintf("wyrand.RandomState{%s}", rs.secret.rev)
}
