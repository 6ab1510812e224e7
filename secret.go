package wyrand

import (
	"errors"
	"fmt"
	"math/bits"
)

// secretBytes lists every byte with exactly four bits set. Secret values
// are assembled one byte lane at a time from this table.
var secretBytes = [...]byte{
	15, 23, 27, 29, 30, 39, 43, 45, 46, 51, 53, 54, 57, 58, 60, 71, 75, 77, 78, 83, 85, 86, 89,
	90, 92, 99, 101, 102, 105, 106, 108, 113, 114, 116, 120, 135, 139, 141, 142, 147, 149, 150,
	153, 154, 156, 163, 165, 166, 169, 170, 172, 177, 178, 180, 184, 195, 197, 198, 201, 202,
	204, 209, 210, 212, 216, 225, 226, 228, 232, 240,
}

// ErrInvalidSecret is returned by Secret.Validate when a secret breaks one
// of the invariants MakeSecret guarantees.
var ErrInvalidSecret = errors.New("wyrand: invalid secret")

// Secret is the set of four constants that parameterizes a Hasher. It is
// bound to the revision that produced it, and Hashers built from it run
// that revision.
//
// Secrets are immutable values and may be compared with ==.
type Secret struct {
	v   [4]uint64
	rev Revision
}

// DefaultSecret returns the fixed well-known secret of rev.
func DefaultSecret(rev Revision) Secret {
	return Secret{v: rev.params().wy, rev: rev}
}

// MakeSecret derives a secret from seed. The same seed and revision always
// yield the same secret. Every value is odd, every pair of values differs
// in exactly 32 bits, and for Current every value is prime.
//
// The search is a rejection-sampling loop driven by the rev generator. It
// has no iteration bound and cannot be cancelled; in practice it finishes
// after a few hundred candidates.
func MakeSecret(rev Revision, seed uint64) Secret {
	p := rev.params()
	var s Secret
	s.rev = rev

	for i := range s.v {
		for {
			var candidate, draw uint64
			for lane := 0; lane < 64; lane += 8 {
				draw, seed = genUint64(p, seed)
				candidate |= uint64(secretBytes[draw%uint64(len(secretBytes))]) << lane
			}
			if acceptSecretValue(p, s.v[:i], candidate) {
				s.v[i] = candidate
				break
			}
		}
	}
	return s
}

// acceptSecretValue checks candidate against the already accepted values.
func acceptSecretValue(p *revisionParams, accepted []uint64, candidate uint64) bool {
	if candidate&1 == 0 {
		return false
	}
	for _, prev := range accepted {
		if bits.OnesCount64(prev^candidate) != 32 {
			return false
		}
	}
	if p.primeSecrets && !IsPrime(candidate) {
		return false
	}
	return true
}

// Revision returns the revision the secret belongs to.
func (s Secret) Revision() Revision {
	return s.rev
}

// Values returns a copy of the four secret constants.
func (s Secret) Values() [4]uint64 {
	return s.v
}

// Validate re-checks the invariants of a secret produced by MakeSecret.
// Default secrets are not produced by the search and are not expected to
// pass.
func (s Secret) Validate() error {
	if err := s.rev.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSecret, err)
	}
	p := s.rev.params()
	for i, c := range s.v {
		if c&1 == 0 {
			return fmt.Errorf("%w: value %d (%#016x) is even", ErrInvalidSecret, i, c)
		}
		for j := 0; j < i; j++ {
			if d := bits.OnesCount64(s.v[j] ^ c); d != 32 {
				return fmt.Errorf("%w: values %d and %d differ in %d bits, want 32", ErrInvalidSecret, j, i, d)
			}
		}
		if p.primeSecrets && !IsPrime(c) {
			return fmt.Errorf("%w: value %d (%#016x) is not prime", ErrInvalidSecret, i, c)
		}
	}
	return nil
}

// String does not expose the secret constants.
func (s Secret) String() string {
	return fmt.Sprintf("wyrand.Secret{%s}", s.rev)
}

// GoString keeps %#v from printing the constants.
func (s Secret) GoString() string {
	return s.String()
}
