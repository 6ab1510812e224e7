// Package wyrand provides a pure-Go implementation of the wyrand
// pseudorandom number generator and the wyhash non-cryptographic hash
// function, both built on the same 64-bit multiply-and-fold primitive.
//
// Two incompatible revisions of the algorithms are supported: Legacy
// (final v4) and Current (final v4.2). They differ in their constants,
// in the bulk-hashing boundary at 48 bytes, and in Current's requirement
// that generated secrets be prime. Outputs are bit-exact with the C
// reference implementation of the chosen revision.
//
// Example usage:
//
//	h := wyrand.NewHasherWithDefaultSecret(wyrand.Current, 0)
//	h.Write([]byte("message digest"))
//	sum := h.Sum64()
//
//	rng := wyrand.NewRand(wyrand.Current, 42)
//	n := rng.Uint64()
//
// Neither algorithm is suitable for cryptographic use. A Rand or Hasher
// is not safe for concurrent use; give each goroutine its own instance.
package wyrand

import (
	"errors"
	"fmt"
	"strings"
)

// Revision selects one of the historical wyhash/wyrand algorithm sets.
// Values from different revisions must never be combined.
type Revision int

const (
	// Legacy is the final v4 revision of the reference implementation.
	Legacy Revision = iota

	// Current is the final v4.2 revision of the reference implementation.
	// Its generated secrets are additionally constrained to be prime.
	Current
)

// ErrInvalidRevision is returned when a Revision value or name is not recognized.
var ErrInvalidRevision = errors.New("wyrand: invalid revision")

// String returns the string representation of the revision.
func (r Revision) String() string {
	switch r {
	case Legacy:
		return "legacy"
	case Current:
		return "current"
	default:
		return fmt.Sprintf("Revision(%d)", int(r))
	}
}

// Validate checks that r names a supported revision.
func (r Revision) Validate() error {
	if r != Legacy && r != Current {
		return fmt.Errorf("%w: %d", ErrInvalidRevision, int(r))
	}
	return nil
}

// ParseRevision parses a revision name. It accepts "legacy"/"v4" and
// "current"/"v4.2", ignoring case and surrounding whitespace.
func ParseRevision(name string) (Revision, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "legacy", "v4", "final_v4":
		return Legacy, nil
	case "current", "v4.2", "v4_2", "final_v4_2":
		return Current, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidRevision, name)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (r Revision) MarshalText() ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Revision) UnmarshalText(text []byte) error {
	rev, err := ParseRevision(string(text))
	if err != nil {
		return err
	}
	*r = rev
	return nil
}

// revisionParams holds everything that differs between revisions.
// Instances are immutable and shared.
type revisionParams struct {
	wy [4]uint64

	// bulkInclusive selects the 48-byte super-block test:
	// length >= 48 when true, length > 48 when false.
	bulkInclusive bool

	// primeSecrets requires every generated secret value to be prime.
	primeSecrets bool
}

var revisions = [...]revisionParams{
	Legacy: {
		wy: [4]uint64{
			0xa0761d6478bd642f,
			0xe7037ed1a0b428db,
			0x8ebc6af09c88c6e3,
			0x589965cc75374cc3,
		},
		bulkInclusive: false,
		primeSecrets:  false,
	},
	Current: {
		wy: [4]uint64{
			0x2d358dccaa6c78a5,
			0x8bb84b93962eacc9,
			0x4b33a62ed433d4a3,
			0x4d5a2da51de1aa47,
		},
		bulkInclusive: true,
		primeSecrets:  true,
	},
}

// params returns the parameter record for r. It panics on an unknown
// revision, mirroring an out-of-range enum being a programming error.
func (r Revision) params() *revisionParams {
	if r != Legacy && r != Current {
		panic(fmt.Sprintf("wyrand: unknown revision %d", int(r)))
	}
	return &revisions[r]
}

// isBulk reports whether n bytes remaining should take another
// 48-byte super-block round.
func (p *revisionParams) isBulk(n int) bool {
	if p.bulkInclusive {
		return n >= 48
	}
	return n > 48
}
