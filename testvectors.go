package wyrand

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/afero"
)

// TestVector is a single wyhash test case from the reference implementation.
// The digest is computed by one Write of the input followed by Sum64.
type TestVector struct {
	Name       string  `json:"name"`
	Revision   string  `json:"revision"`
	Seed       uint64  `json:"seed"`
	SecretSeed *uint64 `json:"secret_seed,omitempty"` // nil selects the default secret
	Input      string  `json:"input,omitempty"`
	InputHex   string  `json:"input_hex,omitempty"` // Alternative hex-encoded input
	Expected   string  `json:"expected"`            // 16 hex digits
}

// TestVectorSuite contains all test vectors with metadata about their source.
type TestVectorSuite struct {
	Version     string       `json:"version"`
	Description string       `json:"description"`
	Source      string       `json:"source,omitempty"`
	License     string       `json:"license,omitempty"`
	Vectors     []TestVector `json:"vectors"`
}

// VectorResult is the outcome of checking one TestVector.
type VectorResult struct {
	Name     string
	Expected uint64
	Got      uint64
	Err      error
}

// OK reports whether the vector was computed and matched.
func (r VectorResult) OK() bool {
	return r.Err == nil && r.Expected == r.Got
}

// LoadTestVectors loads test vectors from a JSON file on fs.
// Returns an error if the file cannot be read or parsed.
func LoadTestVectors(fs afero.Fs, path string) (*TestVectorSuite, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read test vectors: %w", err)
	}

	var suite TestVectorSuite
	if err := json.Unmarshal(data, &suite); err != nil {
		return nil, fmt.Errorf("failed to parse test vectors: %w", err)
	}

	return &suite, nil
}

// GetInput returns the decoded input bytes for a test vector.
// If InputHex is set, it decodes from hex, otherwise uses Input as UTF-8.
func (tv *TestVector) GetInput() ([]byte, error) {
	if tv.InputHex != "" {
		input, err := hex.DecodeString(tv.InputHex)
		if err != nil {
			return nil, fmt.Errorf("invalid input hex: %w", err)
		}
		return input, nil
	}
	return []byte(tv.Input), nil
}

// GetExpected returns the expected digest.
func (tv *TestVector) GetExpected() (uint64, error) {
	if len(tv.Expected) != 16 {
		return 0, fmt.Errorf("expected digest must be 16 hex digits, got %d", len(tv.Expected))
	}
	v, err := strconv.ParseUint(tv.Expected, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid expected digest: %w", err)
	}
	return v, nil
}

// GetRevision returns the Revision named by the vector.
func (tv *TestVector) GetRevision() (Revision, error) {
	return ParseRevision(tv.Revision)
}

// Compute hashes the vector input with its revision, seed and secret.
func (tv *TestVector) Compute() (uint64, error) {
	rev, err := tv.GetRevision()
	if err != nil {
		return 0, err
	}
	input, err := tv.GetInput()
	if err != nil {
		return 0, err
	}

	secret := DefaultSecret(rev)
	if tv.SecretSeed != nil {
		secret = MakeSecret(rev, *tv.SecretSeed)
	}
	return Sum64WithSecret(tv.Seed, secret, input), nil
}

// Verify computes every vector in the suite. Secrets derived from the
// same seed are computed once.
func (s *TestVectorSuite) Verify() []VectorResult {
	type secretKey struct {
		rev  Revision
		seed uint64
	}
	secrets := make(map[secretKey]Secret)

	results := make([]VectorResult, 0, len(s.Vectors))
	for i := range s.Vectors {
		tv := &s.Vectors[i]
		res := VectorResult{Name: tv.Name}

		res.Expected, res.Err = tv.GetExpected()
		if res.Err != nil {
			results = append(results, res)
			continue
		}

		rev, err := tv.GetRevision()
		if err != nil {
			res.Err = err
			results = append(results, res)
			continue
		}
		input, err := tv.GetInput()
		if err != nil {
			res.Err = err
			results = append(results, res)
			continue
		}

		secret := DefaultSecret(rev)
		if tv.SecretSeed != nil {
			key := secretKey{rev, *tv.SecretSeed}
			cached, ok := secrets[key]
			if !ok {
				cached = MakeSecret(rev, *tv.SecretSeed)
				secrets[key] = cached
			}
			secret = cached
		}

		res.Got = Sum64WithSecret(tv.Seed, secret, input)
		results = append(results, res)
	}
	return results
}
