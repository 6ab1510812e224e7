package wyrand

import (
	"sync"
	"testing"
)

func TestRandomStateSharedSecret(t *testing.T) {
	for _, rev := range []Revision{Legacy, Current} {
		a, err := NewRandomState(rev)
		if err != nil {
			t.Fatalf("NewRandomState(%s) error = %v", rev, err)
		}
		b := MustNewRandomState(rev)

		if a.seed == b.seed {
			t.Errorf("%s: two states drew the same seed", rev)
		}
		if a.secret != b.secret {
			t.Errorf("%s: states do not share the process secret", rev)
		}
		if a.secret == DefaultSecret(rev) {
			t.Errorf("%s: shared secret is the default secret", rev)
		}
		if err := a.secret.Validate(); err != nil {
			t.Errorf("%s: shared secret invalid: %v", rev, err)
		}
		if a.Revision() != rev {
			t.Errorf("Revision() = %v, want %v", a.Revision(), rev)
		}
	}
}

// TestSharedSecretConcurrent checks that concurrent first use observes a
// single derived secret.
func TestSharedSecretConcurrent(t *testing.T) {
	const workers = 16
	secrets := make([]Secret, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := SharedSecret(Current)
			if err != nil {
				t.Errorf("SharedSecret() error = %v", err)
				return
			}
			secrets[i] = s
		}(i)
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		if secrets[i] != secrets[0] {
			t.Fatalf("worker %d saw a different secret", i)
		}
	}
}

func TestSharedSecretInvalidRevision(t *testing.T) {
	if _, err := SharedSecret(Revision(5)); err == nil {
		t.Error("SharedSecret accepted an invalid revision")
	}
	if _, err := NewRandomState(Revision(-1)); err == nil {
		t.Error("NewRandomState accepted an invalid revision")
	}
}

func TestRandomStateHashers(t *testing.T) {
	rs, err := NewRandomStateWithSecret(MakeSecret(Legacy, 3))
	if err != nil {
		t.Fatalf("NewRandomStateWithSecret() error = %v", err)
	}

	h1 := rs.Hasher()
	h1.Write([]byte("key"))
	h2 := rs.Hasher()
	h2.Write([]byte("key"))

	if h1.Sum64() != h2.Sum64() {
		t.Error("hashers from one state disagree")
	}
	if rs.Hash([]byte("key")) != h1.Sum64() {
		t.Error("Hash disagrees with Hasher")
	}
	if rs.HashString("key") != h1.Sum64() {
		t.Error("HashString disagrees with Hasher")
	}
	if got := rs.String(); got != "wyrand.RandomState{legacy}" {
		t.Errorf("String() = %q", got)
	}
}

func TestRandomStateFromKeyedEntropy(t *testing.T) {
	a, err := NewRandomStateFrom(NewKeyedEntropy([]byte("seed")), Current)
	if err != nil {
		t.Fatalf("NewRandomStateFrom() error = %v", err)
	}
	b, err := NewRandomStateFrom(NewKeyedEntropy([]byte("seed")), Current)
	if err != nil {
		t.Fatalf("NewRandomStateFrom() error = %v", err)
	}

	if a.Hash([]byte("value")) != b.Hash([]byte("value")) {
		t.Error("keyed entropy did not give reproducible states")
	}
	if err := a.secret.Validate(); err != nil {
		t.Errorf("derived secret invalid: %v", err)
	}
}
