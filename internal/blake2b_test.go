package internal

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func TestBlake2b512(t *testing.T) {
	// RFC 7693 appendix A, BLAKE2b-512("abc").
	want, _ := hex.DecodeString("ba80a53f981c4d0d6a2797b69f12f6e94c212f14685ac4b74b12bb6fdbffa2d1" +
		"7d87c5392aab792dc252d5de4533cc9518d38aa8dbf1925ab92386edd4009923")

	got := Blake2b512([]byte("abc"))
	if !bytes.Equal(got[:], want) {
		t.Errorf("Blake2b512(abc) = %x, want %x", got, want)
	}
}

func TestBlake2b512Keyed(t *testing.T) {
	data := []byte("wyrand")

	a := Blake2b512Keyed([]byte("key one"), data)
	b := Blake2b512Keyed([]byte("key two"), data)
	if a == b {
		t.Error("different keys produced the same MAC")
	}

	if Blake2b512Keyed([]byte("key one"), data) != a {
		t.Error("keyed hash is not deterministic")
	}

	long := bytes.Repeat([]byte{0x5a}, 200)
	if Blake2b512Keyed(long, data) == Blake2b512(data) {
		t.Error("long key was ignored")
	}

	unkeyed := Blake2b512(data)
	if Blake2b512Keyed(nil, data) != unkeyed {
		t.Error("empty key should match unkeyed Blake2b-512")
	}
}
