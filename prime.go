package wyrand

import "math/bits"

// primeWitnesses are sufficient for a deterministic strong probable prime
// test over every n < 2^64.
var primeWitnesses = [...]uint64{3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37}

// mulMod returns a*b mod m without overflow. a and b must be below m.
func mulMod(a, b, m uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	return bits.Rem64(hi, lo, m)
}

// powMod returns base^exp mod m by square-and-multiply.
func powMod(base, exp, m uint64) uint64 {
	result := uint64(1)
	base %= m
	for exp > 0 {
		if exp&1 == 1 {
			result = mulMod(result, base, m)
		}
		exp >>= 1
		if exp > 0 {
			base = mulMod(base, base, m)
		}
	}
	return result
}

// strongProbablePrime runs one Miller-Rabin round of odd n > 3 against
// witness a, where d is the odd part of n-1.
func strongProbablePrime(n, a, d uint64) bool {
	b := powMod(a, d, n)
	nMinus := n - 1
	if b == 1 || b == nMinus {
		return true
	}
	for d != nMinus {
		b = mulMod(b, b, n)
		d <<= 1
		if b <= 1 {
			return false
		}
		if b == nMinus {
			return true
		}
	}
	return false
}

// IsPrime reports whether n is prime. The result is exact for all 64-bit
// inputs.
func IsPrime(n uint64) bool {
	if n < 2 {
		return false
	}
	if n < 4 {
		return true
	}
	if n&1 == 0 {
		return false
	}

	d := (n - 1) >> bits.TrailingZeros64(n-1)

	if !strongProbablePrime(n, 2, d) {
		return false
	}
	// 2047 is the smallest base-2 strong pseudoprime.
	if n < 2047 {
		return true
	}
	for _, a := range primeWitnesses {
		if !strongProbablePrime(n, a, d) {
			return false
		}
	}
	return true
}
