package wyrand

import "math/bits"

// wymul returns the low and high halves of the full 128-bit product a*b.
func wymul(a, b uint64) (lo, hi uint64) {
	hi, lo = bits.Mul64(a, b)
	return lo, hi
}

// wymix multiplies a and b to 128 bits and folds the halves together.
// It is the only nonlinear step shared by the generator and the hasher.
func wymix(a, b uint64) uint64 {
	lo, hi := wymul(a, b)
	return lo ^ hi
}
