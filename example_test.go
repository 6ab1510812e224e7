package wyrand_test

import (
	"fmt"
	"math/rand/v2"

	wyrand "github.com/opd-ai/go-wyrand"
)

// Example of hashing a message with the default secret
func ExampleNewHasherWithDefaultSecret() {
	h := wyrand.NewHasherWithDefaultSecret(wyrand.Current, 0)
	h.Write([]byte("message digest"))
	fmt.Printf("%016x\n", h.Sum64())
	// Output: 309ab4c045215e8f
}

// Example of drawing numbers from the generator
func ExampleNewRand() {
	rng := wyrand.NewRand(wyrand.Legacy, 0)
	fmt.Println(rng.Uint32())
	fmt.Println(rng.Uint32())
	// Output:
	// 2405016974
	// 4283336045
}

// Example of using the generator as a math/rand/v2 source
func ExampleRand_source() {
	r := rand.New(wyrand.NewRand(wyrand.Current, 42))
	n := r.IntN(6) + 1
	fmt.Println(n >= 1 && n <= 6)
	// Output: true
}

// Example of deriving a custom secret
func ExampleMakeSecret() {
	secret := wyrand.MakeSecret(wyrand.Current, 42)
	fmt.Println(secret.Validate() == nil)
	fmt.Printf("%#016x\n", secret.Values()[0])
	// Output:
	// true
	// 0x8b4be21b934dc6a3
}

// Example of randomized hashing for a hash table
func ExampleNewRandomState() {
	rs, err := wyrand.NewRandomState(wyrand.Current)
	if err != nil {
		panic(err)
	}

	fmt.Println(rs.HashString("key") == rs.HashString("key"))
	// Output: true
}
