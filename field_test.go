package dilithium

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMontgomeryConstants(t *testing.T) {
	assert.Equal(t, uint64(mont), (uint64(1)<<32)%q)
	qq, qi := uint32(q), uint32(qInv)
	assert.Equal(t, uint32(0xFFFFFFFF), qq*qi, "q*qInv must be -1 mod 2^32")
}

func TestReduce32(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, a := range []uint32{0, 1, q - 1, q, 2*q - 1, 1 << 31, 0xFFFFFFFF} {
		r := reduce32(a)
		assert.Less(t, r, uint32(2*q), "reduce32(%d)", a)
		assert.Equal(t, a%q, r%q, "reduce32(%d)", a)
	}
	for i := 0; i < 10000; i++ {
		a := rng.Uint32()
		r := reduce32(a)
		require.Less(t, r, uint32(1<<23+1<<22))
		require.Equal(t, a%q, r%q)
	}
}

func TestFreeze(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for _, a := range []uint32{0, q - 1, q, 2*q - 1, 0xFFFFFFFF} {
		assert.Equal(t, a%q, freeze(a), "freeze(%d)", a)
	}
	for i := 0; i < 10000; i++ {
		a := rng.Uint32()
		require.Equal(t, a%q, freeze(a))
	}
}

func TestCsubq(t *testing.T) {
	assert.Equal(t, uint32(0), csubq(0))
	assert.Equal(t, uint32(q-1), csubq(q-1))
	assert.Equal(t, uint32(0), csubq(q))
	assert.Equal(t, uint32(q-1), csubq(2*q-1))
}

func TestMontgomeryReduce(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 10000; i++ {
		a := rng.Uint64() % (uint64(q) << 32)
		r := montgomeryReduce(a)
		require.Less(t, r, uint32(2*q))
		// r * 2^32 ≡ a (mod q)
		require.Equal(t, a%q, (uint64(r)*mont)%q)
	}
}
