package dilithium

// Montgomery form constants.
const (
	// mont = 2^32 mod q (Montgomery R)
	mont = 4193792
	// qInv = -q^(-1) mod 2^32
	qInv = 4236238847
)

// reduce32 partially reduces any 32-bit a using 2^23 ≡ 2^13 - 1 (mod q).
// The result is congruent to a and below 2^23 + 2^22, so one csubq makes it
// canonical.
func reduce32(a uint32) uint32 {
	t := a & 0x7FFFFF
	a >>= 23
	t += a<<13 - a
	return t
}

// csubq subtracts q once if a >= q. Requires a < 2q.
func csubq(a uint32) uint32 {
	a -= q
	// If underflow (a < q), the high bit is set
	a += uint32(int32(a)>>31) & q
	return a
}

// freeze returns the canonical representative of a in [0, q).
func freeze(a uint32) uint32 {
	return csubq(reduce32(a))
}

// montgomeryReduce returns a * 2^(-32) mod q for a < q * 2^32.
// The result is below 2q and not canonical.
func montgomeryReduce(a uint64) uint32 {
	// t = ((a mod 2^32) * qInv) mod 2^32, so a + t*q is divisible by 2^32
	t := uint64(uint32(a) * qInv)
	t *= q
	t += a
	return uint32(t >> 32)
}
