package dilithium

// power2Round splits a canonical a into (a0, a1) with a = a1*2^d + a0 and
// a0 in (-2^(d-1), 2^(d-1)]. a0 is returned offset by q, that is as q + a0.
func power2Round(a uint32) (a0, a1 uint32) {
	t := int32(a & (1<<d - 1))
	t -= 1<<(d-1) + 1
	t += (t >> 31) & (1 << d)
	t -= 1<<(d-1) - 1
	return q + uint32(t), (a - uint32(t)) >> d
}

// decompose splits a canonical a into high bits a1 in [0, 16) and a centered
// remainder a0 with a = a1*alpha + a0 (mod q), a0 returned offset by q.
// For the top bucket a - a0 = q - 1 the high bits wrap to 0 and a0 is
// decremented by one so the identity still holds mod q.
func decompose(a uint32) (a0, a1 uint32) {
	// Centered remainder mod alpha, using 2^19 ≡ 2^9 (mod alpha)
	t := int32(a & 0x7FFFF)
	t += int32((a >> 19) << 9)
	t -= alpha/2 + 1
	t += (t >> 31) & alpha
	t -= alpha/2 - 1
	a -= uint32(t)

	// Divide by alpha; a is now a multiple of alpha below 2^23
	u := int32(a) - 1
	u >>= 31
	a = (a >> 19) + 1
	a -= uint32(u & 1)

	a0 = q + uint32(t) - (a >> 4)
	a1 = a & 0xF
	return a0, a1
}

// makeHint returns 1 if adding b to a changes the high bits of a.
// a must be canonical and b below 2q.
func makeHint(a, b uint32) uint32 {
	_, x := decompose(a)
	_, y := decompose(freeze(a + b))
	if x != y {
		return 1
	}
	return 0
}

// useHint recovers the high bits of a+b from a and the hint bit produced by
// makeHint(a, b).
func useHint(a, hint uint32) uint32 {
	const maxHigh = (q-1)/alpha - 1

	a0, a1 := decompose(a)
	if hint == 0 {
		return a1
	}
	if a0 > q {
		if a1 == maxHigh {
			return 0
		}
		return a1 + 1
	}
	if a1 == 0 {
		return maxHigh
	}
	return a1 - 1
}
