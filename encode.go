package dilithium

import "github.com/pkg/errors"

// packBits writes the low bits of every coefficient of a into b as a
// little-endian bit stream. n*bits must be a multiple of 8.
func packBits(b []byte, a *poly, bits uint) {
	var acc uint64
	var nacc uint
	j := 0
	for _, c := range a {
		acc |= uint64(c) << nacc
		nacc += bits
		for nacc >= 8 {
			b[j] = byte(acc)
			j++
			acc >>= 8
			nacc -= 8
		}
	}
}

// unpackBits reads n coefficients of the given width from the little-endian
// bit stream b.
func unpackBits(a *poly, b []byte, bits uint) {
	mask := uint64(1)<<bits - 1
	var acc uint64
	var nacc uint
	j := 0
	for i := range a {
		for nacc < bits {
			acc |= uint64(b[j]) << nacc
			j++
			nacc += 8
		}
		a[i] = uint32(acc & mask)
		acc >>= bits
		nacc -= bits
	}
}

// packT1 packs t1 with 9-bit coefficients.
func packT1(b []byte, a *poly) {
	packBits(b, a, qBits-d)
}

// unpackT1 unpacks t1 with 9-bit coefficients.
func unpackT1(a *poly, b []byte) {
	unpackBits(a, b, qBits-d)
}

// packT0 packs t0, whose coefficients are q + a0 with a0 in
// (-2^(d-1), 2^(d-1)], as 14-bit values 2^(d-1) - a0.
func packT0(b []byte, a *poly) {
	var t poly
	for i := range a {
		t[i] = q + 1<<(d-1) - a[i]
	}
	packBits(b, &t, d)
}

// unpackT0 unpacks t0 back into q + a0 form.
func unpackT0(a *poly, b []byte) {
	unpackBits(a, b, d)
	for i := range a {
		a[i] = q + 1<<(d-1) - a[i]
	}
}

// packEta packs a secret polynomial with coefficients q + s, s in
// [-eta, eta], as values eta - s of the given width.
func packEta(b []byte, a *poly, eta uint32, bits uint) {
	var t poly
	for i := range a {
		t[i] = q + eta - a[i]
	}
	packBits(b, &t, bits)
	t.wipe()
}

// unpackEta unpacks a secret polynomial and rejects fields above 2*eta.
func unpackEta(a *poly, b []byte, eta uint32, bits uint) error {
	unpackBits(a, b, bits)
	var bad uint32
	for i := range a {
		bad |= (2*eta - a[i]) >> 31
		a[i] = q + eta - a[i]
	}
	if bad != 0 {
		return errors.New("eta coefficient out of range")
	}
	return nil
}

// packZ packs a canonical z with centered coefficients in
// [-(gamma1-1), gamma1-1] as 20-bit values gamma1 - 1 - z.
func packZ(b []byte, a *poly) {
	var t poly
	for i := range a {
		x := gamma1 - 1 - a[i]
		// Negative differences come from z > gamma1-1, i.e. negative z
		x += uint32(int32(x)>>31) & q
		t[i] = x
	}
	packBits(b, &t, qBits-3)
}

// unpackZ unpacks z into canonical form. Out-of-range fields decode to
// values that fail the gamma1 - beta norm check.
func unpackZ(a *poly, b []byte) {
	unpackBits(a, b, qBits-3)
	for i := range a {
		x := gamma1 - 1 - a[i]
		x += uint32(int32(x)>>31) & q
		a[i] = x
	}
}

// packW1 packs w1 with 4-bit coefficients.
func packW1(b []byte, a *poly) {
	packBits(b, a, 4)
}
