package dilithium

// poly is a polynomial with n coefficients. Depending on where it is in a
// computation it holds canonical values in [0, q), values offset by q, or
// NTT-domain values awaiting reduction; callers track which.
type poly [n]uint32

// reduce applies reduce32 to every coefficient.
func (p *poly) reduce() {
	for i := range p {
		p[i] = reduce32(p[i])
	}
}

// csubq applies csubq to every coefficient.
func (p *poly) csubq() {
	for i := range p {
		p[i] = csubq(p[i])
	}
}

// freeze brings every coefficient to its canonical representative.
func (p *poly) freeze() {
	for i := range p {
		p[i] = freeze(p[i])
	}
}

// add sets p = a + b without reduction.
func (p *poly) add(a, b *poly) {
	for i := range p {
		p[i] = a[i] + b[i]
	}
}

// addAssign sets p += a without reduction.
func (p *poly) addAssign(a *poly) {
	for i := range p {
		p[i] += a[i]
	}
}

// sub sets p = a + 2q - b. Coefficients of b must be below 2q.
func (p *poly) sub(a, b *poly) {
	for i := range p {
		p[i] = a[i] + 2*q - b[i]
	}
}

// neg sets p = 2q - p. Coefficients must be below 2q.
func (p *poly) neg() {
	for i := range p {
		p[i] = 2*q - p[i]
	}
}

// shiftLeft multiplies every coefficient by 2^k without reduction.
func (p *poly) shiftLeft(k uint) {
	for i := range p {
		p[i] <<= k
	}
}

func (p *poly) ntt() {
	ntt(p)
}

func (p *poly) invNTTMontgomery() {
	invNTTMontgomery(p)
}

// pointwiseMontgomery sets p = a ∘ b · 2^(-32) for NTT-domain a and b.
// The result is below 2q.
func (p *poly) pointwiseMontgomery(a, b *poly) {
	for i := range p {
		p[i] = montgomeryReduce(uint64(a[i]) * uint64(b[i]))
	}
}

// chkNorm reports whether any coefficient of a canonical polynomial, read as
// a centered value in (-(q-1)/2, (q-1)/2], has absolute value >= bound.
// Every coefficient is inspected.
func (p *poly) chkNorm(bound uint32) bool {
	var over uint32
	for _, a := range p {
		// |a| computed without branches: t = (q-1)/2 - a, folded to t ^ (t >> 31)
		t := int32(qMinus1Div2) - int32(a)
		t ^= t >> 31
		t = qMinus1Div2 - t
		over |= (bound - 1 - uint32(t)) >> 31
	}
	return over != 0
}

// power2Round splits every coefficient of the canonical p into p0 and p1.
func (p *poly) power2Round(p0, p1 *poly) {
	for i := range p {
		p0[i], p1[i] = power2Round(p[i])
	}
}

// decompose splits every coefficient of the canonical p into p0 and p1.
func (p *poly) decompose(p0, p1 *poly) {
	for i := range p {
		p0[i], p1[i] = decompose(p[i])
	}
}

// makeHint sets p to the hint bits for (a, b) and returns their count.
func (p *poly) makeHint(a, b *poly) int {
	s := 0
	for i := range p {
		p[i] = makeHint(a[i], b[i])
		s += int(p[i])
	}
	return s
}

// useHint sets p to the high bits recovered from a and the hints h.
func (p *poly) useHint(a, h *poly) {
	for i := range p {
		p[i] = useHint(a[i], h[i])
	}
}

// equal reports whether p and o hold the same coefficients without
// returning early.
func (p *poly) equal(o *poly) bool {
	var diff uint32
	for i := range p {
		diff |= p[i] ^ o[i]
	}
	return diff == 0
}

// wipe zeroes p.
func (p *poly) wipe() {
	*p = poly{}
}
