package dilithium

// polyVecL is a vector of L polynomials (s1, y, z).
type polyVecL []poly

// polyVecK is a vector of K polynomials (t, s2, w, h).
type polyVecK []poly

// polyVec is satisfied by both vector kinds. The generic helpers below lift
// the element operations coefficient-wise over every polynomial.
type polyVec interface {
	~[]poly
}

func (m *Mode) newVecL() polyVecL { return make(polyVecL, m.l) }

func (m *Mode) newVecK() polyVecK { return make(polyVecK, m.k) }

func vecCopy[V polyVec](v V) V {
	w := make(V, len(v))
	copy(w, v)
	return w
}

func vecReduce[V polyVec](v V) {
	for i := range v {
		v[i].reduce()
	}
}

func vecCsubq[V polyVec](v V) {
	for i := range v {
		v[i].csubq()
	}
}

func vecFreeze[V polyVec](v V) {
	for i := range v {
		v[i].freeze()
	}
}

// vecAdd sets w = u + v.
func vecAdd[V polyVec](w, u, v V) {
	for i := range w {
		w[i].add(&u[i], &v[i])
	}
}

func vecAddAssign[V polyVec](w, u V) {
	for i := range w {
		w[i].addAssign(&u[i])
	}
}

// vecSub sets w = u + 2q - v.
func vecSub[V polyVec](w, u, v V) {
	for i := range w {
		w[i].sub(&u[i], &v[i])
	}
}

func vecNeg[V polyVec](v V) {
	for i := range v {
		v[i].neg()
	}
}

func vecShiftLeft[V polyVec](v V, k uint) {
	for i := range v {
		v[i].shiftLeft(k)
	}
}

func vecNTT[V polyVec](v V) {
	for i := range v {
		v[i].ntt()
	}
}

func vecInvNTTMontgomery[V polyVec](v V) {
	for i := range v {
		v[i].invNTTMontgomery()
	}
}

// vecChkNorm reports whether any coefficient of v reaches bound. Every
// polynomial is inspected.
func vecChkNorm[V polyVec](v V, bound uint32) bool {
	over := false
	for i := range v {
		over = v[i].chkNorm(bound) || over
	}
	return over
}

func vecEqual[V polyVec](u, v V) bool {
	if len(u) != len(v) {
		return false
	}
	eq := true
	for i := range u {
		eq = u[i].equal(&v[i]) && eq
	}
	return eq
}

func vecWipe[V polyVec](v V) {
	for i := range v {
		v[i].wipe()
	}
}

// pointwiseAccInvMontgomery sets w = Σ u[i] ∘ v[i] · 2^(-32) for NTT-domain
// vectors and reduces the sum with reduce32, leaving w below 2q and ready
// for invNTTMontgomery.
func pointwiseAccInvMontgomery(w *poly, u, v polyVecL) {
	var t poly
	w.pointwiseMontgomery(&u[0], &v[0])
	for i := 1; i < len(u); i++ {
		t.pointwiseMontgomery(&u[i], &v[i])
		w.addAssign(&t)
	}
	w.reduce()
}

// power2Round splits every coefficient of the canonical v into v0 and v1.
func (v polyVecK) power2Round(v0, v1 polyVecK) {
	for i := range v {
		v[i].power2Round(&v0[i], &v1[i])
	}
}

// decompose splits every coefficient of the canonical v into v0 and v1.
func (v polyVecK) decompose(v0, v1 polyVecK) {
	for i := range v {
		v[i].decompose(&v0[i], &v1[i])
	}
}

// makeHint sets h to the hint bits for (u, v) and returns the number of
// bits set.
func (h polyVecK) makeHint(u, v polyVecK) int {
	s := 0
	for i := range h {
		s += h[i].makeHint(&u[i], &v[i])
	}
	return s
}

// useHint sets w to the high bits recovered from u and the hints h.
func (w polyVecK) useHint(u, h polyVecK) {
	for i := range w {
		w[i].useHint(&u[i], &h[i])
	}
}
