package dilithium

import (
	"crypto"
	cryptorand "crypto/rand"
	"io"

	"github.com/pkg/errors"
)

// GenerateKey generates a key pair of the given mode from a seed read from
// rand. If rand is nil, crypto/rand.Reader is used.
func GenerateKey(mode *Mode, rand io.Reader) (*PublicKey, *PrivateKey, error) {
	if rand == nil {
		rand = cryptorand.Reader
	}
	var seed [SeedSize]byte
	defer clear(seed[:])
	if _, err := io.ReadFull(rand, seed[:]); err != nil {
		return nil, nil, errors.Wrap(err, "dilithium: reading key seed")
	}
	return NewKeyFromSeed(mode, seed[:])
}

// NewKeyFromSeed deterministically derives a key pair of the given mode
// from a SeedSize-byte seed.
func NewKeyFromSeed(mode *Mode, seed []byte) (*PublicKey, *PrivateKey, error) {
	if mode == nil {
		return nil, nil, ErrInvalidMode
	}
	if len(seed) != SeedSize {
		return nil, nil, errors.Wrapf(ErrInvalidSeedSize, "got %d bytes", len(seed))
	}

	// rho || rho' || key
	var expanded [3 * SeedSize]byte
	defer clear(expanded[:])
	shake256(expanded[:], seed)
	rhoPrime := expanded[SeedSize : 2*SeedSize]

	sk := &PrivateKey{mode: mode, s1: mode.newVecL(), s2: mode.newVecK()}
	copy(sk.rho[:], expanded[:SeedSize])
	copy(sk.key[:], expanded[2*SeedSize:])

	nonce := byte(0)
	for i := range sk.s1 {
		sk.s1[i].uniformEta(rhoPrime, nonce, mode.eta)
		nonce++
	}
	for i := range sk.s2 {
		sk.s2[i].uniformEta(rhoPrime, nonce, mode.eta)
		nonce++
	}

	pk := &PublicKey{mode: mode, rho: sk.rho}
	sk.t0, pk.t1 = mode.computeT(sk.rho[:], sk.s1, sk.s2)
	shake256(pk.tr[:], pk.Bytes())
	sk.tr = pk.tr
	sk.pk = pk
	return pk, sk, nil
}

// computeT returns the low and high parts of t = A·s1 + s2.
func (m *Mode) computeT(rho []byte, s1 polyVecL, s2 polyVecK) (t0, t1 polyVecK) {
	a := m.expandMatrix(rho)

	s1hat := vecCopy(s1)
	defer vecWipe(s1hat)
	vecNTT(s1hat)

	t := m.newVecK()
	defer vecWipe(t)
	for i := range t {
		pointwiseAccInvMontgomery(&t[i], a[i], s1hat)
		t[i].invNTTMontgomery()
	}
	vecAddAssign(t, s2)
	vecFreeze(t)

	t0, t1 = m.newVecK(), m.newVecK()
	t.power2Round(t0, t1)
	return t0, t1
}

// Sign signs msg with sk and returns the encoded signature. Signing is
// deterministic: the same key and message always give the same signature.
func Sign(sk *PrivateKey, msg []byte) ([]byte, error) {
	sig, err := sk.sign(msg)
	if err != nil {
		return nil, err
	}
	return sig.Bytes(), nil
}

// Sign implements crypto.Signer. rand is ignored since signing is
// deterministic. The message must not be pre-hashed.
func (sk *PrivateKey) Sign(rand io.Reader, message []byte, opts crypto.SignerOpts) ([]byte, error) {
	if opts != nil && opts.HashFunc() != 0 {
		return nil, errors.New("dilithium: cannot sign a pre-hashed message")
	}
	return Sign(sk, message)
}

// SignMessage implements crypto.MessageSigner.
func (sk *PrivateKey) SignMessage(rand io.Reader, msg []byte, opts crypto.SignerOpts) ([]byte, error) {
	return sk.Sign(rand, msg, opts)
}

func (sk *PrivateKey) sign(msg []byte) (*Signature, error) {
	m := sk.mode

	var mu [CRHSize]byte
	shake256(mu[:], sk.tr[:], msg)

	a := m.expandMatrix(sk.rho[:])

	s1hat, s2hat, t0hat := vecCopy(sk.s1), vecCopy(sk.s2), vecCopy(sk.t0)
	defer vecWipe(s1hat)
	defer vecWipe(s2hat)
	defer vecWipe(t0hat)
	vecNTT(s1hat)
	vecNTT(s2hat)
	vecNTT(t0hat)

	y, yhat, z := m.newVecL(), m.newVecL(), m.newVecL()
	w, w0, w1 := m.newVecK(), m.newVecK(), m.newVecK()
	wcs2, wcs20, ct0, tmp, h := m.newVecK(), m.newVecK(), m.newVecK(), m.newVecK(), m.newVecK()
	defer vecWipe(y)
	defer vecWipe(yhat)
	defer vecWipe(w0)
	defer vecWipe(wcs2)
	defer vecWipe(wcs20)
	defer vecWipe(ct0)
	defer vecWipe(tmp)

	var c, chat poly
	nonce := uint16(0)
	for attempt := 0; attempt < m.maxSignAttempts(); attempt++ {
		// Sample intermediate vector y
		for i := range y {
			y[i].uniformGamma1m1(sk.key[:], mu[:], nonce)
			nonce++
		}

		// Matrix-vector multiplication
		copy(yhat, y)
		vecNTT(yhat)
		for i := range w {
			pointwiseAccInvMontgomery(&w[i], a[i], yhat)
			w[i].invNTTMontgomery()
		}

		// Decompose w and call the random oracle
		vecFreeze(w)
		w.decompose(w0, w1)
		challenge(&c, mu[:], w1)
		chat = c
		chat.ntt()

		// Compute z, reject if it reveals secret
		for i := range z {
			z[i].pointwiseMontgomery(&chat, &s1hat[i])
			z[i].invNTTMontgomery()
		}
		vecAddAssign(z, y)
		vecFreeze(z)
		if vecChkNorm(z, gamma1-m.beta) {
			continue
		}

		// Compute w - cs2, reject if w1 can not be computed from it
		for i := range wcs2 {
			wcs2[i].pointwiseMontgomery(&chat, &s2hat[i])
			wcs2[i].invNTTMontgomery()
		}
		vecSub(wcs2, w, wcs2)
		vecFreeze(wcs2)
		wcs2.decompose(wcs20, tmp)
		vecFreeze(wcs20)
		if vecChkNorm(wcs20, gamma2-m.beta) {
			continue
		}
		if !vecEqual(tmp, w1) {
			continue
		}

		// Compute hints for w1
		for i := range ct0 {
			ct0[i].pointwiseMontgomery(&chat, &t0hat[i])
			ct0[i].invNTTMontgomery()
		}
		vecFreeze(ct0)
		if vecChkNorm(ct0, gamma2) {
			continue
		}

		vecAdd(tmp, wcs2, ct0)
		vecFreeze(tmp)
		vecNeg(ct0)
		if h.makeHint(tmp, ct0) > m.omega {
			continue
		}

		return &Signature{mode: m, z: vecCopy(z), h: vecCopy(h), c: c}, nil
	}
	return nil, errors.Wrapf(ErrSignNonConvergence, "%d attempts", m.maxSignAttempts())
}

// Verify reports whether sig is a valid signature of msg by pk. Malformed
// signatures, including ones of the wrong length, are reported as invalid.
func Verify(pk *PublicKey, msg, sig []byte) bool {
	s, err := pk.mode.NewSignature(sig)
	if err != nil {
		return false
	}
	return pk.verify(msg, s)
}

// Verify reports whether sig is a valid signature of msg by pk.
func (pk *PublicKey) Verify(msg, sig []byte) bool {
	return Verify(pk, msg, sig)
}

// VerifySignature is like Verify for an already decoded signature. It
// returns ErrModeMismatch if sig was decoded under a different mode.
func (pk *PublicKey) VerifySignature(msg []byte, sig *Signature) (bool, error) {
	if sig.mode != pk.mode {
		return false, errors.Wrapf(ErrModeMismatch, "key is %s, signature is %s", pk.mode, sig.mode)
	}
	return pk.verify(msg, sig), nil
}

func (pk *PublicKey) verify(msg []byte, sig *Signature) bool {
	m := pk.mode
	if vecChkNorm(sig.z, gamma1-m.beta) {
		return false
	}

	// mu = CRH(CRH(pk) || msg)
	var mu [CRHSize]byte
	shake256(mu[:], pk.tr[:], msg)

	a := m.expandMatrix(pk.rho[:])

	// Az - ct1·2^d
	zhat := vecCopy(sig.z)
	vecNTT(zhat)
	chat := sig.c
	chat.ntt()
	t1 := vecCopy(pk.t1)
	vecShiftLeft(t1, d)
	vecNTT(t1)

	w, ct1 := m.newVecK(), m.newVecK()
	for i := range w {
		pointwiseAccInvMontgomery(&w[i], a[i], zhat)
		ct1[i].pointwiseMontgomery(&chat, &t1[i])
	}
	vecSub(w, w, ct1)
	vecReduce(w)
	vecInvNTTMontgomery(w)
	vecFreeze(w)

	// Reconstruct w1 and compare challenges
	w1 := m.newVecK()
	w1.useHint(w, sig.h)
	var c poly
	challenge(&c, mu[:], w1)
	return c.equal(&sig.c)
}
