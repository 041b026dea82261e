// Package dilithium implements the round-1 CRYSTALS-Dilithium lattice-based
// digital signature scheme over R_q = Z_q[X]/(X^256+1).
//
// The scheme is Fiat-Shamir with aborts: signing samples a masking vector,
// derives a sparse challenge from the high bits of A·y and restarts with a
// fresh nonce whenever the response would reveal information about the
// secret. Four parameter sets are available as Mode0 (weakest) to Mode3
// (strongest). A key is bound to the mode it was generated under.
//
// Basic usage:
//
//	pk, sk, err := dilithium.GenerateKey(dilithium.Mode3, rand.Reader)
//	if err != nil {
//	    // handle error
//	}
//	sig, err := dilithium.Sign(sk, message)
//	if err != nil {
//	    // handle error
//	}
//	valid := pk.Verify(message, sig)
package dilithium

import "crypto"

// Global constants shared by every mode.
const (
	// n is the number of coefficients in polynomials.
	n = 256

	// q is the modulus: q = 2^23 - 2^13 + 1 = 8380417
	q = 8380417

	// qBits is the bit length of q.
	qBits = 23

	// rootOfUnity is a primitive 512th root of unity mod q.
	rootOfUnity = 1753

	// d is the number of dropped bits from t.
	d = 14

	// SeedSize is the size of the random seed used for key generation and
	// of the rho and key seeds.
	SeedSize = 32

	// CRHSize is the output size of the collision resistant hash used for
	// tr and mu.
	CRHSize = 48
)

// Derived constants.
const (
	qMinus1Div2 = (q - 1) / 2

	gamma1 = (q - 1) / 16
	gamma2 = gamma1 / 2
	alpha  = 2 * gamma2

	// challengeWeight is the number of ±1 coefficients of the challenge.
	challengeWeight = 60
)

// Encoding size constants (bytes per polynomial).
const (
	polyT1Size = n * (qBits - d) / 8 // 9-bit t1
	polyT0Size = n * d / 8           // 14-bit t0
	polyZSize  = n * (qBits - 3) / 8 // 20-bit z
	polyW1Size = n * 4 / 8           // 4-bit w1

	challengeSize = n/8 + 8
)

// Compile-time interface assertions for crypto.Signer.
var (
	_ crypto.Signer    = (*PrivateKey)(nil)
	_ crypto.PublicKey = (*PublicKey)(nil)
)
