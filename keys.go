package dilithium

import (
	"crypto"
	"crypto/subtle"

	"github.com/pkg/errors"
)

// cursor walks a packed buffer field by field. Every encoding in this
// package is a fixed sequence of (field, width) entries laid out back to
// back, so offsets follow from the order of next calls.
type cursor struct {
	buf []byte
	off int
}

// next returns the following size bytes of the buffer.
func (c *cursor) next(size int) []byte {
	b := c.buf[c.off : c.off+size : c.off+size]
	c.off += size
	return b
}

// PublicKey is a Dilithium public key.
//
// Layout: rho (32) || t1 (K x 288).
type PublicKey struct {
	mode *Mode
	rho  [SeedSize]byte // Public seed
	t1   polyVecK       // High bits of t
	tr   [CRHSize]byte  // CRH(pk)
}

// PrivateKey is a Dilithium private key.
//
// Layout: rho (32) || key (32) || tr (48) || s1 (L x eta) || s2 (K x eta) ||
// t0 (K x 448).
type PrivateKey struct {
	mode *Mode
	rho  [SeedSize]byte // Public seed
	key  [SeedSize]byte // Private seed for the masking vector
	tr   [CRHSize]byte  // CRH(pk)
	s1   polyVecL       // Secret vector
	s2   polyVecK       // Secret vector
	t0   polyVecK       // Low bits of t

	pk *PublicKey
}

// Mode returns the parameter set of the key.
func (pk *PublicKey) Mode() *Mode { return pk.mode }

// Bytes returns the encoded public key.
func (pk *PublicKey) Bytes() []byte {
	b := make([]byte, pk.mode.PublicKeySize())
	c := cursor{buf: b}
	copy(c.next(SeedSize), pk.rho[:])
	for i := range pk.t1 {
		packT1(c.next(polyT1Size), &pk.t1[i])
	}
	return b
}

// Equal reports whether pk and other are the same public key.
func (pk *PublicKey) Equal(other crypto.PublicKey) bool {
	o, ok := other.(*PublicKey)
	if !ok || o.mode != pk.mode {
		return false
	}
	return pk.rho == o.rho && vecEqual(pk.t1, o.t1)
}

// NewPublicKey parses an encoded public key of mode m.
func (m *Mode) NewPublicKey(b []byte) (*PublicKey, error) {
	if len(b) != m.PublicKeySize() {
		return nil, errors.Wrapf(ErrMalformedPublicKey, "length %d, want %d", len(b), m.PublicKeySize())
	}

	pk := &PublicKey{mode: m, t1: m.newVecK()}
	c := cursor{buf: b}
	copy(pk.rho[:], c.next(SeedSize))
	for i := range pk.t1 {
		unpackT1(&pk.t1[i], c.next(polyT1Size))
	}
	shake256(pk.tr[:], b)
	return pk, nil
}

// Mode returns the parameter set of the key.
func (sk *PrivateKey) Mode() *Mode { return sk.mode }

// Bytes returns the encoded private key.
func (sk *PrivateKey) Bytes() []byte {
	m := sk.mode
	b := make([]byte, m.PrivateKeySize())
	c := cursor{buf: b}
	copy(c.next(SeedSize), sk.rho[:])
	copy(c.next(SeedSize), sk.key[:])
	copy(c.next(CRHSize), sk.tr[:])
	for i := range sk.s1 {
		packEta(c.next(m.polyEtaSize()), &sk.s1[i], m.eta, uint(m.setaBits))
	}
	for i := range sk.s2 {
		packEta(c.next(m.polyEtaSize()), &sk.s2[i], m.eta, uint(m.setaBits))
	}
	for i := range sk.t0 {
		packT0(c.next(polyT0Size), &sk.t0[i])
	}
	return b
}

// Public returns the public key corresponding to sk.
func (sk *PrivateKey) Public() crypto.PublicKey {
	return sk.pk
}

// PublicKey returns the public key corresponding to sk.
func (sk *PrivateKey) PublicKey() *PublicKey {
	return sk.pk
}

// Equal reports whether sk and other are the same private key.
func (sk *PrivateKey) Equal(other crypto.PrivateKey) bool {
	o, ok := other.(*PrivateKey)
	if !ok || o.mode != sk.mode {
		return false
	}
	return subtle.ConstantTimeCompare(sk.Bytes(), o.Bytes()) == 1
}

// Wipe zeroes the secret material held by sk. The key is unusable
// afterwards.
func (sk *PrivateKey) Wipe() {
	clear(sk.key[:])
	vecWipe(sk.s1)
	vecWipe(sk.s2)
	vecWipe(sk.t0)
}

// NewPrivateKey parses an encoded private key of mode m. The public key is
// recomputed from rho, s1 and s2 and must agree with the stored tr and t0.
func (m *Mode) NewPrivateKey(b []byte) (*PrivateKey, error) {
	if len(b) != m.PrivateKeySize() {
		return nil, errors.Wrapf(ErrMalformedPrivateKey, "length %d, want %d", len(b), m.PrivateKeySize())
	}

	sk := &PrivateKey{mode: m, s1: m.newVecL(), s2: m.newVecK(), t0: m.newVecK()}
	c := cursor{buf: b}
	copy(sk.rho[:], c.next(SeedSize))
	copy(sk.key[:], c.next(SeedSize))
	copy(sk.tr[:], c.next(CRHSize))
	for i := range sk.s1 {
		if err := unpackEta(&sk.s1[i], c.next(m.polyEtaSize()), m.eta, uint(m.setaBits)); err != nil {
			sk.Wipe()
			return nil, errors.Wrapf(ErrMalformedPrivateKey, "s1[%d]: %v", i, err)
		}
	}
	for i := range sk.s2 {
		if err := unpackEta(&sk.s2[i], c.next(m.polyEtaSize()), m.eta, uint(m.setaBits)); err != nil {
			sk.Wipe()
			return nil, errors.Wrapf(ErrMalformedPrivateKey, "s2[%d]: %v", i, err)
		}
	}
	for i := range sk.t0 {
		unpackT0(&sk.t0[i], c.next(polyT0Size))
	}

	t0, t1 := m.computeT(sk.rho[:], sk.s1, sk.s2)
	defer vecWipe(t0)
	sk.pk = &PublicKey{mode: m, rho: sk.rho, t1: t1}
	shake256(sk.pk.tr[:], sk.pk.Bytes())

	if subtle.ConstantTimeCompare(sk.tr[:], sk.pk.tr[:]) != 1 {
		sk.Wipe()
		return nil, errors.Wrap(ErrMalformedPrivateKey, "tr does not match the public key")
	}
	if !vecEqual(t0, sk.t0) {
		sk.Wipe()
		return nil, errors.Wrap(ErrMalformedPrivateKey, "t0 does not match s1 and s2")
	}
	return sk, nil
}
