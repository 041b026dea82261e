package dilithium

import (
	"encoding/binary"
	"math/bits"

	"github.com/pkg/errors"
)

// Signature is a decoded Dilithium signature.
//
// Layout: z (L x 640) || h (omega + K) || c (n/8 + 8).
type Signature struct {
	mode *Mode
	z    polyVecL // Response, canonical
	h    polyVecK // Hint bits
	c    poly     // Challenge
}

// Mode returns the parameter set of the signature.
func (sig *Signature) Mode() *Mode { return sig.mode }

// Bytes returns the encoded signature.
func (sig *Signature) Bytes() []byte {
	m := sig.mode
	b := make([]byte, m.SignatureSize())
	c := cursor{buf: b}
	for i := range sig.z {
		packZ(c.next(polyZSize), &sig.z[i])
	}
	packHint(c.next(m.omega+m.k), sig.h, m.omega)
	packChallenge(c.next(challengeSize), &sig.c)
	return b
}

// NewSignature parses an encoded signature of mode m. Every encoding is
// rejected unless it is the unique encoding of its (z, h, c).
func (m *Mode) NewSignature(b []byte) (*Signature, error) {
	if len(b) != m.SignatureSize() {
		return nil, errors.Wrapf(ErrMalformedSignature, "length %d, want %d", len(b), m.SignatureSize())
	}

	sig := &Signature{mode: m, z: m.newVecL(), h: m.newVecK()}
	c := cursor{buf: b}
	for i := range sig.z {
		unpackZ(&sig.z[i], c.next(polyZSize))
	}
	if err := unpackHint(sig.h, c.next(m.omega+m.k), m.omega); err != nil {
		return nil, err
	}
	if err := unpackChallenge(&sig.c, c.next(challengeSize)); err != nil {
		return nil, err
	}
	return sig, nil
}

// packHint writes the positions of the set hint bits row by row into the
// first omega bytes and the running count after each row into the last K
// bytes. Unused position slots are zero. h must hold at most omega bits.
func packHint(b []byte, h polyVecK, omega int) {
	clear(b)
	k := 0
	for i := range h {
		for j := range h[i] {
			if h[i][j] != 0 {
				b[k] = byte(j)
				k++
			}
		}
		b[omega+i] = byte(k)
	}
}

func unpackHint(h polyVecK, b []byte, omega int) error {
	k := 0
	for i := range h {
		h[i] = poly{}
		end := int(b[omega+i])
		if end < k || end > omega {
			return errors.Wrapf(ErrMalformedSignature, "hint row %d ends at %d after %d", i, end, k)
		}
		for j := k; j < end; j++ {
			if j > k && b[j] <= b[j-1] {
				return errors.Wrapf(ErrMalformedSignature, "hint row %d positions not ascending", i)
			}
			h[i][b[j]] = 1
		}
		k = end
	}
	for j := k; j < omega; j++ {
		if b[j] != 0 {
			return errors.Wrapf(ErrMalformedSignature, "hint slot %d is not zero padding", j)
		}
	}
	return nil
}

// packChallenge writes a bitmap of the nonzero positions of c followed by
// a little-endian 64-bit sign word holding one bit per nonzero coefficient
// in ascending position order, set for -1.
func packChallenge(b []byte, c *poly) {
	var signs, mask uint64 = 0, 1
	for i := 0; i < n/8; i++ {
		b[i] = 0
		for j := 0; j < 8; j++ {
			if c[8*i+j] != 0 {
				b[i] |= 1 << j
				if c[8*i+j] == q-1 {
					signs |= mask
				}
				mask <<= 1
			}
		}
	}
	binary.LittleEndian.PutUint64(b[n/8:], signs)
}

func unpackChallenge(c *poly, b []byte) error {
	weight := 0
	for _, x := range b[:n/8] {
		weight += bits.OnesCount8(x)
	}
	if weight != challengeWeight {
		return errors.Wrapf(ErrMalformedSignature, "challenge has %d nonzero coefficients", weight)
	}
	signs := binary.LittleEndian.Uint64(b[n/8:])
	if signs>>challengeWeight != 0 {
		return errors.Wrap(ErrMalformedSignature, "challenge sign bits beyond the last coefficient")
	}

	*c = poly{}
	for i := 0; i < n/8; i++ {
		for j := 0; j < 8; j++ {
			if (b[i]>>j)&1 == 0 {
				continue
			}
			if signs&1 != 0 {
				c[8*i+j] = q - 1
			} else {
				c[8*i+j] = 1
			}
			signs >>= 1
		}
	}
	return nil
}
