package dilithium

import (
	"encoding/binary"

	"github.com/cloudflare/circl/xof"
)

// Sampler budgets in XOF blocks. The bursts make a refill astronomically
// unlikely; exceeding burst plus one block is a parameter defect.
const (
	uniformBlocks       = 5 // 840 bytes, 280 candidates for 256 slots
	uniformEtaBlocks    = 2 // 272 bytes, 544 candidates
	uniformGamma1Blocks = 5 // 680 bytes, 272 candidates
)

// uniform samples p with coefficients uniform in [0, q) from
// SHAKE128(rho || nonce), where nonce is row + 16*column of the matrix entry.
//
// Each attempt consumes 3 bytes read as a little-endian integer masked to
// 23 bits and accepts it if it is below q. The stream starts with 5 SHAKE128
// blocks and may take exactly one more.
func (p *poly) uniform(rho []byte, nonce byte) {
	s := newXOFStream(xof.SHAKE128, shake128Rate, uniformBlocks, 1, rho, []byte{nonce})
	for ctr := 0; ctr < n; {
		b, ok := s.next(3)
		if !ok {
			panic("dilithium: uniform sampler exhausted its SHAKE128 budget")
		}
		// Extract 24 bits, mask to 23 bits
		v := (uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16) & 0x7FFFFF
		if v < q {
			p[ctr] = v
			ctr++
		}
	}
}

// uniformEta samples p with coefficients uniform in [-eta, eta], stored as
// q + eta - t, from SHAKE256(seed || nonce).
//
// Each attempt consumes 1 byte and yields two candidates t: bits 0-2 and
// bits 5-7 when eta <= 3, otherwise the low and high nibble. A candidate is
// accepted if t <= 2*eta. The stream starts with 2 SHAKE256 blocks and may
// take exactly one more.
func (p *poly) uniformEta(seed []byte, nonce byte, eta uint32) {
	s := newXOFStream(xof.SHAKE256, shake256Rate, uniformEtaBlocks, 1, seed, []byte{nonce})
	defer s.wipe()

	for ctr := 0; ctr < n; {
		b, ok := s.next(1)
		if !ok {
			panic("dilithium: eta sampler exhausted its SHAKE256 budget")
		}
		var t0, t1 uint32
		if eta <= 3 {
			t0 = uint32(b[0] & 0x07)
			t1 = uint32(b[0] >> 5)
		} else {
			t0 = uint32(b[0] & 0x0F)
			t1 = uint32(b[0] >> 4)
		}
		if t0 <= 2*eta {
			p[ctr] = q + eta - t0
			ctr++
		}
		if t1 <= 2*eta && ctr < n {
			p[ctr] = q + eta - t1
			ctr++
		}
	}
}

// uniformGamma1m1 samples p with coefficients uniform in
// [-(gamma1-1), gamma1-1], stored as q + gamma1 - 1 - t, from
// SHAKE256(seed || mu || nonce) with a 2-byte little-endian nonce.
//
// Each attempt consumes 5 bytes holding two 20-bit little-endian candidates
// t, each accepted if t <= 2*gamma1 - 2. The stream starts with 5 SHAKE256
// blocks and may take exactly one more; the unconsumed tail of the burst is
// kept in front of the extra block.
func (p *poly) uniformGamma1m1(seed, mu []byte, nonce uint16) {
	var nonceBytes [2]byte
	binary.LittleEndian.PutUint16(nonceBytes[:], nonce)

	s := newXOFStream(xof.SHAKE256, shake256Rate, uniformGamma1Blocks, 1, seed, mu, nonceBytes[:])
	defer s.wipe()

	for ctr := 0; ctr < n; {
		b, ok := s.next(5)
		if !ok {
			panic("dilithium: gamma1 sampler exhausted its SHAKE256 budget")
		}
		t0 := (uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16) & 0xFFFFF
		t1 := uint32(b[2])>>4 | uint32(b[3])<<4 | uint32(b[4])<<12

		if t0 <= 2*gamma1-2 {
			p[ctr] = q + gamma1 - 1 - t0
			ctr++
		}
		if t1 <= 2*gamma1-2 && ctr < n {
			p[ctr] = q + gamma1 - 1 - t1
			ctr++
		}
	}
}

// challenge derives the challenge polynomial c with exactly 60 coefficients
// in {-1, 1} from SHAKE256(mu || packed w1).
//
// The first 8 output bytes form a little-endian sign pool. Positions are
// then fixed with an inside-out Fisher-Yates shuffle: for i = n-60..n-1 a
// byte b is drawn until b <= i, c[i] takes c[b] and c[b] becomes ±1 from the
// next sign bit. Output is squeezed one SHAKE256 block at a time for as long
// as needed.
func challenge(c *poly, mu []byte, w1 polyVecK) {
	buf := make([]byte, len(w1)*polyW1Size)
	for i := range w1 {
		packW1(buf[i*polyW1Size:], &w1[i])
	}

	s := newXOFStream(xof.SHAKE256, shake256Rate, 1, unboundedRefills, mu, buf)
	b, _ := s.next(8)
	signs := binary.LittleEndian.Uint64(b)

	*c = poly{}
	for i := n - challengeWeight; i < n; i++ {
		var j int
		for {
			b, _ = s.next(1)
			j = int(b[0])
			if j <= i {
				break
			}
		}

		c[i] = c[j]
		if signs&1 == 0 {
			c[j] = 1
		} else {
			c[j] = q - 1 // -1 mod q
		}
		signs >>= 1
	}
}

// expandMatrix expands rho into the K x L matrix A, row by row.
func (m *Mode) expandMatrix(rho []byte) []polyVecL {
	a := make([]polyVecL, m.k)
	for i := range a {
		a[i] = m.newVecL()
		for j := range a[i] {
			a[i][j].uniform(rho, byte(i+(j<<4)))
		}
	}
	return a
}
