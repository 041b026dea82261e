package dilithium

import (
	"bytes"
	"testing"

	"github.com/cloudflare/circl/xof"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXOFStreamBudget(t *testing.T) {
	s := newXOFStream(xof.SHAKE256, shake256Rate, 1, 1, []byte("budget"))

	// one burst block plus one refill, read in 5-byte steps
	total := 0
	for {
		b, ok := s.next(5)
		if !ok {
			break
		}
		require.Len(t, b, 5)
		total += 5
	}
	// 27 reads fit the burst, the 1-byte tail plus one block give 27 more
	assert.Equal(t, 5*((2*shake256Rate)/5), total)
}

func TestXOFStreamMatchesSqueeze(t *testing.T) {
	want := make([]byte, 4*shake128Rate)
	h := xof.SHAKE128.New()
	_, _ = h.Write([]byte("abc"))
	_, _ = h.Read(want)

	s := newXOFStream(xof.SHAKE128, shake128Rate, 1, unboundedRefills, []byte("a"), []byte("bc"))
	var got []byte
	for len(got) < len(want) {
		b, ok := s.next(3)
		require.True(t, ok)
		got = append(got, b...)
	}
	assert.Equal(t, want, got[:len(want)])
}

func TestUniform(t *testing.T) {
	rho := bytes.Repeat([]byte{0x42}, SeedSize)
	var a, b, c poly
	a.uniform(rho, 0)
	b.uniform(rho, 0)
	c.uniform(rho, 1)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	for _, x := range a {
		require.Less(t, x, uint32(q))
	}
}

func TestUniformEta(t *testing.T) {
	seed := bytes.Repeat([]byte{0x17}, SeedSize)
	for _, m := range modes {
		var s poly
		s.uniformEta(seed, 3, m.eta)
		for _, x := range s {
			require.GreaterOrEqual(t, x, q-m.eta, "%s", m)
			require.LessOrEqual(t, x, q+m.eta, "%s", m)
		}
	}
}

func TestUniformGamma1m1(t *testing.T) {
	key := bytes.Repeat([]byte{0x99}, SeedSize)
	mu := make([]byte, CRHSize)
	var y, y2 poly
	y.uniformGamma1m1(key, mu, 0)
	y2.uniformGamma1m1(key, mu, 1)
	assert.NotEqual(t, y, y2)
	for _, x := range y {
		require.GreaterOrEqual(t, x, uint32(q-gamma1+1))
		require.LessOrEqual(t, x, uint32(q+gamma1-1))
	}
}

func TestChallenge(t *testing.T) {
	mu := bytes.Repeat([]byte{0x01}, CRHSize)
	w1 := Mode2.newVecK()
	w1[0][0] = 7

	var c, c2 poly
	challenge(&c, mu, w1)
	challenge(&c2, mu, w1)
	assert.Equal(t, c, c2)

	weight := 0
	for _, x := range c {
		switch x {
		case 0:
		case 1, q - 1:
			weight++
		default:
			t.Fatalf("challenge coefficient %d", x)
		}
	}
	assert.Equal(t, challengeWeight, weight)

	w1[0][0] = 8
	challenge(&c2, mu, w1)
	assert.NotEqual(t, c, c2)
}

func TestExpandMatrix(t *testing.T) {
	rho := make([]byte, SeedSize)
	a := Mode1.expandMatrix(rho)
	require.Len(t, a, Mode1.K())
	for i := range a {
		require.Len(t, a[i], Mode1.L())
	}

	var want poly
	want.uniform(rho, 2|1<<4)
	assert.Equal(t, want, a[2][1])
}
