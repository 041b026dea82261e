package dilithium

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hexBytes is a helper type for JSON unmarshaling of hex strings
type hexBytes []byte

func (h *hexBytes) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return err
	}
	*h = b
	return nil
}

// TestKnownAnswers checks SHA-256 digests of keys and signatures derived
// from fixed seeds and messages.
func TestKnownAnswers(t *testing.T) {
	data, err := os.ReadFile("testdata/kat.json")
	require.NoError(t, err)

	var kat struct {
		Vectors []struct {
			Mode int      `json:"mode"`
			Seed hexBytes `json:"seed"`
			Msg  hexBytes `json:"msg"`
			PK   hexBytes `json:"pk"`
			SK   hexBytes `json:"sk"`
			Sig  hexBytes `json:"sig"`
		} `json:"vectors"`
	}
	require.NoError(t, json.Unmarshal(data, &kat))
	require.NotEmpty(t, kat.Vectors)

	digest := func(b []byte) []byte {
		h := sha256.Sum256(b)
		return h[:]
	}

	for i, v := range kat.Vectors {
		m, err := ModeByID(v.Mode)
		require.NoError(t, err)

		pk, sk, err := NewKeyFromSeed(m, v.Seed)
		require.NoError(t, err)
		assert.Equal(t, []byte(v.PK), digest(pk.Bytes()), "vector %d: public key", i)
		assert.Equal(t, []byte(v.SK), digest(sk.Bytes()), "vector %d: private key", i)

		sig, err := Sign(sk, v.Msg)
		require.NoError(t, err)
		assert.Equal(t, []byte(v.Sig), digest(sig), "vector %d: signature", i)
		assert.True(t, pk.Verify(v.Msg, sig), "vector %d: verify", i)
	}
}
