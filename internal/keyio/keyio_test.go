package keyio

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KarpelesLab/dilithium"
)

func testKey(t *testing.T, m *dilithium.Mode) (*dilithium.PublicKey, *dilithium.PrivateKey) {
	t.Helper()
	pk, sk, err := dilithium.NewKeyFromSeed(m, bytes.Repeat([]byte{0x33}, dilithium.SeedSize))
	require.NoError(t, err)
	return pk, sk
}

func TestFingerprint(t *testing.T) {
	pk, sk := testKey(t, dilithium.Mode1)
	fp := Fingerprint(pk)
	assert.Len(t, fp, 2*fingerprintSize)
	assert.Equal(t, fp, Fingerprint(sk.PublicKey()))

	other, _ := testKey(t, dilithium.Mode2)
	assert.NotEqual(t, fp, Fingerprint(other))
}

func TestPublicKeyEnvelope(t *testing.T) {
	pk, _ := testKey(t, dilithium.Mode2)

	b, err := Marshal(NewPublicKey(pk))
	require.NoError(t, err)
	assert.Contains(t, string(b), "mode: Dilithium-Mode2")
	assert.Contains(t, string(b), "type: public-key")

	e, err := Unmarshal(b)
	require.NoError(t, err)
	got, err := e.PublicKey()
	require.NoError(t, err)
	assert.True(t, pk.Equal(got))

	_, err = e.PrivateKey()
	assert.ErrorIs(t, err, ErrWrongType)
}

func TestPrivateKeyEnvelope(t *testing.T) {
	_, sk := testKey(t, dilithium.Mode0)

	e := NewPrivateKey(sk)
	got, err := e.PrivateKey()
	require.NoError(t, err)
	assert.True(t, sk.Equal(got))
}

func TestFingerprintMismatch(t *testing.T) {
	pk, sk := testKey(t, dilithium.Mode3)
	other, _ := testKey(t, dilithium.Mode2)

	e := NewPublicKey(pk)
	e.Fingerprint = Fingerprint(other)
	_, err := e.PublicKey()
	assert.ErrorIs(t, err, ErrFingerprintMismatch)

	e = NewPrivateKey(sk)
	e.Fingerprint = Fingerprint(other)
	_, err = e.PrivateKey()
	assert.ErrorIs(t, err, ErrFingerprintMismatch)
}

func TestSignatureEnvelope(t *testing.T) {
	pk, sk := testKey(t, dilithium.Mode2)
	msg := []byte("envelope")
	sig, err := dilithium.Sign(sk, msg)
	require.NoError(t, err)

	e := NewSignature(pk, sig)
	got, err := e.Signature(pk)
	require.NoError(t, err)
	assert.Equal(t, sig, got)
	assert.True(t, pk.Verify(msg, got))

	otherMode, _ := testKey(t, dilithium.Mode1)
	_, err = e.Signature(otherMode)
	assert.ErrorIs(t, err, dilithium.ErrModeMismatch)

	sameMode, _, err := dilithium.NewKeyFromSeed(dilithium.Mode2, make([]byte, dilithium.SeedSize))
	require.NoError(t, err)
	_, err = e.Signature(sameMode)
	assert.ErrorIs(t, err, ErrFingerprintMismatch)
}

func TestMalformedEnvelope(t *testing.T) {
	pk, _ := testKey(t, dilithium.Mode2)

	e := NewPublicKey(pk)
	e.Data = "zz"
	_, err := e.PublicKey()
	assert.Error(t, err)

	e = NewPublicKey(pk)
	e.Mode = "Dilithium-Mode7"
	_, err = e.PublicKey()
	assert.ErrorIs(t, err, dilithium.ErrInvalidMode)

	e = NewPublicKey(pk)
	e.Data = e.Data[:len(e.Data)-2]
	_, err = e.PublicKey()
	assert.ErrorIs(t, err, dilithium.ErrMalformedPublicKey)

	_, err = Unmarshal([]byte("mode: [\n"))
	assert.Error(t, err)
}

func TestFiles(t *testing.T) {
	pk, _ := testKey(t, dilithium.Mode1)
	path := filepath.Join(t.TempDir(), "test.pub")

	require.NoError(t, WriteFile(path, NewPublicKey(pk), 0644))
	assert.Error(t, WriteFile(path, NewPublicKey(pk), 0644), "existing file overwritten")

	e, err := ReadFile(path)
	require.NoError(t, err)
	got, err := e.PublicKey()
	require.NoError(t, err)
	assert.True(t, pk.Equal(got))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.False(t, info.IsDir())

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
