// Package keyio stores keys and signatures as small YAML documents:
//
//	mode: Dilithium-Mode2
//	type: public-key
//	fingerprint: 5f0c...
//	data: 8a41...
//
// The fingerprint identifies the public key involved: the key itself, the
// public half of a private key, or the signer of a signature.
package keyio

import (
	"encoding/hex"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/crypto/sha3"
	"gopkg.in/yaml.v3"

	"github.com/KarpelesLab/dilithium"
)

// Envelope types.
const (
	TypePublicKey  = "public-key"
	TypePrivateKey = "private-key"
	TypeSignature  = "signature"
)

const fingerprintSize = 16

var (
	ErrWrongType           = errors.New("keyio: unexpected envelope type")
	ErrFingerprintMismatch = errors.New("keyio: fingerprint does not match the key")
)

// Envelope is the on-disk form of a key or signature.
type Envelope struct {
	Mode        string `yaml:"mode"`
	Type        string `yaml:"type"`
	Fingerprint string `yaml:"fingerprint"`
	Data        string `yaml:"data"`
}

// Fingerprint returns the hex encoded truncated SHA3-256 of the encoded
// public key.
func Fingerprint(pk *dilithium.PublicKey) string {
	sum := sha3.Sum256(pk.Bytes())
	return hex.EncodeToString(sum[:fingerprintSize])
}

func newEnvelope(typ string, pk *dilithium.PublicKey, data []byte) *Envelope {
	return &Envelope{
		Mode:        pk.Mode().String(),
		Type:        typ,
		Fingerprint: Fingerprint(pk),
		Data:        hex.EncodeToString(data),
	}
}

// NewPublicKey wraps pk.
func NewPublicKey(pk *dilithium.PublicKey) *Envelope {
	return newEnvelope(TypePublicKey, pk, pk.Bytes())
}

// NewPrivateKey wraps sk.
func NewPrivateKey(sk *dilithium.PrivateKey) *Envelope {
	return newEnvelope(TypePrivateKey, sk.PublicKey(), sk.Bytes())
}

// NewSignature wraps a signature made by the private half of pk.
func NewSignature(pk *dilithium.PublicKey, sig []byte) *Envelope {
	return newEnvelope(TypeSignature, pk, sig)
}

func (e *Envelope) decode(typ string) (*dilithium.Mode, []byte, error) {
	if e.Type != typ {
		return nil, nil, errors.Wrapf(ErrWrongType, "got %q, want %q", e.Type, typ)
	}
	mode, err := dilithium.ParseMode(e.Mode)
	if err != nil {
		return nil, nil, err
	}
	data, err := hex.DecodeString(e.Data)
	if err != nil {
		return nil, nil, errors.Wrap(err, "keyio: invalid data")
	}
	return mode, data, nil
}

// PublicKey decodes a public key envelope.
func (e *Envelope) PublicKey() (*dilithium.PublicKey, error) {
	mode, data, err := e.decode(TypePublicKey)
	if err != nil {
		return nil, err
	}
	pk, err := mode.NewPublicKey(data)
	if err != nil {
		return nil, err
	}
	if Fingerprint(pk) != e.Fingerprint {
		return nil, ErrFingerprintMismatch
	}
	return pk, nil
}

// PrivateKey decodes a private key envelope.
func (e *Envelope) PrivateKey() (*dilithium.PrivateKey, error) {
	mode, data, err := e.decode(TypePrivateKey)
	if err != nil {
		return nil, err
	}
	defer clear(data)
	sk, err := mode.NewPrivateKey(data)
	if err != nil {
		return nil, err
	}
	if Fingerprint(sk.PublicKey()) != e.Fingerprint {
		sk.Wipe()
		return nil, ErrFingerprintMismatch
	}
	return sk, nil
}

// Signature decodes a signature envelope and checks that it names pk as
// the signer. The signature itself is not verified.
func (e *Envelope) Signature(pk *dilithium.PublicKey) ([]byte, error) {
	mode, data, err := e.decode(TypeSignature)
	if err != nil {
		return nil, err
	}
	if mode != pk.Mode() {
		return nil, errors.Wrapf(dilithium.ErrModeMismatch, "signature is %s, key is %s", mode, pk.Mode())
	}
	if Fingerprint(pk) != e.Fingerprint {
		return nil, ErrFingerprintMismatch
	}
	return data, nil
}

// Marshal encodes e as YAML.
func Marshal(e *Envelope) ([]byte, error) {
	return yaml.Marshal(e)
}

// Unmarshal decodes a YAML envelope.
func Unmarshal(b []byte) (*Envelope, error) {
	var e Envelope
	if err := yaml.Unmarshal(b, &e); err != nil {
		return nil, errors.Wrap(err, "keyio: invalid envelope")
	}
	return &e, nil
}

// WriteFile writes e to path with the given permissions. Existing files
// are not overwritten.
func WriteFile(path string, e *Envelope, perm os.FileMode) error {
	b, err := Marshal(e)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return errors.Wrapf(err, "cannot create %s", path)
	}
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "cannot write %s", path)
	}
	return f.Close()
}

// ReadFile reads an envelope from path.
func ReadFile(path string) (*Envelope, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read %s", path)
	}
	return Unmarshal(b)
}
