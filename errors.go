package dilithium

import "github.com/pkg/errors"

var (
	// ErrInvalidMode is returned for an unknown parameter set.
	ErrInvalidMode = errors.New("dilithium: invalid mode")

	// ErrInvalidSeedSize is returned when a key seed is not SeedSize bytes.
	ErrInvalidSeedSize = errors.New("dilithium: invalid seed length")

	// ErrMalformedPublicKey is returned when an encoded public key cannot be
	// decoded.
	ErrMalformedPublicKey = errors.New("dilithium: malformed public key")

	// ErrMalformedPrivateKey is returned when an encoded private key cannot
	// be decoded.
	ErrMalformedPrivateKey = errors.New("dilithium: malformed private key")

	// ErrMalformedSignature is returned when an encoded signature violates
	// the signature layout.
	ErrMalformedSignature = errors.New("dilithium: malformed signature")

	// ErrSignNonConvergence is returned when the signing loop exhausted its
	// nonce space without producing a signature.
	ErrSignNonConvergence = errors.New("dilithium: signing did not converge")

	// ErrModeMismatch is returned when keys of different modes are combined.
	ErrModeMismatch = errors.New("dilithium: mode mismatch")
)
