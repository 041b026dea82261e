package dilithium

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Mode is one of the fixed Dilithium parameter sets. Modes are immutable;
// use the predefined Mode0..Mode3 values.
type Mode struct {
	id   int
	name string

	k        int    // rows of A, length of t, s2, h
	l        int    // columns of A, length of s1, y, z
	eta      uint32 // secret coefficient range [-eta, eta]
	setaBits int    // bits per packed eta coefficient
	beta     uint32 // bound on |c·s|
	omega    int    // max number of hint bits
}

var (
	// Mode0 is the weak parameter set (K=3, L=2).
	Mode0 = &Mode{id: 0, name: "Dilithium-Mode0", k: 3, l: 2, eta: 7, setaBits: 4, beta: 375, omega: 64}

	// Mode1 is the medium parameter set (K=4, L=3).
	Mode1 = &Mode{id: 1, name: "Dilithium-Mode1", k: 4, l: 3, eta: 6, setaBits: 4, beta: 325, omega: 80}

	// Mode2 is the recommended parameter set (K=5, L=4).
	Mode2 = &Mode{id: 2, name: "Dilithium-Mode2", k: 5, l: 4, eta: 5, setaBits: 4, beta: 275, omega: 96}

	// Mode3 is the very high parameter set (K=6, L=5).
	Mode3 = &Mode{id: 3, name: "Dilithium-Mode3", k: 6, l: 5, eta: 3, setaBits: 3, beta: 175, omega: 120}
)

var modes = [...]*Mode{Mode0, Mode1, Mode2, Mode3}

// ModeByID returns the parameter set with the given numeric identifier.
func ModeByID(id int) (*Mode, error) {
	if id < 0 || id >= len(modes) {
		return nil, errors.Wrapf(ErrInvalidMode, "mode %d", id)
	}
	return modes[id], nil
}

// ParseMode accepts either a numeric identifier ("2") or a mode name
// ("Dilithium-Mode2", "mode2"), case-insensitively.
func ParseMode(s string) (*Mode, error) {
	s = strings.TrimSpace(s)
	if id, err := strconv.Atoi(s); err == nil {
		return ModeByID(id)
	}
	for _, m := range modes {
		if strings.EqualFold(s, m.name) || strings.EqualFold(s, "mode"+strconv.Itoa(m.id)) {
			return m, nil
		}
	}
	return nil, errors.Wrapf(ErrInvalidMode, "%q", s)
}

// ID returns the numeric identifier of the mode.
func (m *Mode) ID() int { return m.id }

// String returns the name of the mode.
func (m *Mode) String() string { return m.name }

// K returns the number of rows of the public matrix.
func (m *Mode) K() int { return m.k }

// L returns the number of columns of the public matrix.
func (m *Mode) L() int { return m.l }

func (m *Mode) polyEtaSize() int { return n * m.setaBits / 8 }

// PublicKeySize is the size of a packed public key.
func (m *Mode) PublicKeySize() int {
	return SeedSize + m.k*polyT1Size
}

// PrivateKeySize is the size of a packed private key.
func (m *Mode) PrivateKeySize() int {
	return 2*SeedSize + CRHSize + (m.l+m.k)*m.polyEtaSize() + m.k*polyT0Size
}

// SignatureSize is the size of a packed signature.
func (m *Mode) SignatureSize() int {
	return m.l*polyZSize + m.omega + m.k + challengeSize
}

// maxSignAttempts is the number of rejection loop iterations that fit in the
// 16-bit mask nonce space without reusing a nonce.
func (m *Mode) maxSignAttempts() int {
	return (1 << 16) / m.l
}
