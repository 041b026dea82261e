package main

import (
	"context"
	cryptorand "crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/KarpelesLab/dilithium"
	"github.com/KarpelesLab/dilithium/internal/batch"
	"github.com/KarpelesLab/dilithium/internal/keyio"
)

func commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "keygen",
			Usage: "Generate a key pair",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "out",
					Usage:    "Write the keys to `PREFIX`.pub and PREFIX.key",
					Required: true,
				},
				&cli.StringFlag{
					Name:  "seed",
					Usage: "Derive the keys from a 32-byte hex `SEED` instead of random bytes",
				},
			},
			Action: keygen,
		},
		{
			Name:  "sign",
			Usage: "Sign a file",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "key", Usage: "Private key `FILE`", Required: true},
				&cli.StringFlag{Name: "in", Usage: "Message `FILE`", Required: true},
				&cli.StringFlag{Name: "out", Usage: "Signature `FILE`", Required: true},
			},
			Action: sign,
		},
		{
			Name:      "verify",
			Usage:     "Verify signatures of a file",
			ArgsUsage: "SIGNATURE...",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "pub", Usage: "Public key `FILE`", Required: true},
				&cli.StringFlag{Name: "in", Usage: "Message `FILE`", Required: true},
			},
			Action: verify,
		},
		{
			Name:  "info",
			Usage: "Print the sizes of the configured parameter set",
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "all", Usage: "Print every parameter set"},
			},
			Action: info,
		},
	}
}

func keygen(c *cli.Context) error {
	s, err := loadSettings(c)
	if err != nil {
		return err
	}

	var (
		pk *dilithium.PublicKey
		sk *dilithium.PrivateKey
	)
	if seedHex := c.String("seed"); seedHex != "" {
		seed, err := hex.DecodeString(seedHex)
		if err != nil {
			return errors.Wrap(err, "invalid seed")
		}
		pk, sk, err = dilithium.NewKeyFromSeed(s.mode, seed)
		clear(seed)
		if err != nil {
			return err
		}
	} else {
		pk, sk, err = dilithium.GenerateKey(s.mode, cryptorand.Reader)
		if err != nil {
			return err
		}
	}
	defer sk.Wipe()

	prefix := c.String("out")
	pubFile, keyFile := prefix+".pub", prefix+".key"
	if err := keyio.WriteFile(keyFile, keyio.NewPrivateKey(sk), 0600); err != nil {
		return err
	}
	if err := keyio.WriteFile(pubFile, keyio.NewPublicKey(pk), 0644); err != nil {
		return err
	}

	s.log.Info().
		Str("mode", s.mode.String()).
		Str("fingerprint", keyio.Fingerprint(pk)).
		Str("file", pubFile).
		Msg("Generated key pair")
	return nil
}

func sign(c *cli.Context) error {
	s, err := loadSettings(c)
	if err != nil {
		return err
	}

	e, err := keyio.ReadFile(c.String("key"))
	if err != nil {
		return err
	}
	sk, err := e.PrivateKey()
	if err != nil {
		return errors.Wrapf(err, "cannot load private key %s", c.String("key"))
	}
	defer sk.Wipe()
	if sk.Mode() != s.mode && c.IsSet(modeFlag) {
		s.log.Warn().Str("mode", sk.Mode().String()).Msg("Key mode differs from --mode, using the key's mode")
	}

	msg, err := os.ReadFile(c.String("in"))
	if err != nil {
		return errors.Wrap(err, "cannot read message")
	}
	sig, err := dilithium.Sign(sk, msg)
	if err != nil {
		return err
	}

	out := c.String("out")
	if err := keyio.WriteFile(out, keyio.NewSignature(sk.PublicKey(), sig), 0644); err != nil {
		return err
	}
	s.log.Info().
		Str("mode", sk.Mode().String()).
		Str("fingerprint", e.Fingerprint).
		Int("bytes", len(msg)).
		Str("file", out).
		Msg("Signed message")
	return nil
}

func verify(c *cli.Context) error {
	s, err := loadSettings(c)
	if err != nil {
		return err
	}
	files := c.Args().Slice()
	if len(files) == 0 {
		return errors.New("no signature files given")
	}

	e, err := keyio.ReadFile(c.String("pub"))
	if err != nil {
		return err
	}
	pk, err := e.PublicKey()
	if err != nil {
		return errors.Wrapf(err, "cannot load public key %s", c.String("pub"))
	}
	msg, err := os.ReadFile(c.String("in"))
	if err != nil {
		return errors.Wrap(err, "cannot read message")
	}

	// Signatures that cannot be loaded stay nil and verify as invalid.
	sigs := make([][]byte, len(files))
	for i, file := range files {
		se, err := keyio.ReadFile(file)
		if err == nil {
			sigs[i], err = se.Signature(pk)
		}
		if err != nil {
			s.log.Error().Err(err).Str("file", file).Msg("Cannot load signature")
		}
	}

	valid, err := batch.Verify(context.Background(), pk, msg, sigs, s.workers)
	if err != nil {
		return err
	}
	for i, file := range files {
		s.log.Info().
			Str("file", file).
			Str("fingerprint", e.Fingerprint).
			Bool("valid", valid[i]).
			Msg("Verified signature")
	}
	if !batch.AllValid(valid) {
		return errors.New("signature verification failed")
	}
	return nil
}

func info(c *cli.Context) error {
	s, err := loadSettings(c)
	if err != nil {
		return err
	}

	modes := []*dilithium.Mode{s.mode}
	if c.Bool("all") {
		modes = modes[:0]
		for id := 0; ; id++ {
			m, err := dilithium.ModeByID(id)
			if err != nil {
				break
			}
			modes = append(modes, m)
		}
	}

	w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MODE\tK\tL\tPUBLIC KEY\tPRIVATE KEY\tSIGNATURE")
	for _, m := range modes {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\n", m, m.K(), m.L(), m.PublicKeySize(), m.PrivateKeySize(), m.SignatureSize())
	}
	return w.Flush()
}
