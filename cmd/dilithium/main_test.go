package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KarpelesLab/dilithium/internal/keyio"
)

const testSeed = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

type cliTest struct {
	t      *testing.T
	dir    string
	config string
}

func newCLITest(t *testing.T) *cliTest {
	dir := t.TempDir()
	config := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(config, []byte("mode: 1\nloglevel: error\nworkers: 2\n"), 0600))
	return &cliTest{t: t, dir: dir, config: config}
}

func (ct *cliTest) path(name string) string {
	return filepath.Join(ct.dir, name)
}

func (ct *cliTest) run(args ...string) (string, error) {
	app := newApp()
	var out bytes.Buffer
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(append([]string{"dilithium", "--config", ct.config}, args...))
	return out.String(), err
}

func (ct *cliTest) write(name, content string) string {
	p := ct.path(name)
	require.NoError(ct.t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestKeygenSignVerify(t *testing.T) {
	ct := newCLITest(t)
	prefix := ct.path("alice")
	msg := ct.write("msg.txt", "attack at dawn")

	_, err := ct.run("keygen", "--out", prefix, "--seed", testSeed)
	require.NoError(t, err)

	e, err := keyio.ReadFile(prefix + ".pub")
	require.NoError(t, err)
	assert.Equal(t, "Dilithium-Mode1", e.Mode)

	info, err := os.Stat(prefix + ".key")
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	_, err = ct.run("sign", "--key", prefix+".key", "--in", msg, "--out", ct.path("msg.sig"))
	require.NoError(t, err)
	_, err = ct.run("sign", "--key", prefix+".key", "--in", msg, "--out", ct.path("msg2.sig"))
	require.NoError(t, err)

	_, err = ct.run("verify", "--pub", prefix+".pub", "--in", msg, ct.path("msg.sig"), ct.path("msg2.sig"))
	assert.NoError(t, err)

	other := ct.write("other.txt", "attack at dusk")
	_, err = ct.run("verify", "--pub", prefix+".pub", "--in", other, ct.path("msg.sig"))
	assert.Error(t, err)

	_, err = ct.run("verify", "--pub", prefix+".pub", "--in", msg, ct.path("msg.sig"), ct.path("missing.sig"))
	assert.Error(t, err)

	_, err = ct.run("verify", "--pub", prefix+".pub", "--in", msg)
	assert.Error(t, err)
}

func TestVerifyWrongSigner(t *testing.T) {
	ct := newCLITest(t)
	msg := ct.write("msg.txt", "hello")

	_, err := ct.run("keygen", "--out", ct.path("a"))
	require.NoError(t, err)
	_, err = ct.run("keygen", "--out", ct.path("b"))
	require.NoError(t, err)
	_, err = ct.run("sign", "--key", ct.path("a.key"), "--in", msg, "--out", ct.path("a.sig"))
	require.NoError(t, err)

	_, err = ct.run("verify", "--pub", ct.path("b.pub"), "--in", msg, ct.path("a.sig"))
	assert.Error(t, err)
}

func TestKeygenErrors(t *testing.T) {
	ct := newCLITest(t)
	prefix := ct.path("k")

	_, err := ct.run("keygen", "--out", prefix, "--seed", "abcd")
	assert.Error(t, err, "short seed")

	_, err = ct.run("keygen", "--out", prefix, "--seed", "xyz")
	assert.Error(t, err, "bad hex")

	_, err = ct.run("--mode", "9", "keygen", "--out", prefix)
	assert.Error(t, err, "bad mode")

	_, err = ct.run("keygen", "--out", prefix)
	require.NoError(t, err)
	_, err = ct.run("keygen", "--out", prefix)
	assert.Error(t, err, "existing key overwritten")
}

func TestModeFlagOverridesConfig(t *testing.T) {
	ct := newCLITest(t)
	prefix := ct.path("m3")

	_, err := ct.run("--mode", "Dilithium-Mode3", "keygen", "--out", prefix, "--seed", testSeed)
	require.NoError(t, err)

	e, err := keyio.ReadFile(prefix + ".pub")
	require.NoError(t, err)
	assert.Equal(t, "Dilithium-Mode3", e.Mode)
}

func TestInfo(t *testing.T) {
	ct := newCLITest(t)

	out, err := ct.run("info")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "Dilithium-Mode1")
	assert.Contains(t, lines[1], "2044")

	out, err = ct.run("info", "--all")
	require.NoError(t, err)
	lines = strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[4], "Dilithium-Mode3")
	assert.Contains(t, lines[4], "3366")
}
