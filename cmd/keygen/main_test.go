package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	solanainfra "github.com/metadataee/metadata/internal/infra/solana"
)

func TestRun_WritesLoadableKeypair(t *testing.T) {
	path := filepath.Join(t.TempDir(), "k.json")
	var out bytes.Buffer

	require.NoError(t, run([]string{"-out", path}, &out))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	acc, err := solanainfra.DecodeSecret(string(raw))
	require.NoError(t, err)
	assert.Contains(t, out.String(), acc.PublicKey.ToBase58())

	// The printed secret decodes to the same signer.
	m := regexp.MustCompile(`Secret \(SOLANA_PRIVATE_KEY\):\n  (\S+)`).FindStringSubmatch(out.String())
	require.Len(t, m, 2)
	fromSecret, err := solanainfra.EnvKeyLoader{Secret: m[1]}.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, acc.PublicKey, fromSecret.PublicKey)
}

func TestRun_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "k.json")
	require.NoError(t, os.WriteFile(path, []byte("keep"), 0o600))

	err := run([]string{"-out", path}, &bytes.Buffer{})
	require.Error(t, err)
	raw, _ := os.ReadFile(path)
	assert.Equal(t, "keep", string(raw))

	require.NoError(t, run([]string{"-out", path, "-force", "-no-secret"}, &bytes.Buffer{}))
	raw, _ = os.ReadFile(path)
	assert.NotEqual(t, "keep", string(raw))
}
