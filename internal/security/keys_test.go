package security

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTestKeyPair(t *testing.T) (privPath, pubPath string) {
	t.Helper()
	dir := t.TempDir()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	privDER, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)
	privPath = filepath.Join(dir, "private.pem")
	require.NoError(t, os.WriteFile(privPath, pem.EncodeToMemory(&pem.Block{
		Type: "PRIVATE KEY", Bytes: privDER,
	}), 0o600))

	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pubPath = filepath.Join(dir, "public.pem")
	require.NoError(t, os.WriteFile(pubPath, pem.EncodeToMemory(&pem.Block{
		Type: "PUBLIC KEY", Bytes: pubDER,
	}), 0o644))

	return privPath, pubPath
}

func TestLoadKeys(t *testing.T) {
	privPath, pubPath := writeTestKeyPair(t)

	keys, err := LoadKeys(privPath, pubPath)
	require.NoError(t, err)
	require.NotNil(t, keys.PrivateKey)
	require.NotNil(t, keys.PublicKey)
	require.Equal(t, keys.PrivateKey.PublicKey.N, keys.PublicKey.N)
}

func TestLoadKeysMissingFile(t *testing.T) {
	_, pubPath := writeTestKeyPair(t)

	_, err := LoadKeys("/nonexistent/private.pem", pubPath)
	require.Error(t, err)
}

func TestLoadKeysRejectsGarbage(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.pem")
	require.NoError(t, os.WriteFile(bad, []byte("not a pem"), 0o600))

	_, pubPath := writeTestKeyPair(t)
	_, err := LoadKeys(bad, pubPath)
	require.Error(t, err)
	require.Contains(t, err.Error(), "no PEM block")
}

func TestLoadKeysRejectsWrongBlockType(t *testing.T) {
	privPath, pubPath := writeTestKeyPair(t)

	// Private key handed to the public slot has the wrong block type.
	_, err := LoadKeys(privPath, privPath)
	require.Error(t, err)

	_, err = LoadKeys(pubPath, pubPath)
	require.Error(t, err)
}
