package security

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
)

// KeyMaterial holds the process-wide RSA pair: private key signs access
// tokens, public key verifies them. Loaded once at startup and never
// mutated, so concurrent reads need no locking.
type KeyMaterial struct {
	PrivateKey *rsa.PrivateKey
	PublicKey  *rsa.PublicKey
}

// LoadKeys reads PEM-encoded PKCS8 private and PKIX public keys from the
// configured paths. Any failure here must abort startup: the service
// cannot operate without verifiable signing.
func LoadKeys(privatePath, publicPath string) (*KeyMaterial, error) {
	priv, err := loadPrivateKey(privatePath)
	if err != nil {
		return nil, fmt.Errorf("load private key %s: %w", privatePath, err)
	}
	pub, err := loadPublicKey(publicPath)
	if err != nil {
		return nil, fmt.Errorf("load public key %s: %w", publicPath, err)
	}
	return &KeyMaterial{PrivateKey: priv, PublicKey: pub}, nil
}

func loadPrivateKey(path string) (*rsa.PrivateKey, error) {
	der, err := readPEM(path, "PRIVATE KEY")
	if err != nil {
		return nil, err
	}
	key, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, fmt.Errorf("parse PKCS8: %w", err)
	}
	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("not an RSA private key: %T", key)
	}
	return rsaKey, nil
}

func loadPublicKey(path string) (*rsa.PublicKey, error) {
	der, err := readPEM(path, "PUBLIC KEY")
	if err != nil {
		return nil, err
	}
	key, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, fmt.Errorf("parse PKIX: %w", err)
	}
	rsaKey, ok := key.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("not an RSA public key: %T", key)
	}
	return rsaKey, nil
}

func readPEM(path, wantType string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	block, _ := pem.Decode(raw)
	if block == nil {
		return nil, fmt.Errorf("no PEM block found")
	}
	if block.Type != wantType {
		return nil, fmt.Errorf("unexpected PEM block type %q, want %q", block.Type, wantType)
	}
	return block.Bytes, nil
}
