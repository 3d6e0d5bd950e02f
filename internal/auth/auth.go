// Package auth provides Kalshi API authentication using RSA-PSS signatures.
package auth

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Signature headers attached to every Kalshi API request.
const (
	HeaderAccessKey       = "KALSHI-ACCESS-KEY"
	HeaderAccessSignature = "KALSHI-ACCESS-SIGNATURE"
	HeaderAccessTimestamp = "KALSHI-ACCESS-TIMESTAMP"
)

// Credentials holds the API key ID and private key for signing requests.
type Credentials struct {
	KeyID      string          // API key ID from the Kalshi dashboard
	PrivateKey *rsa.PrivateKey // RSA private key for signing
}

// LoadCredentials loads credentials from a key ID and a private key PEM file.
func LoadCredentials(keyID, privateKeyPath string) (*Credentials, error) {
	if keyID == "" {
		return nil, fmt.Errorf("API key ID is required")
	}
	if privateKeyPath == "" {
		return nil, fmt.Errorf("private key path is required")
	}

	privateKey, err := LoadPrivateKey(privateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("load private key: %w", err)
	}

	return &Credentials{
		KeyID:      keyID,
		PrivateKey: privateKey,
	}, nil
}

// CredentialsFromPEM builds credentials from in-memory PEM key material,
// e.g. a key supplied via environment variable.
func CredentialsFromPEM(keyID string, pemData []byte) (*Credentials, error) {
	if keyID == "" {
		return nil, fmt.Errorf("API key ID is required")
	}

	privateKey, err := ParsePrivateKey(pemData)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}

	return &Credentials{
		KeyID:      keyID,
		PrivateKey: privateKey,
	}, nil
}

// LoadPrivateKey loads an RSA private key from a PEM file.
func LoadPrivateKey(path string) (*rsa.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read key file: %w", err)
	}
	return ParsePrivateKey(data)
}

// ParsePrivateKey parses an RSA private key from PEM bytes.
func ParsePrivateKey(data []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("failed to decode PEM block")
	}

	// Try PKCS#8 first (newer format)
	key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err == nil {
		rsaKey, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("key is not an RSA private key")
		}
		return rsaKey, nil
	}

	// Fall back to PKCS#1 (older format)
	rsaKey, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}

	return rsaKey, nil
}

// SignRequest generates authentication headers for a Kalshi API request.
// Signatures are single-use: every request gets a fresh timestamp and
// signature, never cached or reused.
func (c *Credentials) SignRequest(method, path string) (headers map[string]string, err error) {
	timestampMs := time.Now().UnixMilli()

	signature, err := c.signAt(timestampMs, method, path)
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"Content-Type":        "application/json",
		HeaderAccessKey:       c.KeyID,
		HeaderAccessSignature: signature,
		HeaderAccessTimestamp: strconv.FormatInt(timestampMs, 10),
	}, nil
}

// SigningMessage is the exact string signed for a request: millisecond
// timestamp + HTTP method + path with any query string stripped.
func SigningMessage(timestampMs int64, method, path string) string {
	path, _, _ = strings.Cut(path, "?")
	return strconv.FormatInt(timestampMs, 10) + method + path
}

// signAt creates a base64 RSA-PSS signature for the given request tuple.
// PSS parameters: SHA-256 digest, MGF1 with SHA-256, salt length equal to
// the digest length.
func (c *Credentials) signAt(timestampMs int64, method, path string) (string, error) {
	message := SigningMessage(timestampMs, method, path)

	hashed := sha256.Sum256([]byte(message))

	signature, err := rsa.SignPSS(
		rand.Reader,
		c.PrivateKey,
		crypto.SHA256,
		hashed[:],
		&rsa.PSSOptions{SaltLength: rsa.PSSSaltLengthEqualsHash},
	)
	if err != nil {
		return "", fmt.Errorf("sign message: %w", err)
	}

	return base64.StdEncoding.EncodeToString(signature), nil
}
