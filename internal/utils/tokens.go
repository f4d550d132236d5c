package utils

import (
	"crypto/rand"
	"encoding/base64"
	"io"
)

// GenerateSecureToken creates a cryptographically secure random token of
// length random bytes, URL-safe base64 encoded.
func GenerateSecureToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := io.ReadFull(rand.Reader, bytes); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}

// NewSessionID returns an opaque identifier for an assessment session.
func NewSessionID() (string, error) {
	return GenerateSecureToken(18)
}
