package session

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// NewToken generates a cryptographically random session identity.
// 32 bytes = 256 bits of entropy, URL-safe base64 without padding.
func NewToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
