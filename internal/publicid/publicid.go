// Package publicid mints the opaque tokens that grant unauthenticated read
// access to a single bill's receipt. Tokens are pure random with no
// timestamp or sequence component, so knowing one bill's token reveals
// nothing about any other.
package publicid

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const tokenBytes = 16

// New returns a 32-character hex token with 128 bits of entropy.
func New() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("publicid: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
