package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashString returns the hex-encoded SHA-256 of input
func HashString(input string) string {
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}

// HashEmail hashes an address after case folding, so log lines for the same
// person correlate without the address itself being logged.
func HashEmail(email string) string {
	return HashString(strings.ToLower(strings.TrimSpace(email)))
}
