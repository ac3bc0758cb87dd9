package utils

import (
	"crypto/rand"
	"encoding/hex"
)

const (
	shareTokenBytes = 16
	resetTokenBytes = 32
)

// GenerateShareToken returns a 32-char hex token granting read access to
// one course. Collisions against the unique index indicate a broken
// generator and are surfaced as errors by the caller, never retried.
func GenerateShareToken() (string, error) {
	return randomHex(shareTokenBytes)
}

// GenerateResetToken returns a 64-char hex token for the password reset
// flow.
func GenerateResetToken() (string, error) {
	return randomHex(resetTokenBytes)
}

func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
