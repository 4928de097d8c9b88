package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
)

// newResetToken generates a password reset token with 32 bytes of entropy.
// The raw form goes to the user out-of-band; only the hash is ever stored,
// so a database read alone cannot yield a usable token. SHA-256 is enough
// here since the token is high-entropy and single-use, unlike a password.
func newResetToken() (raw string, hash string, err error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", "", err
	}
	raw = base64.URLEncoding.EncodeToString(b)
	return raw, hashResetToken(raw), nil
}

// hashResetToken computes the at-rest form of a reset token
func hashResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
