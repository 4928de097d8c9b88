package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt work factor. Fixed at startup; the salt and cost are embedded in
// the hash itself, so verification is self-describing and the cost can be
// raised later without invalidating stored hashes.
const passwordHashCost = 10

// HashPassword creates a salted bcrypt hash of the password
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), passwordHashCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether the password matches the stored hash.
// The comparison is constant-time; a mismatch is not an error.
func CheckPassword(plaintext, encodedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(plaintext)) == nil
}
