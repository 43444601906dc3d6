// Package password hashes and checks the admin password with bcrypt.
package password

import (
	"golang.org/x/crypto/bcrypt"
)

const cost = 12

// Hash returns the bcrypt hash of plain, suitable for ADMIN_PASSWORD_HASH
func Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether plain matches hash. Empty or malformed hashes never match.
func Verify(plain, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// IsHash reports whether s is a well-formed bcrypt hash
func IsHash(s string) bool {
	_, err := bcrypt.Cost([]byte(s))
	return err == nil
}
