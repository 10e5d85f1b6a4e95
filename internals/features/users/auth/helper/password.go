package helper

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword produces a salted one-way digest. Never reversible.
func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPasswordHash compares digest vs plaintext. bcrypt's comparison is
// constant-time, so a mismatch leaks no timing.
func CheckPasswordHash(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
