package credentials

import (
	"golang.org/x/crypto/bcrypt"
)

// HashCost is the bcrypt cost factor. Raising it slows brute-force
// attempts at the price of CPU time per login.
const HashCost = 10

// HashPassword hashes a plaintext password using bcrypt with a
// per-password random salt.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), HashCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// VerifyPassword reports whether plaintext matches the stored hash.
// Mismatch and malformed hash are indistinguishable to the caller.
func VerifyPassword(hash string, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
