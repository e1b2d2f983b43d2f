package auth

import "golang.org/x/crypto/bcrypt"

// DefaultHashCost matches bcrypt's recommended work factor.
const DefaultHashCost = 10

// HashPassword produces a salted one-way hash of plaintext.
func HashPassword(plaintext string, cost int) (string, error) {
	if cost <= 0 {
		cost = DefaultHashCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	return string(bytes), err
}

// VerifyPassword reports whether plaintext matches a stored hash.
func VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
