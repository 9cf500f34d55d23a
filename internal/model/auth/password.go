package auth

import (
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

const hashCost = 10

// HashPassword produces a salted one-way digest. A fresh salt is generated
// on every call, so hashing the same plaintext twice yields different digests.
func HashPassword(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), hashCost)
	if err != nil {
		return "", errors.Wrap(err, "hash password")
	}
	return string(digest), nil
}

// VerifyPassword reports whether plaintext matches the stored digest.
// A mismatch is not an error, just false.
func VerifyPassword(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
