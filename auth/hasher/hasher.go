package hasher

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"memberserver/auth/users"
)

var ErrInvalidInput = errors.New("password must not be empty")

// Bcrypt hashes passwords with bcrypt. The salt is embedded in the
// produced hash, so a secret is a single opaque value.
type Bcrypt struct {
	cost int
}

func New() *Bcrypt {
	return &Bcrypt{cost: bcrypt.DefaultCost}
}

func (h *Bcrypt) Hash(plaintext string) (users.Secret, error) {
	if plaintext == "" {
		return users.Secret{}, ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return users.Secret{}, err
	}
	return users.Secret{PasswordHash: hash}, nil
}

// Verify reports whether plaintext matches the stored secret. A
// mismatch is a normal false result, never an error.
func (h *Bcrypt) Verify(plaintext string, secret users.Secret) bool {
	return bcrypt.CompareHashAndPassword(secret.PasswordHash, []byte(plaintext)) == nil
}
