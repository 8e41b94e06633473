package users

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Email        string
	RegisteredAt time.Time
}

// IsAnonymous reports whether the user is the zero value used for
// requests that carry no valid session.
func (u User) IsAnonymous() bool {
	return u.ID == uuid.Nil
}

type Secret struct {
	PasswordHash []byte
}
