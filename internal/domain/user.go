package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an authentication identity keyed by email address.
// Email is stored lower-cased; PasswordHash is a bcrypt hash.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	IsStaff      bool
	CreatedAt    time.Time
}
