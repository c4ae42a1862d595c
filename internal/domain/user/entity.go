package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type User struct {
	id           uuid.UUID
	name         string
	email        Email
	passwordHash string
	createdAt    time.Time
	updatedAt    time.Time
}

func NewUser(name string, email Email, passwordHash string) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return &User{
		id:           uuid.New(),
		name:         name,
		email:        email,
		passwordHash: passwordHash,
	}, nil
}

func ReconstructUser(id uuid.UUID, name string, email Email, passwordHash string, createdAt, updatedAt time.Time) *User {
	return &User{
		id:           id,
		name:         name,
		email:        email,
		passwordHash: passwordHash,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// Patch applies a partial update. Nil fields are left untouched.
func (u *User) Patch(name *string, email *Email) error {
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return ErrEmptyName
		}
		u.name = trimmed
	}
	if email != nil {
		u.email = *email
	}
	return nil
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Name() string         { return u.name }
func (u *User) Email() Email         { return u.email }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }
