//go:build unit

package user_test

import (
	"strings"
	"testing"

	"lendit/internal/domain/user"
	"lendit/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.UserBuilder)
	errIs  error
}

func TestUser(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewUserBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, "Test User", actual.Name())
		assert.Equal(t, "test@example.com", actual.Email().Value())
		assert.Equal(t, "hashed_password", actual.PasswordHash())
	})

	t.Run("email validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "valid email",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("valid@example.com") },
			},
			{
				name:   "empty email",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("") },
				errIs:  user.ErrInvalidEmail,
			},
			{
				name:   "missing at sign",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("invalidemail.com") },
				errIs:  user.ErrInvalidEmail,
			},
			{
				name:   "missing domain",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("user@") },
				errIs:  user.ErrInvalidEmail,
			},
		})
	})

	t.Run("name validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "empty name",
				mutate: func(b *builder.UserBuilder) { b.WithName("") },
				errIs:  user.ErrEmptyName,
			},
			{
				name:   "whitespace only name",
				mutate: func(b *builder.UserBuilder) { b.WithName("   ") },
				errIs:  user.ErrEmptyName,
			},
		})
	})

	t.Run("name trimming", func(t *testing.T) {
		actual, err := builder.NewUserBuilder().WithName("  Alice  ").BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, "Alice", actual.Name())
	})

	t.Run("patch", func(t *testing.T) {
		u, err := builder.NewUserBuilder().BuildDomain()
		require.NoError(t, err)

		newName := "Renamed"
		require.NoError(t, u.Patch(&newName, nil))
		assert.Equal(t, "Renamed", u.Name())
		assert.Equal(t, "test@example.com", u.Email().Value())

		email, err := user.NewEmail("renamed@example.com")
		require.NoError(t, err)
		require.NoError(t, u.Patch(nil, &email))
		assert.Equal(t, "renamed@example.com", u.Email().Value())

		blank := " "
		require.ErrorIs(t, u.Patch(&blank, nil), user.ErrEmptyName)
		assert.Equal(t, "Renamed", u.Name())
	})
}

func TestPassword(t *testing.T) {
	t.Run("minimum length", func(t *testing.T) {
		_, err := user.NewPassword("short")
		require.ErrorIs(t, err, user.ErrPasswordTooWeak)

		p, err := user.NewPassword(strings.Repeat("a", 8))
		require.NoError(t, err)
		assert.Equal(t, strings.Repeat("a", 8), p.Value())
	})
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewUserBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NotNil(t, actual)
				require.NoError(t, err)
			} else {
				require.Nil(t, actual)
				require.Error(t, err)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
