//go:build unit

package item_test

import (
	"strings"
	"testing"
	"time"

	"lendit/internal/domain/item"
	"lendit/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.ItemBuilder)
	errIs  error
}

func TestItem(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewItemBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, "Cordless Drill", actual.Name())
		assert.True(t, actual.Available())
	})

	t.Run("name validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "empty name",
				mutate: func(b *builder.ItemBuilder) { b.WithName("") },
				errIs:  item.ErrEmptyName,
			},
			{
				name:   "whitespace only name",
				mutate: func(b *builder.ItemBuilder) { b.WithName("   ") },
				errIs:  item.ErrEmptyName,
			},
			{
				name:   "maximum length name",
				mutate: func(b *builder.ItemBuilder) { b.WithName(strings.Repeat("a", item.MaxNameLength)) },
			},
			{
				name:   "name exceeds maximum length",
				mutate: func(b *builder.ItemBuilder) { b.WithName(strings.Repeat("a", item.MaxNameLength+1)) },
				errIs:  item.ErrNameTooLong,
			},
		})
	})

	t.Run("description validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "empty description",
				mutate: func(b *builder.ItemBuilder) { b.Description = "" },
				errIs:  item.ErrEmptyDescription,
			},
			{
				name:   "maximum length description",
				mutate: func(b *builder.ItemBuilder) { b.Description = strings.Repeat("a", item.MaxDescriptionLength) },
			},
			{
				name:   "description exceeds maximum length",
				mutate: func(b *builder.ItemBuilder) { b.Description = strings.Repeat("a", item.MaxDescriptionLength+1) },
				errIs:  item.ErrDescriptionTooLong,
			},
		})
	})

	t.Run("name trimming", func(t *testing.T) {
		actual, err := builder.NewItemBuilder().WithName("  Ladder  ").BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, "Ladder", actual.Name())
	})

	t.Run("patch", func(t *testing.T) {
		i, err := builder.NewItemBuilder().BuildDomain()
		require.NoError(t, err)

		name := "Impact Driver"
		available := false
		require.NoError(t, i.Patch(&name, nil, &available))
		assert.Equal(t, "Impact Driver", i.Name())
		assert.False(t, i.Available())
		assert.Equal(t, "18V cordless drill with two batteries", i.Description())

		empty := ""
		require.ErrorIs(t, i.Patch(nil, &empty, nil), item.ErrEmptyDescription)
		assert.Equal(t, "18V cordless drill with two batteries", i.Description())
	})

	t.Run("ownership", func(t *testing.T) {
		ownerID := uuid.New()
		i, err := builder.NewItemBuilder().WithOwner(ownerID).BuildDomain()
		require.NoError(t, err)

		assert.True(t, i.IsOwnedBy(ownerID))
		assert.False(t, i.IsOwnedBy(uuid.New()))
	})
}

func TestComment(t *testing.T) {
	itemID := uuid.New()
	authorID := uuid.New()
	now := time.Now()

	t.Run("basic success case", func(t *testing.T) {
		c, err := item.NewComment(itemID, authorID, "  Worked great  ", now)
		require.NoError(t, err)
		assert.Equal(t, "Worked great", c.Text())
		assert.Equal(t, now, c.CreatedAt())
	})

	t.Run("empty text", func(t *testing.T) {
		_, err := item.NewComment(itemID, authorID, "   ", now)
		require.ErrorIs(t, err, item.ErrEmptyComment)
	})

	t.Run("text exceeds maximum length", func(t *testing.T) {
		_, err := item.NewComment(itemID, authorID, strings.Repeat("a", item.MaxCommentLength+1), now)
		require.ErrorIs(t, err, item.ErrCommentTooLong)
	})
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewItemBuilder().With(c.mutate).BuildDomain()

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
