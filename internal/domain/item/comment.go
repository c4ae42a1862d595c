package item

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const MaxCommentLength = 1000

var (
	ErrEmptyComment   = errors.New("comment text is empty")
	ErrCommentTooLong = errors.New("comment text is too long")
)

// Comment is feedback on an item, written by a user whose approved booking
// has ended. The eligibility check itself lives with the booking history;
// the entity only validates the text.
type Comment struct {
	id        uuid.UUID
	itemID    uuid.UUID
	authorID  uuid.UUID
	text      string
	createdAt time.Time
}

func NewComment(itemID, authorID uuid.UUID, text string, now time.Time) (*Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyComment
	}
	if len(text) > MaxCommentLength {
		return nil, ErrCommentTooLong
	}
	return &Comment{
		id:        uuid.New(),
		itemID:    itemID,
		authorID:  authorID,
		text:      text,
		createdAt: now,
	}, nil
}

func (c *Comment) ID() uuid.UUID        { return c.id }
func (c *Comment) ItemID() uuid.UUID    { return c.itemID }
func (c *Comment) AuthorID() uuid.UUID  { return c.authorID }
func (c *Comment) Text() string         { return c.text }
func (c *Comment) CreatedAt() time.Time { return c.createdAt }
