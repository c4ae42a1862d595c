package queries

import "errors"

var ErrInvalidPage = errors.New("invalid pagination parameters")

const (
	DefaultPageSize = 10
	MaxPageSize     = 200
)

// Page implements page-based retrieval: the offset passed by the caller is
// snapped to the enclosing page boundary (pageIndex = from / size), so a
// `from` that is not a multiple of `size` lands on the page containing it.
type Page struct {
	index int
	size  int
}

// NewPage validates the pair and snaps `from` to its page. A size above
// MaxPageSize is capped before the snap, so the index is computed from the
// size that will actually be queried.
func NewPage(from, size int) (Page, error) {
	if from < 0 || size <= 0 {
		return Page{}, ErrInvalidPage
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return Page{index: from / size, size: size}, nil
}

func (p Page) Index() int  { return p.index }
func (p Page) Limit() int  { return p.size }
func (p Page) Offset() int { return p.index * p.size }
