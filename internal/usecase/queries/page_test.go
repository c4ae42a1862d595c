//go:build unit

package queries_test

import (
	"testing"

	"lendit/internal/usecase/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPage(t *testing.T) {
	cases := []struct {
		name       string
		from       int
		size       int
		wantIndex  int
		wantLimit  int
		wantOffset int
		errIs      error
	}{
		{name: "first page", from: 0, size: 10, wantIndex: 0, wantLimit: 10, wantOffset: 0},
		{name: "aligned offset", from: 20, size: 10, wantIndex: 2, wantLimit: 10, wantOffset: 20},
		{name: "offset snaps to page boundary", from: 25, size: 10, wantIndex: 2, wantLimit: 10, wantOffset: 20},
		{name: "offset inside first page", from: 7, size: 10, wantIndex: 0, wantLimit: 10, wantOffset: 0},
		{name: "size one", from: 3, size: 1, wantIndex: 3, wantLimit: 1, wantOffset: 3},
		{name: "size capped", from: 0, size: queries.MaxPageSize + 1, wantIndex: 0, wantLimit: queries.MaxPageSize, wantOffset: 0},
		{name: "index computed from capped size", from: 400, size: 300, wantIndex: 2, wantLimit: queries.MaxPageSize, wantOffset: 400},
		{name: "negative from", from: -1, size: 10, errIs: queries.ErrInvalidPage},
		{name: "zero size", from: 0, size: 0, errIs: queries.ErrInvalidPage},
		{name: "negative size", from: 0, size: -5, errIs: queries.ErrInvalidPage},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p, err := queries.NewPage(c.from, c.size)
			if c.errIs != nil {
				require.ErrorIs(t, err, c.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.wantIndex, p.Index())
			assert.Equal(t, c.wantLimit, p.Limit())
			assert.Equal(t, c.wantOffset, p.Offset())
		})
	}
}
