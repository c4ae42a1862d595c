package api

import (
	"strconv"

	"lendit/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

// pageParams reads the from/size query pair, defaulting to the first page.
func pageParams(c *gin.Context) (int, int, error) {
	from := 0
	if v := c.Query("from"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, err
		}
		from = parsed
	}
	size := queries.DefaultPageSize
	if v := c.Query("size"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, err
		}
		size = parsed
	}
	return from, size, nil
}
