package response

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const maxPageSize = 100

// Paginate slices items according to the page and page_size query
// parameters. Invalid values fall back to page 1 of 10; page_size is capped.
func Paginate[T any](c *gin.Context, items []T) ([]T, PaginationMeta) {
	page := queryInt(c, "page", 1)
	size := min(queryInt(c, "page_size", 10), maxPageSize)

	meta := PaginationMeta{
		Total:      int64(len(items)),
		TotalPages: (len(items) + size - 1) / size,
		Page:       page,
		PageSize:   size,
	}

	start := min((page-1)*size, len(items))
	end := min(start+size, len(items))
	return items[start:end], meta
}

func queryInt(c *gin.Context, key string, fallback int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil || v < 1 {
		return fallback
	}
	return v
}
