package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Pagination holds parsed page/limit query parameters.
type Pagination struct {
	Page  int
	Limit int
}

// Offset returns the row offset for the current page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages returns the page count for a total row count.
func (p Pagination) TotalPages(total int64) int64 {
	pages := total / int64(p.Limit)
	if total%int64(p.Limit) != 0 {
		pages++
	}
	return pages
}

// ParsePagination reads page and limit query parameters with the defaults
// the API documents (page 1, limit 10).
func ParsePagination(c *gin.Context) Pagination {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 10
	}
	return Pagination{Page: page, Limit: limit}
}
