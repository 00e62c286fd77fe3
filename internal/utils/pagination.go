// internal/utils/pagination.go
package utils

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type PageParams struct {
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Sort     string `json:"sort"`
}

// GetPageParams reads page, page_size and sort from the query string. Page
// must be >= 1 and page_size within [1,100]; anything else is a caller
// error, not something to clamp silently. Unrecognized sort keys are kept
// as-is; the store falls back to uid ordering for them.
func GetPageParams(c *gin.Context) (PageParams, error) {
	params := PageParams{
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
		Sort:     c.DefaultQuery("sort", "uid"),
	}

	if pageStr := c.Query("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			return params, fmt.Errorf("page must be a positive integer")
		}
		params.Page = page
	}

	if sizeStr := c.Query("page_size"); sizeStr != "" {
		size, err := strconv.Atoi(sizeStr)
		if err != nil || size < 1 || size > MaxPageSize {
			return params, fmt.Errorf("page_size must be between 1 and %d", MaxPageSize)
		}
		params.PageSize = size
	}

	return params, nil
}
