// internal/utils/pagination_test.go
package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pageContext(t *testing.T, query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return c
}

func TestGetPageParamsDefaults(t *testing.T) {
	params, err := GetPageParams(pageContext(t, ""))
	require.NoError(t, err)

	assert.Equal(t, DefaultPage, params.Page)
	assert.Equal(t, DefaultPageSize, params.PageSize)
	assert.Equal(t, "uid", params.Sort)
}

func TestGetPageParamsExplicit(t *testing.T) {
	params, err := GetPageParams(pageContext(t, "page=3&page_size=25&sort=name"))
	require.NoError(t, err)

	assert.Equal(t, 3, params.Page)
	assert.Equal(t, 25, params.PageSize)
	assert.Equal(t, "name", params.Sort)
}

func TestGetPageParamsRejectsBadInput(t *testing.T) {
	for _, query := range []string{
		"page=0",
		"page=-1",
		"page=abc",
		"page_size=0",
		"page_size=101",
		"page_size=xyz",
	} {
		_, err := GetPageParams(pageContext(t, query))
		assert.Error(t, err, query)
	}
}

func TestGetPageParamsKeepsUnknownSort(t *testing.T) {
	params, err := GetPageParams(pageContext(t, "sort=bogus"))
	require.NoError(t, err)
	assert.Equal(t, "bogus", params.Sort)
}
