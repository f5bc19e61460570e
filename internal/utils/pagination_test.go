package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func ginContext(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return c
}

func TestParsePagination(t *testing.T) {
	page, limit := ParsePagination(ginContext("page=3&limit=25"))
	assert.Equal(t, 3, page)
	assert.Equal(t, 25, limit)
}

func TestParsePaginationDefaults(t *testing.T) {
	page, limit := ParsePagination(ginContext(""))
	assert.Equal(t, DefaultPage, page)
	assert.Equal(t, DefaultLimit, limit)

	page, limit = ParsePagination(ginContext("page=abc&limit=-2"))
	assert.Equal(t, DefaultPage, page)
	assert.Equal(t, DefaultLimit, limit)

	_, limit = ParsePagination(ginContext("limit=9999"))
	assert.Equal(t, DefaultLimit, limit)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 13, TotalPages(125, 10))
}
