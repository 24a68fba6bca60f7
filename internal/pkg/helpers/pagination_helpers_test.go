package helpers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestParsePaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		query      string
		page, size int
	}{
		{"", 1, DefaultPageSize},
		{"?page=3&size=25", 3, 25},
		{"?page=0&size=500", 1, DefaultPageSize},
		{"?page=abc&size=-1", 1, DefaultPageSize},
	}

	for _, tt := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/students"+tt.query, nil)

		page, size := ParsePaginationParams(c)
		assert.Equal(t, tt.page, page, tt.query)
		assert.Equal(t, tt.size, size, tt.query)
	}
}

func TestCalculateSliceIndices(t *testing.T) {
	start, end := CalculateSliceIndices(2, 10, 25)
	assert.Equal(t, 10, start)
	assert.Equal(t, 20, end)

	// past the end
	start, end = CalculateSliceIndices(5, 10, 25)
	assert.Equal(t, 25, start)
	assert.Equal(t, 25, end)
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(25, 3, 10)
	assert.Equal(t, 3, info.TotalPages)
	assert.Equal(t, 3, info.CurrentPage)
	assert.EqualValues(t, 25, info.TotalItems)

	info = NewPaginationInfo(25, 9, 10)
	assert.Equal(t, 3, info.CurrentPage)

	info = NewPaginationInfo(0, 1, 10)
	assert.Equal(t, 1, info.TotalPages)
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 90*time.Second, ParseDuration("90s", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("soon", time.Minute))
}
