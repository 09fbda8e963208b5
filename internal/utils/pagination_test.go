package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AbdullahHad/WaadFinal/internal/constants"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestNewPageRequest(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		want       PageRequest
	}{
		{"first page", 1, 10, PageRequest{Page: 1, Size: 10, Offset: 0}},
		{"third page", 3, 10, PageRequest{Page: 3, Size: 10, Offset: 20}},
		{"page below one", 0, 10, PageRequest{Page: 1, Size: 10, Offset: 0}},
		{"size below minimum", 2, 0, PageRequest{Page: 2, Size: constants.DefaultPageSize, Offset: constants.DefaultPageSize}},
		{"size above maximum", 1, 500, PageRequest{Page: 1, Size: constants.MaxPageSize, Offset: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewPageRequest(tt.page, tt.size))
		})
	}
}

func TestPageFromQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	read := func(target string) PageRequest {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, target, nil)
		return PageFromQuery(c)
	}

	assert.Equal(t, PageRequest{Page: 1, Size: constants.DefaultPageSize, Offset: 0}, read("/"))
	assert.Equal(t, PageRequest{Page: 2, Size: 5, Offset: 5}, read("/?page=2&limit=5"))
	assert.Equal(t, PageRequest{Page: 2, Size: 5, Offset: 5}, read("/?page=2&page_size=5"))
	assert.Equal(t, PageRequest{Page: 1, Size: constants.DefaultPageSize, Offset: 0}, read("/?page=abc&limit=xyz"))
}
