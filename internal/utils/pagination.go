package utils

import (
	"strconv"

	"github.com/AbdullahHad/WaadFinal/internal/constants"
	"github.com/gin-gonic/gin"
)

// PageRequest is a clamped page window over a listing
type PageRequest struct {
	Page   int
	Size   int
	Offset int
}

// PageFromQuery reads ?page= and ?limit= (or ?page_size=) from the request
func PageFromQuery(c *gin.Context) PageRequest {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	sizeParam := c.Query("limit")
	if sizeParam == "" {
		sizeParam = c.Query("page_size")
	}
	size, err := strconv.Atoi(sizeParam)
	if err != nil {
		size = constants.DefaultPageSize
	}

	return NewPageRequest(page, size)
}

// NewPageRequest clamps page and size to the allowed range and derives the offset.
// Oversized pages are capped rather than reset.
func NewPageRequest(page, size int) PageRequest {
	if page < 1 {
		page = 1
	}
	switch {
	case size < constants.MinPageSize:
		size = constants.DefaultPageSize
	case size > constants.MaxPageSize:
		size = constants.MaxPageSize
	}

	return PageRequest{
		Page:   page,
		Size:   size,
		Offset: (page - 1) * size,
	}
}
