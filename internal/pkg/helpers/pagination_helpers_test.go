package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageWindow(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		want       Window
	}{
		{"first page", 1, 10, Window{Page: 1, Offset: 0, Limit: 10}},
		{"third page", 3, 10, Window{Page: 3, Offset: 20, Limit: 10}},
		{"zero page", 0, 5, Window{Page: 1, Offset: 0, Limit: 5}},
		{"oversized", 2, 500, Window{Page: 2, Offset: DefaultPageSize, Limit: DefaultPageSize}},
		{"unset size", 1, 0, Window{Page: 1, Offset: 0, Limit: DefaultPageSize}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PageWindow(tt.page, tt.size))
		})
	}
}

func TestWindowInfo(t *testing.T) {
	info := PageWindow(2, 10).Info(25)
	assert.Equal(t, 3, info.TotalPages)
	assert.Equal(t, 2, info.CurrentPage)
	assert.Equal(t, 25, info.TotalItems)

	empty := PageWindow(4, 10).Info(0)
	assert.Equal(t, 1, empty.TotalPages)
	assert.Equal(t, 1, empty.CurrentPage, "past the end reports the last page")
}
