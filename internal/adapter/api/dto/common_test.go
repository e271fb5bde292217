package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageFromClient(t *testing.T) {
	tests := []struct {
		name             string
		page, size       int
		wantPage, wantSz int
		wantOffset       int
	}{
		{"primeira página", 0, 20, 1, 20, 0},
		{"terceira página", 2, 20, 3, 20, 40},
		{"página negativa", -4, 5, 1, 5, 0},
		{"tamanho padrão", 0, 0, 1, DefaultPageSize, 0},
		{"tamanho limitado", 1, 1000, 2, MaxPageSize, MaxPageSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := PageFromClient(tt.page, tt.size)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantSz, p.PageSize)
			assert.Equal(t, tt.wantOffset, p.Offset())
			assert.Equal(t, tt.wantPage-1, p.ClientPage())
		})
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, totalPages(0, 10))
	assert.Equal(t, 3, totalPages(41, 20))
	assert.Equal(t, 2, totalPages(40, 20))
	assert.Equal(t, 0, totalPages(5, 0))
}
