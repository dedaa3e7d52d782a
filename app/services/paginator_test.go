package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginateFirstPage(t *testing.T) {
	win := Paginate(7, 0, 3)

	assert.Equal(t, 0, win.Start)
	assert.Equal(t, 3, win.End)
	assert.Equal(t, 0, win.Page)
	assert.Equal(t, 3, win.Pages)
	assert.False(t, win.HasPrev)
	assert.True(t, win.HasNext)
}

func TestPaginateLastShortPage(t *testing.T) {
	win := Paginate(7, 2, 3)

	assert.Equal(t, 6, win.Start)
	assert.Equal(t, 7, win.End)
	assert.True(t, win.HasPrev)
	assert.False(t, win.HasNext)
}

func TestPaginateClampsPage(t *testing.T) {
	win := Paginate(7, 99, 3)
	assert.Equal(t, 2, win.Page)

	win = Paginate(7, -5, 3)
	assert.Equal(t, 0, win.Page)
}

func TestPaginateEmptyList(t *testing.T) {
	win := Paginate(0, 0, 3)

	assert.Equal(t, 0, win.Start)
	assert.Equal(t, 0, win.End)
	assert.Equal(t, 1, win.Pages)
	assert.False(t, win.HasPrev)
	assert.False(t, win.HasNext)
}

func TestPaginateExactFit(t *testing.T) {
	win := Paginate(6, 1, 3)

	assert.Equal(t, 3, win.Start)
	assert.Equal(t, 6, win.End)
	assert.Equal(t, 2, win.Pages)
	assert.False(t, win.HasNext)
}

func TestClampIndex(t *testing.T) {
	assert.Equal(t, 0, ClampIndex(5, -1))
	assert.Equal(t, 2, ClampIndex(5, 2))
	assert.Equal(t, 4, ClampIndex(5, 10))
	assert.Equal(t, 0, ClampIndex(0, 3))
}
