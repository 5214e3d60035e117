package catalog

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func numbers(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{0, 0},
		{1, 1},
		{9, 1},
		{10, 2},
		{18, 2},
		{19, 3},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TotalPages(tt.n), "TotalPages(%d)", tt.n)
	}
}

func TestPaginate(t *testing.T) {
	items := numbers(20)

	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8}, Paginate(items, 1))
	assert.Equal(t, []int{9, 10, 11, 12, 13, 14, 15, 16, 17}, Paginate(items, 2))
	assert.Equal(t, []int{18, 19}, Paginate(items, 3))
	assert.Empty(t, Paginate(items, 4))
	assert.Empty(t, Paginate(items, 0))
	assert.Empty(t, Paginate(items, -1))
}

func TestPaginateHugePage(t *testing.T) {
	items := []int{1, 2, 3}
	for _, page := range []int{1<<60 + 1, math.MaxInt, math.MinInt} {
		assert.NotPanics(t, func() {
			assert.Empty(t, Paginate(items, page))
		}, "page %d", page)
	}
}

func TestPaginateReconstructs(t *testing.T) {
	for _, n := range []int{0, 1, 8, 9, 10, 27, 31} {
		items := numbers(n)

		var joined []int
		for page := 1; page <= TotalPages(n); page++ {
			chunk := Paginate(items, page)
			assert.LessOrEqual(t, len(chunk), PageSize)
			joined = append(joined, chunk...)
		}
		assert.Equal(t, len(items), len(joined), "n=%d", n)
		if n > 0 {
			assert.Equal(t, items, joined, "n=%d", n)
		}
	}
}

func TestPageWindow(t *testing.T) {
	tests := []struct {
		name    string
		current int
		total   int
		want    []int
	}{
		{"no pages", 1, 0, nil},
		{"fewer than five", 2, 3, []int{1, 2, 3}},
		{"exactly five", 5, 5, []int{1, 2, 3, 4, 5}},
		{"near start", 3, 10, []int{1, 2, 3, 4, 5}},
		{"near end", 8, 10, []int{6, 7, 8, 9, 10}},
		{"last page", 10, 10, []int{6, 7, 8, 9, 10}},
		{"middle", 6, 10, []int{4, 5, 6, 7, 8}},
		{"first page", 1, 7, []int{1, 2, 3, 4, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PageWindow(tt.current, tt.total))
		})
	}
}

func TestNavigate(t *testing.T) {
	nav := Navigate(1, 4)
	assert.True(t, nav.Visible())
	assert.True(t, nav.FirstDisabled)
	assert.True(t, nav.PreviousDisabled)
	assert.False(t, nav.NextDisabled)
	assert.Equal(t, 1, nav.Previous())
	assert.Equal(t, 2, nav.Next())

	nav = Navigate(4, 4)
	assert.True(t, nav.NextDisabled)
	assert.True(t, nav.LastDisabled)
	assert.Equal(t, 4, nav.Next())

	assert.False(t, Navigate(1, 1).Visible())
}
