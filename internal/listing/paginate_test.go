package listing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func intRange(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// TestPaginateFirstPage checks a full first page of a 25-item set.
func TestPaginateFirstPage(t *testing.T) {
	t.Parallel()

	page := Paginate(intRange(25), PageParams{Page: 1, Limit: 10})
	require.Len(t, page.Data, 10)
	require.Equal(t, PageMeta{
		CurrentPage:     1,
		TotalPages:      3,
		TotalItems:      25,
		ItemsPerPage:    10,
		HasNextPage:     true,
		HasPreviousPage: false,
	}, page.Meta)
}

// TestPaginateLastPartialPage checks the trailing short page.
func TestPaginateLastPartialPage(t *testing.T) {
	t.Parallel()

	page := Paginate(intRange(25), PageParams{Page: 3, Limit: 10})
	require.Len(t, page.Data, 5)
	require.Equal(t, []int{21, 22, 23, 24, 25}, page.Data)
	require.False(t, page.Meta.HasNextPage)
	require.True(t, page.Meta.HasPreviousPage)
}

// TestPaginateEmptyInput yields zero pages and no navigation.
func TestPaginateEmptyInput(t *testing.T) {
	t.Parallel()

	page := Paginate([]int{}, PageParams{Page: 1, Limit: 10})
	require.Empty(t, page.Data)
	require.Equal(t, 0, page.Meta.TotalPages)
	require.False(t, page.Meta.HasNextPage)
	require.False(t, page.Meta.HasPreviousPage)
}

// TestPaginateBeyondLastPage echoes the requested page without error.
func TestPaginateBeyondLastPage(t *testing.T) {
	t.Parallel()

	page := Paginate(intRange(5), PageParams{Page: 10, Limit: 10})
	require.Empty(t, page.Data)
	require.Equal(t, 10, page.Meta.CurrentPage)
	require.Equal(t, 1, page.Meta.TotalPages)
}

// TestPaginateClampsInvalidParams never returns fewer than one item per page.
func TestPaginateClampsInvalidParams(t *testing.T) {
	t.Parallel()

	page := Paginate(intRange(3), PageParams{Page: -2, Limit: 0})
	require.Equal(t, 1, page.Meta.CurrentPage)
	require.Equal(t, 1, page.Meta.ItemsPerPage)
	require.Equal(t, []int{1}, page.Data)
	require.Equal(t, 3, page.Meta.TotalPages)
}

// TestValidatePageParams covers defaults and the upper limit cap.
func TestValidatePageParams(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		page, limit int
		want        PageParams
	}{
		{name: "absent", page: 0, limit: 0, want: PageParams{Page: 1, Limit: 10}},
		{name: "negative", page: -1, limit: -5, want: PageParams{Page: 1, Limit: 10}},
		{name: "passes through", page: 2, limit: 25, want: PageParams{Page: 2, Limit: 25}},
		{name: "caps limit", page: 1, limit: 500, want: PageParams{Page: 1, Limit: 100}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, ValidatePageParams(tc.page, tc.limit))
		})
	}
}
