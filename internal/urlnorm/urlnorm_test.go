package urlnorm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestNormalize covers trimming, folding and scheme prefixing.
func TestNormalize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "bare host", in: "example.com", want: "https://example.com"},
		{name: "whitespace and casing", in: "  EXAMPLE.com ", want: "https://example.com"},
		{name: "path and query folded", in: "example.com/Path?X=1", want: "https://example.com/path?x=1"},
		{name: "existing https kept", in: "https://Example.com", want: "https://example.com"},
		{name: "existing http kept", in: "HTTP://example.com", want: "http://example.com"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, Normalize(tc.in))
		})
	}
}

// TestNormalizeAllDeduplicates verifies order-preserving dedup over the
// normalized forms, not the raw input.
func TestNormalizeAllDeduplicates(t *testing.T) {
	t.Parallel()

	got := NormalizeAll([]string{"EXAMPLE.com", "a.com", "example.com "})
	require.Equal(t, []string{"https://example.com", "https://a.com"}, got)
}

// TestNormalizeAllEmpty returns an empty slice for empty input.
func TestNormalizeAllEmpty(t *testing.T) {
	t.Parallel()

	require.Empty(t, NormalizeAll(nil))
	require.Empty(t, NormalizeAll([]string{}))
}
