package record

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestMarshalFieldSetFollowsStatus verifies the wire field set is fully
// determined by the record's status.
func TestMarshalFieldSetFollowsStatus(t *testing.T) {
	t.Parallel()

	created := time.UnixMilli(1000)
	updated := time.UnixMilli(2000)

	loading := NewLoading("https://example.com", created, updated)
	data, err := json.Marshal(loading)
	require.NoError(t, err)
	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	require.ElementsMatch(t, []string{"url", "status", "createdAt", "updatedAt"}, keysOf(fields))

	success := NewSuccess("https://example.com", created.UnixMilli(), updated, "<html></html>", "", 120*time.Millisecond)
	data, err = json.Marshal(success)
	require.NoError(t, err)
	fields = map[string]any{}
	require.NoError(t, json.Unmarshal(data, &fields))
	require.ElementsMatch(t, []string{"url", "status", "createdAt", "updatedAt", "content", "fetchTime"}, keysOf(fields))

	failed := NewFailed("https://example.com", created.UnixMilli(), updated, "HTTP 404: Not Found", 80*time.Millisecond)
	data, err = json.Marshal(failed)
	require.NoError(t, err)
	fields = map[string]any{}
	require.NoError(t, json.Unmarshal(data, &fields))
	require.ElementsMatch(t, []string{"url", "status", "createdAt", "updatedAt", "errorMessage", "fetchTime"}, keysOf(fields))
}

// TestMarshalIncludesCSSOnlyWhenPresent checks the optional css field.
func TestMarshalIncludesCSSOnlyWhenPresent(t *testing.T) {
	t.Parallel()

	rec := NewSuccess("https://example.com", 1000, time.UnixMilli(2000), "body", "p{color:red}", time.Second)
	data, err := json.Marshal(rec)
	require.NoError(t, err)
	require.Contains(t, string(data), `"css":"p{color:red}"`)

	var roundTrip Record
	require.NoError(t, json.Unmarshal(data, &roundTrip))
	require.Equal(t, rec, roundTrip)
}

// TestMarshalRejectsUnknownStatus guards the tagged-union invariant.
func TestMarshalRejectsUnknownStatus(t *testing.T) {
	t.Parallel()

	_, err := json.Marshal(Record{URL: "https://example.com", Status: Status("bogus")})
	require.Error(t, err)
}

// TestTerminal covers the terminal-state predicate.
func TestTerminal(t *testing.T) {
	t.Parallel()

	require.False(t, StatusLoading.Terminal())
	require.True(t, StatusSuccess.Terminal())
	require.True(t, StatusFailed.Terminal())
}

func keysOf(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
