package launcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chess10kp/cleanlauncher/internal/apps"
)

func names(records []apps.AppRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.DisplayName())
	}
	return out
}

func snapshot(labels ...string) []apps.AppRecord {
	out := make([]apps.AppRecord, 0, len(labels))
	for _, l := range labels {
		out = append(out, record(l, l, apps.StateNeither))
	}
	return out
}

func TestFilterPrefix(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"Camera"}, names(Filter(snapshot("Camera", "Calendar", "Gmail"), "cam", MatchPrefix)))
	assert.Equal(t, []string{"Alarm"}, names(Filter(snapshot("Alarm", "Camera", "Maps"), "a", MatchPrefix)))
	assert.Equal(t, []string{"Alarm"}, names(Filter(snapshot("Alarm", "Camera", "Maps"), "  A ", MatchPrefix)))
	assert.Empty(t, Filter(snapshot("Alarm", "Camera", "Maps"), "z", MatchPrefix))
}

func TestFilterContains(t *testing.T) {
	t.Parallel()

	got := Filter(snapshot("Alarm", "Camera", "Maps"), "a", MatchContains)
	assert.Equal(t, []string{"Alarm", "Camera", "Maps"}, names(got))
}

func TestFilterMatchesCustomName(t *testing.T) {
	t.Parallel()

	records := []apps.AppRecord{record("firefox", "Firefox", apps.StateNeither).WithCustomName("web")}
	assert.Len(t, Filter(records, "we", MatchPrefix), 1)
	assert.Empty(t, Filter(records, "fire", MatchPrefix))
}

func TestFilterFuzzyRanksPrefixFirst(t *testing.T) {
	t.Parallel()

	got := names(Filter(snapshot("Image Viewer", "Files", "Firefox"), "fi", MatchFuzzy))
	require.NotEmpty(t, got)
	assert.Contains(t, []string{"Files", "Firefox"}, got[0])
}

func TestSearcherUsesCache(t *testing.T) {
	t.Parallel()

	cache, err := NewSearchCache(10)
	require.NoError(t, err)
	s := &Searcher{Mode: MatchPrefix, Cache: cache}
	snap := snapshot("Alarm", "Camera", "Maps")

	assert.Equal(t, []string{"Alarm"}, names(s.Filter(snap, "a")))
	assert.Equal(t, []string{"Alarm"}, names(s.Filter(snap, "a")))

	stats := cache.GetStats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)

	// A renamed app changes the snapshot hash, so the stale entry is skipped.
	snap[1] = snap[1].WithCustomName("atlas")
	assert.Equal(t, []string{"Alarm", "atlas"}, names(s.Filter(snap, "a")))

	assert.Equal(t, snap, s.Filter(snap, ""))
}

func TestParseMatchMode(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]MatchMode{"": MatchPrefix, "Prefix": MatchPrefix, "contains": MatchContains, "fuzzy": MatchFuzzy} {
		got, err := ParseMatchMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseMatchMode("regex")
	assert.Error(t, err)
}

func TestComputeAppsHash(t *testing.T) {
	t.Parallel()

	a := snapshot("Alarm", "Camera")
	b := snapshot("Alarm", "Camera")
	assert.Equal(t, ComputeAppsHash(a), ComputeAppsHash(b))

	b[0] = b[0].WithState(apps.StateFavorite)
	assert.NotEqual(t, ComputeAppsHash(a), ComputeAppsHash(b))
	assert.Empty(t, ComputeAppsHash(nil))
}
