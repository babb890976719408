package launcher

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/chess10kp/cleanlauncher/internal/apps"
)

// MatchMode selects how a query is matched against display names.
type MatchMode int

const (
	MatchPrefix MatchMode = iota
	MatchContains
	MatchFuzzy
)

func (m MatchMode) String() string {
	switch m {
	case MatchContains:
		return "contains"
	case MatchFuzzy:
		return "fuzzy"
	default:
		return "prefix"
	}
}

func ParseMatchMode(s string) (MatchMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "prefix":
		return MatchPrefix, nil
	case "contains", "substring":
		return MatchContains, nil
	case "fuzzy":
		return MatchFuzzy, nil
	default:
		return MatchPrefix, fmt.Errorf("unknown match mode %q", s)
	}
}

// DefaultMinFuzzyScore drops weak fuzzy matches.
const DefaultMinFuzzyScore = 25

// Searcher filters a snapshot of records. It never touches the registry.
type Searcher struct {
	Mode          MatchMode
	MinFuzzyScore int
	Cache         *SearchCache
}

// Filter returns the records whose display name matches query. An empty
// query returns the snapshot unchanged.
func (s *Searcher) Filter(snapshot []apps.AppRecord, query string) []apps.AppRecord {
	query = strings.TrimSpace(query)
	if query == "" {
		return snapshot
	}

	var hash string
	if s.Cache != nil {
		hash = ComputeAppsHash(snapshot)
		if cached, ok := s.Cache.Get(s.Mode, query, hash); ok {
			return cached
		}
	}

	var results []apps.AppRecord
	if s.Mode == MatchFuzzy {
		minScore := s.MinFuzzyScore
		if minScore == 0 {
			minScore = DefaultMinFuzzyScore
		}
		results = fuzzyFilter(snapshot, query, minScore)
	} else {
		results = Filter(snapshot, query, s.Mode)
	}

	if s.Cache != nil {
		s.Cache.Put(s.Mode, query, hash, results)
	}
	return results
}

// Filter applies a prefix or substring match, case-insensitively, keeping
// snapshot order. MatchFuzzy uses the default score threshold.
func Filter(snapshot []apps.AppRecord, query string, mode MatchMode) []apps.AppRecord {
	if mode == MatchFuzzy {
		return fuzzyFilter(snapshot, query, DefaultMinFuzzyScore)
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	results := make([]apps.AppRecord, 0)
	for _, rec := range snapshot {
		name := strings.ToLower(rec.DisplayName())
		var ok bool
		if mode == MatchContains {
			ok = strings.Contains(name, needle)
		} else {
			ok = strings.HasPrefix(name, needle)
		}
		if ok {
			results = append(results, rec)
		}
	}
	return results
}

type recordSource []apps.AppRecord

func (r recordSource) String(i int) string { return r[i].DisplayName() }
func (r recordSource) Len() int            { return len(r) }

// fuzzyFilter ranks prefix matches first, then by fuzzy score.
func fuzzyFilter(snapshot []apps.AppRecord, query string, minScore int) []apps.AppRecord {
	query = strings.TrimSpace(query)
	matches := fuzzy.FindFrom(query, recordSource(snapshot))

	filtered := make([]fuzzy.Match, 0, len(matches))
	lowerQuery := strings.ToLower(query)
	for _, m := range matches {
		// Prefix hits always survive the threshold.
		if m.Score >= minScore || strings.HasPrefix(strings.ToLower(m.Str), lowerQuery) {
			filtered = append(filtered, m)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		iPrefix := strings.HasPrefix(strings.ToLower(filtered[i].Str), lowerQuery)
		jPrefix := strings.HasPrefix(strings.ToLower(filtered[j].Str), lowerQuery)
		if iPrefix != jPrefix {
			return iPrefix
		}
		return filtered[i].Score > filtered[j].Score
	})

	results := make([]apps.AppRecord, 0, len(filtered))
	for _, m := range filtered {
		results = append(results, snapshot[m.Index])
	}
	return results
}
