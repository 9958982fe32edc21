// Package search filters the items loaded in a directory session by name.
package search

import (
	"sort"
	"strings"

	lfuzzy "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/openview/internal/domain"
	"github.com/sahilm/fuzzy"
)

// Match is an inline filter hit with the character positions to highlight.
type Match struct {
	Index          int   // Index in the source slice
	MatchedIndexes []int // Matched character positions in the name
}

// MatchNames runs the inline (as-you-type) filter over names. Results are
// best first, as ranked by sahilm/fuzzy. Matching ignores case, and
// MatchedIndexes are byte offsets into the unmodified name.
func MatchNames(query string, names []string) []Match {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	found := fuzzy.Find(query, names)
	matches := make([]Match, len(found))
	for i, m := range found {
		matches[i] = Match{Index: m.Index, MatchedIndexes: m.MatchedIndexes}
	}
	return matches
}

// FilterImages returns the loaded images whose names fuzzily contain query,
// closest first. Equal distances keep arrival order.
func FilterImages(query string, images []domain.ImageEntry) []domain.ImageEntry {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	names := make([]string, len(images))
	for i, img := range images {
		names[i] = img.Name
	}

	ranks := lfuzzy.RankFindFold(query, names)
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})

	results := make([]domain.ImageEntry, len(ranks))
	for i, r := range ranks {
		results[i] = images[r.OriginalIndex]
	}
	return results
}
