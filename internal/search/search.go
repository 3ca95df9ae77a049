package search

import (
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
	sahilm "github.com/sahilm/fuzzy"

	"github.com/zorkosss/GameHub/internal/domain"
)

// Result represents a search match with metadata for highlighting
type Result struct {
	Entry          domain.GameEntry
	MatchedIndexes []int // Byte offsets in the name that matched
	Score          int   // Match score (higher is better)
}

// nameIndex implements sahilm/fuzzy.Source for zero-allocation fuzzy matching
type nameIndex struct {
	entries    []domain.GameEntry
	lowerNames []string // Pre-computed lowercase names
}

// String returns the lowercase name at index i (implements fuzzy.Source)
func (idx *nameIndex) String(i int) string { return idx.lowerNames[i] }

// Len returns the number of entries (implements fuzzy.Source)
func (idx *nameIndex) Len() int { return len(idx.entries) }

// Service handles fuzzy search over the game library
type Service struct {
	logger *slog.Logger

	mu    sync.RWMutex
	index *nameIndex
}

// NewService creates a new search service
func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		logger: logger,
		index:  &nameIndex{},
	}
}

// Rebuild replaces the index wholesale. Called whenever a fresh
// library snapshot arrives.
func (s *Service) Rebuild(entries []domain.GameEntry) {
	idx := &nameIndex{
		entries:    make([]domain.GameEntry, len(entries)),
		lowerNames: make([]string, len(entries)),
	}
	copy(idx.entries, entries)
	for i, e := range entries {
		idx.lowerNames[i] = strings.ToLower(e.Name)
	}

	s.mu.Lock()
	s.index = idx
	s.mu.Unlock()

	s.logger.Debug("rebuilt search index", "count", len(entries))
}

// Query performs fuzzy search against the index.
// Returns results sorted by score (best first), with match metadata
// for highlighting. When subsequence matching finds nothing, results
// fall back to edit-distance ranking so one-letter typos still land
// (without match positions).
func (s *Service) Query(query string) []Result {
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		return nil
	}

	s.mu.RLock()
	idx := s.index
	s.mu.RUnlock()

	if idx.Len() == 0 {
		return nil
	}

	matches := sahilm.FindFrom(query, idx)
	if len(matches) == 0 {
		return approximate(query, idx)
	}

	results := make([]Result, len(matches))
	for i, m := range matches {
		results[i] = Result{
			Entry:          idx.entries[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}

	return results
}

// approximate ranks entries by the edit distance between the query and
// the closest word of each name. Distances beyond a third of the query
// length read as unrelated and are cut.
func approximate(query string, idx *nameIndex) []Result {
	type ranked struct {
		index    int
		distance int
	}

	limit := len(query) / 3
	if limit < 1 {
		limit = 1
	}

	var ranks []ranked
	for i, name := range idx.lowerNames {
		best := -1
		for _, word := range strings.Fields(name) {
			d := fuzzy.LevenshteinDistance(query, word)
			if best < 0 || d < best {
				best = d
			}
		}
		if best >= 0 && best <= limit {
			ranks = append(ranks, ranked{index: i, distance: best})
		}
	}

	sort.SliceStable(ranks, func(i, j int) bool {
		return ranks[i].distance < ranks[j].distance
	})

	results := make([]Result, 0, len(ranks))
	for _, r := range ranks {
		results = append(results, Result{
			Entry: idx.entries[r.index],
			Score: -r.distance,
		})
	}
	return results
}
