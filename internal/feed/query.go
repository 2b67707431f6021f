// Package feed holds the pure query logic applied to the post collection
// before rendering: text search and sort order.
package feed

import (
	"sort"
	"strings"

	"github.com/isdelr/mini-social-be/internal/models"
)

// SortMode selects the ordering applied to a queried feed.
type SortMode string

const (
	SortLatest    SortMode = "latest"
	SortOldest    SortMode = "oldest"
	SortMostLiked SortMode = "mostLiked"
)

// Query filters posts by a case-insensitive substring match of term against
// the post text or the author name, then orders the result by mode. An empty
// term matches everything. Sorting is stable; mostLiked ties keep the
// filtered order. Unknown modes leave the filtered order untouched. The
// input slice is never modified.
func Query(posts []models.Post, term string, mode SortMode) []models.Post {
	q := strings.ToLower(strings.TrimSpace(term))

	shown := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if q == "" || matches(p, q) {
			shown = append(shown, p)
		}
	}

	switch mode {
	case SortLatest:
		sort.SliceStable(shown, func(i, j int) bool {
			return shown[i].CreatedAt.After(shown[j].CreatedAt)
		})
	case SortOldest:
		sort.SliceStable(shown, func(i, j int) bool {
			return shown[i].CreatedAt.Before(shown[j].CreatedAt)
		})
	case SortMostLiked:
		sort.SliceStable(shown, func(i, j int) bool {
			return len(shown[i].Likes) > len(shown[j].Likes)
		})
	}
	return shown
}

func matches(p models.Post, q string) bool {
	return strings.Contains(strings.ToLower(p.Text), q) ||
		strings.Contains(strings.ToLower(p.Author.Name), q)
}
