package feed

import (
	"testing"
	"time"

	"github.com/isdelr/mini-social-be/internal/models"
	"github.com/stretchr/testify/assert"
)

func post(id, text, author string, createdAt time.Time, likes int) models.Post {
	p := models.Post{
		ID:        id,
		Author:    models.AuthorRef{ID: "u-" + author, Name: author},
		Text:      text,
		CreatedAt: createdAt,
	}
	for i := 0; i < likes; i++ {
		p.Likes = append(p.Likes, string(rune('a'+i)))
	}
	return p
}

func ids(posts []models.Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.ID
	}
	return out
}

func TestQuery_FilterAndSort(t *testing.T) {
	p1 := post("p1", "hello world", "ana", time.Unix(10, 0), 2)
	p2 := post("p2", "bye", "bob", time.Unix(20, 0), 5)
	posts := []models.Post{p1, p2}

	assert.Equal(t, []string{"p1"}, ids(Query(posts, "hello", SortLatest)))
	assert.Equal(t, []string{"p2", "p1"}, ids(Query(posts, "", SortMostLiked)))
}

func TestQuery_LatestAndOldestAreReverses(t *testing.T) {
	posts := []models.Post{
		post("p1", "one", "ana", time.Unix(30, 0), 0),
		post("p2", "two", "bob", time.Unix(10, 0), 0),
		post("p3", "three", "cal", time.Unix(20, 0), 0),
	}

	latest := Query(posts, "", SortLatest)
	for i := 1; i < len(latest); i++ {
		assert.False(t, latest[i].CreatedAt.After(latest[i-1].CreatedAt),
			"latest must be non-increasing by createdAt")
	}

	oldest := Query(posts, "", SortOldest)
	assert.Equal(t, []string{"p1", "p3", "p2"}, ids(latest))
	assert.Equal(t, []string{"p2", "p3", "p1"}, ids(oldest))
}

func TestQuery_MatchesAuthorNameCaseInsensitive(t *testing.T) {
	posts := []models.Post{
		post("p1", "morning", "Alice", time.Unix(10, 0), 0),
		post("p2", "evening", "Bob", time.Unix(20, 0), 0),
	}

	assert.Equal(t, []string{"p1"}, ids(Query(posts, "ALICE", SortLatest)))
	assert.Equal(t, []string{"p2"}, ids(Query(posts, "EVEning", SortLatest)))
}

func TestQuery_EmptyTermMatchesEverything(t *testing.T) {
	posts := []models.Post{
		post("p1", "one", "ana", time.Unix(10, 0), 0),
		post("p2", "two", "bob", time.Unix(20, 0), 0),
	}

	assert.Len(t, Query(posts, "", SortLatest), 2)
	assert.Len(t, Query(posts, "   ", SortLatest), 2)
}

func TestQuery_MostLikedTiesKeepOrder(t *testing.T) {
	posts := []models.Post{
		post("p1", "one", "ana", time.Unix(10, 0), 1),
		post("p2", "two", "bob", time.Unix(20, 0), 3),
		post("p3", "three", "cal", time.Unix(30, 0), 1),
	}

	// p1 and p3 tie; the stable sort keeps their input order.
	assert.Equal(t, []string{"p2", "p1", "p3"}, ids(Query(posts, "", SortMostLiked)))
}

func TestQuery_UnknownModeKeepsFilteredOrder(t *testing.T) {
	posts := []models.Post{
		post("p1", "one", "ana", time.Unix(10, 0), 0),
		post("p2", "two", "bob", time.Unix(20, 0), 0),
	}

	assert.Equal(t, []string{"p1", "p2"}, ids(Query(posts, "", SortMode("popular"))))
}

func TestQuery_ToleratesNilLikesAndComments(t *testing.T) {
	posts := []models.Post{
		{ID: "p1", Text: "bare", CreatedAt: time.Unix(10, 0)},
		post("p2", "liked", "bob", time.Unix(20, 0), 2),
	}

	assert.Equal(t, []string{"p2", "p1"}, ids(Query(posts, "", SortMostLiked)))
}

func TestQuery_DoesNotMutateInput(t *testing.T) {
	posts := []models.Post{
		post("p1", "one", "ana", time.Unix(10, 0), 0),
		post("p2", "two", "bob", time.Unix(20, 0), 0),
	}

	_ = Query(posts, "", SortLatest)

	assert.Equal(t, []string{"p1", "p2"}, ids(posts))
}
