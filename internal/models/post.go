package models

import "time"

// AuthorRef is a snapshot of a user's public fields taken when a post or
// comment is created. Later profile edits do not rewrite history.
type AuthorRef struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// Post represents a single feed entry with its nested likes and comments.
type Post struct {
	ID        string    `json:"id"`
	Author    AuthorRef `json:"author"`
	Text      string    `json:"text"`
	Image     string    `json:"image,omitempty"` // opaque reference: data URI or URL
	CreatedAt time.Time `json:"createdAt"`
	Likes     []string  `json:"likes"` // user IDs, set semantics
	Comments  []Comment `json:"comments"`
}

// Comment is an entry in a post's comment sequence. Comments are append-only.
type Comment struct {
	ID        string    `json:"id"`
	User      AuthorRef `json:"user"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// LikeCount returns the number of users who liked the post.
func (p Post) LikeCount() int {
	return len(p.Likes)
}

// LikedBy reports whether the given user has liked the post.
func (p Post) LikedBy(userID string) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}
