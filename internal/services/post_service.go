package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/isdelr/mini-social-be/internal/apperrors"
	"github.com/isdelr/mini-social-be/internal/models"
	"github.com/isdelr/mini-social-be/internal/storage"
	"github.com/isdelr/mini-social-be/internal/websocket"
	"github.com/rs/zerolog/log"
)

// PostServiceProvider defines the interface for post services.
type PostServiceProvider interface {
	GetAllPosts() []models.Post
	CreatePost(session *models.Session, text, image string) (models.Post, error)
	DeletePost(session *models.Session, postID string) error
	ToggleLike(session *models.Session, postID string) (models.Post, error)
	AddComment(session *models.Session, postID, text string) (models.Comment, error)
}

// PostService owns the ordered post collection, newest first. Mutations
// reload the blob, apply the change and persist it back under the lock;
// reads just reload. Changes are pushed to websocket clients so they can
// re-render without polling.
type PostService struct {
	mu     sync.Mutex
	store  *storage.Store
	events EventServiceProvider
	hub    *websocket.Hub
}

// NewPostService creates a new PostService. hub may be nil when change
// notification is not wanted.
func NewPostService(store *storage.Store, events EventServiceProvider, hub *websocket.Hub) *PostService {
	return &PostService{store: store, events: events, hub: hub}
}

// GetAllPosts reloads and returns the full post collection, newest first.
func (s *PostService) GetAllPosts() []models.Post {
	var posts []models.Post
	s.store.Load(postsBlobKey, &posts)
	return posts
}

// CreatePost inserts a new post at the front of the collection. A post needs
// text or an image reference; author identity is snapshotted from the session.
func (s *PostService) CreatePost(session *models.Session, text, image string) (models.Post, error) {
	if session == nil {
		return models.Post{}, apperrors.ErrNotAuthenticated
	}
	text = strings.TrimSpace(text)
	if text == "" && image == "" {
		return models.Post{}, apperrors.ErrEmptyPost
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	post := models.Post{
		ID: uuid.New().String(),
		Author: models.AuthorRef{
			ID:     session.ID,
			Name:   session.Name,
			Avatar: session.Avatar,
		},
		Text:      text,
		Image:     image,
		CreatedAt: time.Now().UTC(),
		Likes:     []string{},
		Comments:  []models.Comment{},
	}

	posts := append([]models.Post{post}, s.loadPosts()...)
	if err := s.store.Save(postsBlobKey, posts); err != nil {
		return models.Post{}, err
	}

	s.events.CreateEvent("post.create", "info", fmt.Sprintf("%s published a post.", session.Name), &post.ID)
	s.notify("post.created", post)
	return post, nil
}

// DeletePost removes a post. Only the author may delete it.
func (s *PostService) DeletePost(session *models.Session, postID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts := s.loadPosts()
	idx := indexOfPost(posts, postID)
	if idx < 0 {
		return apperrors.ErrNotFound
	}
	if session == nil || session.ID != posts[idx].Author.ID {
		return apperrors.ErrNotAuthorized
	}

	posts = append(posts[:idx], posts[idx+1:]...)
	if err := s.store.Save(postsBlobKey, posts); err != nil {
		return err
	}

	s.events.CreateEvent("post.delete", "warn", fmt.Sprintf("%s deleted a post.", session.Name), &postID)
	s.notify("post.deleted", map[string]string{"id": postID})
	return nil
}

// ToggleLike adds the session's user to the post's like set, or removes them
// when already present. Returns the updated post.
func (s *PostService) ToggleLike(session *models.Session, postID string) (models.Post, error) {
	if session == nil {
		return models.Post{}, apperrors.ErrNotAuthenticated
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	posts := s.loadPosts()
	idx := indexOfPost(posts, postID)
	if idx < 0 {
		return models.Post{}, apperrors.ErrNotFound
	}

	post := &posts[idx]
	if post.LikedBy(session.ID) {
		likes := post.Likes[:0:0]
		for _, id := range post.Likes {
			if id != session.ID {
				likes = append(likes, id)
			}
		}
		post.Likes = likes
	} else {
		post.Likes = append(post.Likes, session.ID)
	}

	if err := s.store.Save(postsBlobKey, posts); err != nil {
		return models.Post{}, err
	}

	s.events.CreateEvent("post.like", "info", fmt.Sprintf("%s reacted to a post.", session.Name), &postID)
	s.notify("post.liked", *post)
	return *post, nil
}

// AddComment appends a comment to the post's sequence, snapshotting the
// commenting user. Comments are never edited or removed.
func (s *PostService) AddComment(session *models.Session, postID, text string) (models.Comment, error) {
	if session == nil {
		return models.Comment{}, apperrors.ErrNotAuthenticated
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Comment{}, apperrors.ErrEmptyComment
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	posts := s.loadPosts()
	idx := indexOfPost(posts, postID)
	if idx < 0 {
		return models.Comment{}, apperrors.ErrNotFound
	}

	comment := models.Comment{
		ID: uuid.New().String(),
		User: models.AuthorRef{
			ID:     session.ID,
			Name:   session.Name,
			Avatar: session.Avatar,
		},
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	posts[idx].Comments = append(posts[idx].Comments, comment)

	if err := s.store.Save(postsBlobKey, posts); err != nil {
		return models.Comment{}, err
	}

	s.notify("comment.added", map[string]interface{}{"postId": postID, "comment": comment})
	return comment, nil
}

func (s *PostService) loadPosts() []models.Post {
	var posts []models.Post
	s.store.Load(postsBlobKey, &posts)
	return posts
}

// notify broadcasts a change to all connected websocket clients.
func (s *PostService) notify(action string, payload interface{}) {
	if s.hub == nil {
		return
	}
	msg, err := json.Marshal(websocket.Message{Action: action, Payload: payload})
	if err != nil {
		log.Error().Err(err).Str("action", action).Msg("Failed to encode change notification")
		return
	}
	s.hub.Broadcast <- msg
}

func indexOfPost(posts []models.Post, id string) int {
	for i := range posts {
		if posts[i].ID == id {
			return i
		}
	}
	return -1
}
