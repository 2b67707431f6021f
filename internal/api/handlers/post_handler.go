package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/mini-social-be/internal/auth"
	"github.com/isdelr/mini-social-be/internal/feed"
	"github.com/isdelr/mini-social-be/internal/models"
	"github.com/isdelr/mini-social-be/internal/services"
)

// PostHandler handles HTTP requests for the feed and post mutations.
type PostHandler struct {
	service services.PostServiceProvider
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(service services.PostServiceProvider) *PostHandler {
	return &PostHandler{service: service}
}

// CreatePostPayload defines the structure for post submissions.
type CreatePostPayload struct {
	Text  string `json:"text"`
	Image string `json:"image"`
}

// CommentPayload defines the structure for comment submissions.
type CommentPayload struct {
	Text string `json:"text"`
}

// GetFeed returns the post collection filtered by ?q= and ordered by ?sort=
// (latest, oldest or mostLiked; latest when omitted).
func (h *PostHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	mode := feed.SortMode(r.URL.Query().Get("sort"))
	if mode == "" {
		mode = feed.SortLatest
	}

	posts := feed.Query(h.service.GetAllPosts(), term, mode)
	if posts == nil {
		posts = []models.Post{}
	}
	respondJSON(w, http.StatusOK, posts)
}

// Create handles post submission by the authenticated session.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload CreatePostPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	session := auth.SessionFromContext(r.Context())
	post, err := h.service.CreatePost(session, payload.Text, payload.Image)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, post)
}

// Delete removes a post. The store rejects anyone but the author.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFromContext(r.Context())
	if err := h.service.DeletePost(session, chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ToggleLike flips the session user's membership in the post's like set and
// returns the updated post.
func (h *PostHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFromContext(r.Context())
	post, err := h.service.ToggleLike(session, chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, post)
}

// AddComment appends a comment to the post.
func (h *PostHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	var payload CommentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	session := auth.SessionFromContext(r.Context())
	comment, err := h.service.AddComment(session, chi.URLParam(r, "id"), payload.Text)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, comment)
}
