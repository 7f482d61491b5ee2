package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"newswire/internal/core"
	"newswire/internal/persistence"
)

// userIDHeader carries the caller's identity. Authentication itself is an
// upstream concern; this service trusts the header set by the gateway.
const userIDHeader = "X-User-ID"

type apiResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Error("failed to encode response", "error", err.Error())
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string, err error) {
	resp := apiResponse{Message: message}
	if err != nil {
		resp.Error = err.Error()
	}
	s.respondJSON(w, status, resp)
}

// handleHealth reports liveness including a database ping.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"database": "ok"}
	if err := s.db.Ping(r.Context()); err != nil {
		checks["database"] = "error"
		s.respondJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "unhealthy",
			"checks": checks,
		})
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"checks": checks,
	})
}

// queryOptionsFromRequest maps the list query parameters onto QueryOptions.
func queryOptionsFromRequest(r *http.Request) (persistence.QueryOptions, error) {
	q := r.URL.Query()
	opts := persistence.QueryOptions{
		Search:   q.Get("search_key"),
		Category: q.Get("category"),
		Source:   q.Get("source"),
		Page:     1,
	}
	if v := q.Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			opts.Page = n
		}
	}
	if v := q.Get("published_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return opts, fmt.Errorf("invalid published_date %q, expected YYYY-MM-DD", v)
		}
		opts.PublishedDate = &t
	}
	return opts, nil
}

// handleArticleList handles GET /api/article/list.
func (s *Server) handleArticleList(w http.ResponseWriter, r *http.Request) {
	opts, err := queryOptionsFromRequest(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	articles, err := s.db.Articles().Query(r.Context(), opts)
	if err != nil {
		s.log.Error("failed to fetch article list", "error", err.Error())
		s.respondError(w, http.StatusInternalServerError, "Failed to fetch article list", err)
		return
	}

	s.respondJSON(w, http.StatusOK, apiResponse{
		Message: "article list fetch successfully",
		Data:    articles,
	})
}

// handleArticleDetail handles GET /api/article/detail/{id}.
func (s *Server) handleArticleDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	article, err := s.db.Articles().Get(r.Context(), id)
	if errors.Is(err, persistence.ErrNotFound) {
		s.respondError(w, http.StatusNotFound, "article not found", nil)
		return
	}
	if err != nil {
		s.log.Error("failed to fetch article detail", "error", err.Error())
		s.respondError(w, http.StatusInternalServerError, "Failed to fetch article detail", err)
		return
	}

	s.respondJSON(w, http.StatusOK, apiResponse{
		Message: "article detail fetch successfully",
		Data:    article,
	})
}

// handlePreferredArticleList handles GET /api/article/user/preferred-list.
// A user without a stored preference gets a distinct condition, never an
// unrestricted or empty list.
func (s *Server) handlePreferredArticleList(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get(userIDHeader)
	if userID == "" {
		s.respondError(w, http.StatusUnauthorized, "missing user identity", nil)
		return
	}

	opts, err := queryOptionsFromRequest(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	pref, err := s.db.Preferences().Get(r.Context(), userID)
	if errors.Is(err, persistence.ErrNoPreference) {
		s.respondError(w, http.StatusBadRequest, "user preferred article list not found!", nil)
		return
	}
	if err != nil {
		s.log.Error("failed to fetch user preference", "error", err.Error())
		s.respondError(w, http.StatusInternalServerError, "Failed to fetch user preferred article list", err)
		return
	}

	sets := pref.Sets()
	opts.Preference = &sets

	articles, err := s.db.Articles().Query(r.Context(), opts)
	if err != nil {
		s.log.Error("failed to fetch user preferred article list", "error", err.Error())
		s.respondError(w, http.StatusInternalServerError, "Failed to fetch user preferred article list", err)
		return
	}

	s.respondJSON(w, http.StatusOK, apiResponse{
		Message: "user preferred article list fetch successfully",
		Data:    articles,
	})
}

// preferencePayload is the wire form of a preference: the three lists as
// arrays, never as the comma-joined storage encoding.
type preferencePayload struct {
	UserID    string    `json:"user_id"`
	Source    []string  `json:"source"`
	Category  []string  `json:"category"`
	Author    []string  `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newPreferencePayload(pref *core.UserPreference) preferencePayload {
	sets := pref.Sets()
	payload := preferencePayload{
		UserID:    pref.UserID,
		Source:    sets.Source,
		Category:  sets.Category,
		Author:    sets.Author,
		CreatedAt: pref.CreatedAt,
		UpdatedAt: pref.UpdatedAt,
	}
	if payload.Source == nil {
		payload.Source = []string{}
	}
	if payload.Category == nil {
		payload.Category = []string{}
	}
	if payload.Author == nil {
		payload.Author = []string{}
	}
	return payload
}

// handleSetPreference handles POST /api/user/article/set-preference with
// upsert semantics.
func (s *Server) handleSetPreference(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get(userIDHeader)
	if userID == "" {
		s.respondError(w, http.StatusUnauthorized, "missing user identity", nil)
		return
	}

	var body struct {
		Source   []string `json:"source"`
		Category []string `json:"category"`
		Author   []string `json:"author"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	pref := &core.UserPreference{
		UserID:           userID,
		PreferSource:     core.JoinList(body.Source),
		PreferCategories: core.JoinList(body.Category),
		PreferAuthor:     core.JoinList(body.Author),
	}
	if err := s.db.Preferences().Upsert(r.Context(), pref); err != nil {
		s.log.Error("failed to save user preference", "error", err.Error())
		s.respondError(w, http.StatusInternalServerError, "Failed to save user article preference", err)
		return
	}

	// Re-read so the response reflects the stored row, including the
	// original created_at on overwrite.
	stored, err := s.db.Preferences().Get(r.Context(), userID)
	if err != nil {
		stored = pref
	}

	s.respondJSON(w, http.StatusOK, apiResponse{
		Message: "user article preference saved successfully",
		Data:    newPreferencePayload(stored),
	})
}

// handleGetPreference handles GET /api/user/article/get-preference.
func (s *Server) handleGetPreference(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get(userIDHeader)
	if userID == "" {
		s.respondError(w, http.StatusUnauthorized, "missing user identity", nil)
		return
	}

	pref, err := s.db.Preferences().Get(r.Context(), userID)
	if errors.Is(err, persistence.ErrNoPreference) {
		s.respondError(w, http.StatusBadRequest, "user article preference not set", nil)
		return
	}
	if err != nil {
		s.log.Error("failed to fetch user preference", "error", err.Error())
		s.respondError(w, http.StatusInternalServerError, "Failed to fetch user article preference", err)
		return
	}

	s.respondJSON(w, http.StatusOK, apiResponse{
		Message: "user article preference fetched successfully",
		Data:    newPreferencePayload(pref),
	})
}
