package web

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

type modeResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Resumable   bool   `json:"resumable"`
}

type scoreResponse struct {
	Rank      int       `json:"rank"`
	Player    string    `json:"player"`
	Score     int       `json:"score"`
	Moves     int       `json:"moves"`
	CreatedAt time.Time `json:"created_at"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) modes(w http.ResponseWriter, _ *http.Request) {
	games := registry.List()
	out := make([]modeResponse, 0, len(games))
	for _, g := range games {
		out = append(out, modeResponse{
			ID:          g.ID,
			Title:       g.Title,
			Description: g.Description,
			Resumable:   g.Resumable,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) scores(w http.ResponseWriter, r *http.Request) {
	mode := chi.URLParam(r, "mode")
	if !registry.Exists(mode) {
		writeError(w, http.StatusNotFound, "unknown mode: "+mode)
		return
	}

	limit := defaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxLimit)
	}

	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "scores unavailable")
		return
	}
	entries, err := s.store.TopScores(mode, limit)
	if err != nil {
		s.logger.Error("top scores", "mode", mode, "error", err)
		writeError(w, http.StatusInternalServerError, "cannot load scores")
		return
	}

	out := make([]scoreResponse, 0, len(entries))
	for i, e := range entries {
		out = append(out, scoreResponse{
			Rank:      i + 1,
			Player:    e.Player,
			Score:     e.Score,
			Moves:     e.Moves,
			CreatedAt: e.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) stats(w http.ResponseWriter, _ *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "scores unavailable")
		return
	}
	all, err := s.store.GetAllGamesStats()
	if err != nil {
		s.logger.Error("games stats", "error", err)
		writeError(w, http.StatusInternalServerError, "cannot load stats")
		return
	}

	out := make([]*storage.GameStats, 0, len(all))
	for _, gs := range all {
		out = append(out, gs)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GameID < out[j].GameID })
	writeJSON(w, http.StatusOK, out)
}
