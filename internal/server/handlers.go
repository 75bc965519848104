package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/vapex/aromasearch/internal/engine"
	"github.com/vapex/aromasearch/internal/models"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		// A missing query is a caller bug, not an empty result.
		s.respondError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}

	opts := &engine.SearchOptions{
		Context: r.URL.Query().Get("context"),
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		opts.MaxResults = limit
	}

	s.logger.Debug("search request",
		zap.String("query", query),
		zap.String("context", opts.Context),
		zap.Int("limit", opts.MaxResults),
	)

	start := time.Now()
	results, err := s.index.Search(query, opts)
	if err != nil {
		if errors.Is(err, engine.ErrInvalidArgument) {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		// Degrade rather than break: the UI renders the unfiltered list.
		s.logger.Error("search failed", zap.Error(err))
		s.respondJSON(w, http.StatusOK, &models.SearchResponse{
			Results:  []*models.ScoredResult{},
			Query:    query,
			Fallback: true,
		})
		return
	}

	s.respondJSON(w, http.StatusOK, &models.SearchResponse{
		Results:    results,
		Total:      len(results),
		Query:      query,
		QueryTime:  time.Since(start).Milliseconds(),
		Generation: s.index.Generation(),
	})
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	partial := r.URL.Query().Get("q")
	if partial == "" {
		s.respondError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 0 {
			s.respondError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	suggestions := s.index.Suggest(partial, limit)
	s.respondJSON(w, http.StatusOK, &models.SuggestResponse{
		Suggestions: suggestions,
		Partial:     partial,
	})
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	catalogData, err := s.store.LoadCatalog(r.Context())
	if err != nil {
		s.logger.Error("catalog load failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := s.index.Load(catalogData); err != nil {
		s.logger.Error("index load failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "reloaded",
		"items":      s.index.Size(),
		"generation": s.index.Generation(),
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	aromaCount, err := s.store.CountAromas(ctx)
	if err != nil {
		s.logger.Error("status: count aromas failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	recipeCount, err := s.store.CountRecipes(ctx)
	if err != nil {
		s.logger.Error("status: count recipes failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := map[string]interface{}{
		"ready":         s.index.Ready(),
		"indexed_items": s.index.Size(),
		"generation":    s.index.Generation(),
		"aromas":        aromaCount,
		"recipes":       recipeCount,
	}
	if loadedAt := s.index.LoadedAt(); !loadedAt.IsZero() {
		resp["loaded_at"] = loadedAt.UTC().Format(time.RFC3339)
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	// Not ready means not serving search yet; readiness probes should hold off.
	if !s.index.Ready() {
		s.respondError(w, http.StatusServiceUnavailable, engine.ErrIndexNotReady.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
