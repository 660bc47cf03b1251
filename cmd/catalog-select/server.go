package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/Sternrassler/catalog-select/pkg/catalog"
	"github.com/Sternrassler/catalog-select/pkg/metrics"
	"github.com/Sternrassler/catalog-select/pkg/selection"
	"github.com/Sternrassler/catalog-select/pkg/session"
	"github.com/rs/zerolog"
)

// server exposes the UI-facing events of a session as JSON endpoints.
type server struct {
	session *session.Session
	timeout time.Duration
	logger  zerolog.Logger
}

func newServer(sess *session.Session, timeout time.Duration, logger zerolog.Logger) *server {
	return &server{
		session: sess,
		timeout: timeout,
		logger:  logger,
	}
}

type pageRequest struct {
	Index int `json:"index"`
}

type selectionRequest struct {
	IDs []catalog.ID `json:"ids"`
}

// bulkSelectRequest carries the free-form count typed into the dialog.
type bulkSelectRequest struct {
	Count float64 `json:"count"`
}

// rowCount saturates a requested count into [0, math.MaxInt], dropping any
// fraction.
func rowCount(count float64) int {
	switch {
	case count <= 0:
		return 0
	case count >= float64(math.MaxInt):
		return math.MaxInt
	default:
		return int(count)
	}
}

type selectionResponse struct {
	IDs   []catalog.ID `json:"ids"`
	Count int          `json:"count"`
}

type errorResponse struct {
	Error string        `json:"error"`
	View  *session.View `json:"view,omitempty"`
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", healthHandler)
	mux.Handle("GET /metrics", metrics.Handler())

	mux.HandleFunc("GET /api/view", s.handleView)
	mux.HandleFunc("POST /api/page", s.handlePage)
	mux.HandleFunc("GET /api/selection", s.handleListSelection)
	mux.HandleFunc("POST /api/selection", s.handleChangeSelection)
	mux.HandleFunc("DELETE /api/selection", s.handleClearSelection)
	mux.HandleFunc("POST /api/bulk-select/open", s.handleBulkOpen)
	mux.HandleFunc("POST /api/bulk-select/confirm", s.handleBulkConfirm)
	mux.HandleFunc("POST /api/bulk-select/cancel", s.handleBulkCancel)
	return mux
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "OK")
}

func (s *server) handleView(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.session.View())
}

func (s *server) handlePage(w http.ResponseWriter, r *http.Request) {
	var req pageRequest
	if !s.decode(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	if err := s.session.Navigate(ctx, req.Index); err != nil {
		view := s.session.View()
		status := http.StatusInternalServerError
		if errors.Is(err, catalog.ErrFetch) {
			status = http.StatusBadGateway
		}
		s.writeJSON(w, status, errorResponse{Error: err.Error(), View: &view})
		return
	}

	s.writeJSON(w, http.StatusOK, s.session.View())
}

func (s *server) handleListSelection(w http.ResponseWriter, r *http.Request) {
	ids := s.session.SelectedIDs()
	s.writeJSON(w, http.StatusOK, selectionResponse{IDs: ids, Count: len(ids)})
}

func (s *server) handleChangeSelection(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if !s.decode(w, r, &req) {
		return
	}

	s.session.ChangeSelection(req.IDs)
	s.writeJSON(w, http.StatusOK, s.session.View())
}

func (s *server) handleClearSelection(w http.ResponseWriter, r *http.Request) {
	s.session.ClearSelection()
	s.writeJSON(w, http.StatusOK, s.session.View())
}

func (s *server) handleBulkOpen(w http.ResponseWriter, r *http.Request) {
	s.session.OpenBulkSelect()
	s.writeJSON(w, http.StatusOK, s.session.View())
}

func (s *server) handleBulkConfirm(w http.ResponseWriter, r *http.Request) {
	var req bulkSelectRequest
	if !s.decode(w, r, &req) {
		return
	}

	count := rowCount(req.Count)
	if _, err := s.session.ConfirmBulkSelect(count); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, selection.ErrDialogClosed) {
			status = http.StatusConflict
		}
		s.logger.Warn().Err(err).Int("count", count).Msg("Bulk-select rejected")
		s.writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}

	s.writeJSON(w, http.StatusOK, s.session.View())
}

func (s *server) handleBulkCancel(w http.ResponseWriter, r *http.Request) {
	s.session.CancelBulkSelect()
	s.writeJSON(w, http.StatusOK, s.session.View())
}

// decode reads a JSON body into v, answering 400 on failure.
func (s *server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.logger.Warn().Err(err).Str("path", r.URL.Path).Msg("Invalid request body")
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid request body: %v", err)})
		return false
	}
	return true
}

func (s *server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to write response")
	}
}
