package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	skerrors "github.com/tillvoss/archsketch/pkg/errors"
	"github.com/tillvoss/archsketch/pkg/pipeline"
	"github.com/tillvoss/archsketch/pkg/sketch"
	"github.com/tillvoss/archsketch/pkg/store"
)

// sketchRequest is the body of POST /api/v1/sketch.
type sketchRequest struct {
	Text     string   `json:"text"`
	Width    float64  `json:"width,omitempty"`
	Height   float64  `json:"height,omitempty"`
	Formats  []string `json:"formats,omitempty"`
	NoLabels bool     `json:"no_labels,omitempty"`
	Refresh  bool     `json:"refresh,omitempty"`
}

// sketchResponse carries the laid-out graph plus any rendered artifacts.
// Binary artifacts (png) are base64 through encoding/json's []byte rule.
type sketchResponse struct {
	Graph     sketch.GraphJSON   `json:"graph"`
	GraphHash string             `json:"graph_hash"`
	Artifacts map[string][]byte  `json:"artifacts,omitempty"`
	Stats     sketchStats        `json:"stats"`
	Cache     pipeline.CacheInfo `json:"cache"`
}

type sketchStats struct {
	Nodes     int    `json:"nodes"`
	Edges     int    `json:"edges"`
	ExtractMS int64  `json:"extract_ms"`
	LayoutMS  int64  `json:"layout_ms"`
	RenderMS  int64  `json:"render_ms"`
}

// diagramRequest is the body of POST /api/v1/diagrams.
type diagramRequest struct {
	Name  string           `json:"name"`
	Text  string           `json:"text,omitempty"`
	Graph sketch.GraphJSON `json:"graph"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSketch(w http.ResponseWriter, r *http.Request) {
	var req sketchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, skerrors.New(skerrors.ErrCodeInvalidInput, "invalid JSON body"))
		return
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		Text:     req.Text,
		Width:    req.Width,
		Height:   req.Height,
		Formats:  req.Formats,
		NoLabels: req.NoLabels,
		Refresh:  req.Refresh,
		Logger:   s.logger,
	})
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	writeJSON(w, http.StatusOK, sketchResponse{
		Graph:     sketch.Export(result.Graph),
		GraphHash: result.GraphHash,
		Artifacts: result.Artifacts,
		Stats: sketchStats{
			Nodes:     result.Stats.NodeCount,
			Edges:     result.Stats.EdgeCount,
			ExtractMS: result.Stats.ExtractTime.Milliseconds(),
			LayoutMS:  result.Stats.LayoutTime.Milliseconds(),
			RenderMS:  result.Stats.RenderTime.Milliseconds(),
		},
		Cache: result.CacheInfo,
	})
}

func (s *Server) handleListDiagrams(w http.ResponseWriter, r *http.Request) {
	st, ok := s.requireStore(w)
	if !ok {
		return
	}
	diagrams, err := st.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, skerrors.Wrap(skerrors.ErrCodeStore, err, "list diagrams"))
		return
	}
	writeJSON(w, http.StatusOK, diagrams)
}

func (s *Server) handleSaveDiagram(w http.ResponseWriter, r *http.Request) {
	st, ok := s.requireStore(w)
	if !ok {
		return
	}

	var req diagramRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, skerrors.New(skerrors.ErrCodeInvalidInput, "invalid JSON body"))
		return
	}
	if err := skerrors.ValidateDiagramName(req.Name); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	// Reject graphs with dangling edges before they reach the store.
	if _, err := sketch.Import(req.Graph); err != nil {
		writeError(w, http.StatusBadRequest, skerrors.Wrap(skerrors.ErrCodeInvalidInput, err, "invalid graph"))
		return
	}

	now := time.Now().UTC()
	d := &store.Diagram{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Text:      req.Text,
		Graph:     req.Graph,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := st.Save(r.Context(), d); err != nil {
		writeError(w, http.StatusInternalServerError, skerrors.Wrap(skerrors.ErrCodeStore, err, "save diagram"))
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

func (s *Server) handleGetDiagram(w http.ResponseWriter, r *http.Request) {
	st, ok := s.requireStore(w)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	d, err := st.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, skerrors.New(skerrors.ErrCodeDiagramNotFound, "diagram %s not found", id))
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, skerrors.Wrap(skerrors.ErrCodeStore, err, "get diagram"))
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleDeleteDiagram(w http.ResponseWriter, r *http.Request) {
	st, ok := s.requireStore(w)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	err := st.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, skerrors.New(skerrors.ErrCodeDiagramNotFound, "diagram %s not found", id))
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, skerrors.Wrap(skerrors.ErrCodeStore, err, "delete diagram"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// requireStore writes 503 and returns false when no store is configured.
func (s *Server) requireStore(w http.ResponseWriter) (store.Store, bool) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable,
			skerrors.New(skerrors.ErrCodeStore, "no diagram store configured"))
		return nil, false
	}
	return s.store, true
}

// errorResponse is the wire form of an error.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	code := string(skerrors.GetCode(err))
	if code == "" {
		code = string(skerrors.ErrCodeInternal)
	}
	writeJSON(w, status, errorResponse{Code: code, Message: skerrors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps structured error codes to HTTP status codes.
func statusFor(err error) int {
	switch skerrors.GetCode(err) {
	case skerrors.ErrCodeInvalidInput, skerrors.ErrCodeInvalidFormat, skerrors.ErrCodeInvalidDimensions:
		return http.StatusBadRequest
	case skerrors.ErrCodeNotFound, skerrors.ErrCodeDiagramNotFound, skerrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
