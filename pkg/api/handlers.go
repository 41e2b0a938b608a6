package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/injectograph/injectograph/pkg/digraph"
	"github.com/injectograph/injectograph/pkg/errors"
	"github.com/injectograph/injectograph/pkg/pipeline"
	"github.com/injectograph/injectograph/pkg/store"
)

// createGraphRequest is the body for POST /api/graphs.
// Declarations carries the raw extractor output; Direction and Entries
// optionally filter the graph before it is stored.
type createGraphRequest struct {
	Name         string            `json:"name"`
	Declarations json.RawMessage   `json:"declarations"`
	Direction    digraph.Direction `json:"direction,omitempty"`
	Entries      []string          `json:"entries,omitempty"`
}

// createGraphResponse is the body for a successful POST /api/graphs.
type createGraphResponse struct {
	Snapshot store.Info    `json:"snapshot"`
	Graph    digraph.Graph `json:"graph"`
}

// subgraphResponse is the body for GET /api/graphs/{id}/subgraph.
type subgraphResponse struct {
	Direction digraph.Direction `json:"direction"`
	Entries   []string          `json:"entries"`
	Graph     digraph.Graph     `json:"graph"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreateGraph(w http.ResponseWriter, r *http.Request) {
	var req createGraphRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}
	if len(req.Declarations) == 0 {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "declarations must not be empty"))
		return
	}

	g, err := s.runner.Graph(r.Context(), req.Declarations, pipeline.Options{
		Direction: req.Direction,
		Entries:   req.Entries,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	snap := store.NewSnapshot(req.Name, g)
	if err := s.store.Save(r.Context(), snap); err != nil {
		s.writeError(w, err)
		return
	}

	s.logger.Info("snapshot created", "id", snap.ID, "name", snap.Name,
		"nodes", len(g.Nodes), "edges", len(g.Edges))
	s.writeJSON(w, http.StatusCreated, createGraphResponse{
		Snapshot: store.InfoOf(snap),
		Graph:    g,
	})
}

func (s *Server) handleListGraphs(w http.ResponseWriter, r *http.Request) {
	infos, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if infos == nil {
		infos = []store.Info{}
	}
	s.writeJSON(w, http.StatusOK, infos)
}

func (s *Server) handleGetGraph(w http.ResponseWriter, r *http.Request) {
	snap, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleDeleteGraph(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	s.logger.Info("snapshot deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// handleSubgraph filters a stored snapshot by direction and entry points.
// Entries repeat as ?entry=A&entry=B; direction defaults to downstream.
func (s *Server) handleSubgraph(w http.ResponseWriter, r *http.Request) {
	snap, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	q := r.URL.Query()
	direction := digraph.Direction(q.Get("direction"))
	if direction == "" {
		direction = pipeline.DefaultDirection
	}
	entries := q["entry"]

	g, err := digraph.Filter(snap.Graph, direction, entries)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, subgraphResponse{
		Direction: direction,
		Entries:   entries,
		Graph:     g,
	})
}
