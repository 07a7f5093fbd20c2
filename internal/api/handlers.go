package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sketchflow/sketchflow/pkg/errors"
	"github.com/sketchflow/sketchflow/pkg/pipeline"
	"github.com/sketchflow/sketchflow/pkg/store"
)

// GenerateRequest is the JSON body for POST /v1/diagrams. It embeds the
// pipeline options so API callers control the same knobs as the CLI.
type GenerateRequest struct {
	pipeline.Options

	// Save persists the assembled document and returns its id.
	Save bool `json:"save,omitempty"`
}

// GenerateResponse is the result of a render. Artifact bytes are
// base64-encoded by the JSON marshaller.
type GenerateResponse struct {
	ID           string            `json:"id,omitempty"`
	Title        string            `json:"title"`
	DocumentHash string            `json:"document_hash"`
	Blocks       int               `json:"blocks"`
	Elements     int               `json:"elements"`
	Cached       bool              `json:"cached"`
	Artifacts    map[string][]byte `json:"artifacts"`
}

// ListResponse wraps the saved-diagram listing.
type ListResponse struct {
	Diagrams []store.Record `json:"diagrams"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleGenerate renders a manifest. The body is either a JSON
// GenerateRequest or, with a TOML content type, the raw manifest
// itself.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	req, err := decodeGenerateRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if req.ManifestPath != "" {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "manifest_path is not accepted over HTTP"))
		return
	}
	if req.Save && s.store == nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "persistence is not configured"))
		return
	}

	req.Options.Logger = s.logger
	result, err := s.runner.Execute(r.Context(), req.Options)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := GenerateResponse{
		Title:        result.Document.Title,
		DocumentHash: result.DocumentHash,
		Blocks:       result.Stats.BlockCount,
		Elements:     result.Stats.ElementCount,
		Cached:       result.CacheInfo.DocumentHit && result.CacheInfo.RenderHit,
		Artifacts:    result.Artifacts,
	}

	if req.Save {
		rec, err := s.store.Put(r.Context(), result.Document)
		if err != nil {
			writeError(w, err)
			return
		}
		resp.ID = rec.ID
	}

	status := http.StatusOK
	if resp.ID != "" {
		status = http.StatusCreated
	}
	writeJSON(w, status, resp)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeJSON(w, http.StatusOK, ListResponse{Diagrams: []store.Record{}})
		return
	}

	var limit int64
	if q := r.URL.Query().Get("limit"); q != "" {
		n, err := strconv.ParseInt(q, 10, 64)
		if err != nil || n < 0 {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid limit: %q", q))
			return
		}
		limit = n
	}

	records, err := s.store.List(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if records == nil {
		records = []store.Record{}
	}
	writeJSON(w, http.StatusOK, ListResponse{Diagrams: records})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if s.store == nil {
		writeError(w, errors.New(errors.ErrCodeNotFound, "diagram %s not found", id))
		return
	}
	rec, err := s.store.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if s.store == nil {
		writeError(w, errors.New(errors.ErrCodeNotFound, "diagram %s not found", id))
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeGenerateRequest accepts both request shapes. Raw TOML keeps
// curl invocations simple; JSON exposes the full option set.
func decodeGenerateRequest(r *http.Request) (GenerateRequest, error) {
	var req GenerateRequest

	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/toml") || strings.HasPrefix(ct, "text/plain") {
		data, err := io.ReadAll(r.Body)
		if err != nil {
			return req, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
		}
		req.Manifest = string(data)
		if f := r.URL.Query().Get("formats"); f != "" {
			req.Formats = strings.Split(f, ",")
		}
		req.Save = r.URL.Query().Get("save") == "true"
		return req, nil
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	return req, nil
}
