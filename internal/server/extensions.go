package server

import (
	"encoding/json"
	"net/http"

	"github.com/agentx-labs/extensiond/internal/cachecontrol"
	"github.com/agentx-labs/extensiond/internal/exttype"
	"github.com/agentx-labs/extensiond/internal/registry"
)

type listResponse struct {
	Data []registry.Descriptor `json:"data"`
}

func (s *Server) listExtensions(w http.ResponseWriter, r *http.Request) error {
	var raw *string
	if v := r.PathValue("type"); v != "" {
		raw = &v
	}

	typ, err := exttype.Resolve(raw)
	if err != nil {
		return &NotFoundError{Path: r.URL.Path}
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	return json.NewEncoder(w).Encode(listResponse{Data: s.registry.List(typ)})
}

func (s *Server) serveSource(w http.ResponseWriter, r *http.Request) error {
	chunk := r.PathValue("chunk")

	source, ok := s.bundles.Lookup(chunk)
	s.metrics.observeBundle(chunk, ok)
	if !ok {
		return &NotFoundError{Path: r.URL.Path}
	}

	h := w.Header()
	h.Set("Content-Type", "application/javascript; charset=UTF-8")
	h.Set("Cache-Control", s.cache.Compute(r, true, false))
	h.Set("Vary", cachecontrol.VaryHeader)
	_, err := w.Write([]byte(source))
	return err
}
