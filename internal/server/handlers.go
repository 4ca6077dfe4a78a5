package server

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	jsoniter "github.com/json-iterator/go"

	"github.com/paupedrejon/conceptmap/pkg/buildinfo"
	"github.com/paupedrejon/conceptmap/pkg/errors"
	"github.com/paupedrejon/conceptmap/pkg/layout"
	"github.com/paupedrejon/conceptmap/pkg/pipeline"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maxBodyBytes leaves room for the JSON envelope around the text.
const maxBodyBytes = errors.MaxInputBytes + 16<<10

// PlanRequest is the body of POST /v1/plan and /v1/render. A text/plain body
// is taken as Text with default options.
type PlanRequest struct {
	Text    string        `json:"text"`
	Layout  layout.Config `json:"layout"`
	Refresh bool          `json:"refresh,omitempty"`
}

// PlanResponse is the body of a successful POST /v1/plan.
type PlanResponse struct {
	Key         string              `json:"key"`
	Cached      bool                `json:"cached"`
	Repaired    bool                `json:"repaired"`
	Diagnostics []errors.Diagnostic `json:"diagnostics"`
	Plan        jsoniter.RawMessage `json:"plan"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Kind    errors.Code `json:"kind"`
	Message string      `json:"message"`
	Snippet string      `json:"snippet,omitempty"`
}

var contentTypes = map[string]string{
	pipeline.FormatJSON: "application/json",
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	res, err := s.plan(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	diags := res.Diagnostics
	if diags == nil {
		diags = []errors.Diagnostic{}
	}
	w.Header().Set("X-Cache", cacheStatus(res.Cached))
	writeJSON(w, http.StatusOK, PlanResponse{
		Key:         res.Key,
		Cached:      res.Cached,
		Repaired:    res.Repaired,
		Diagnostics: diags,
		Plan:        res.PlanJSON,
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := pipeline.RenderOptions{
		Format: q.Get("format"),
		Engine: q.Get("engine"),
	}
	if v := q.Get("detailed"); v != "" {
		detailed, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid detailed: %q", v))
			return
		}
		opts.Detailed = detailed
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		writeError(w, err)
		return
	}

	res, err := s.plan(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	data, hit, err := s.runner.Render(r.Context(), res, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[opts.Format])
	w.Header().Set("X-Cache", cacheStatus(hit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, errors.New(errors.ErrCodeInternal, "streaming unsupported"))
		return
	}

	ch := s.notifier.Subscribe()
	defer s.notifier.Unsubscribe(ch)

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case e, ok := <-ch:
			if !ok {
				return
			}
			data, err := json.Marshal(e)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "id: %s\nevent: plan\ndata: %s\n\n", e.ID, data)
			flusher.Flush()
		}
	}
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"counters":       s.counters.Snapshot(),
		"layout_time_ms": s.counters.LayoutTime().Milliseconds(),
		"subscribers":    s.notifier.Len(),
	})
}

// plan decodes the request and runs the pipeline.
func (s *Server) plan(w http.ResponseWriter, r *http.Request) (*pipeline.Result, error) {
	req, err := decodePlanRequest(http.MaxBytesReader(w, r.Body, maxBodyBytes), r.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}
	if err := errors.ValidateInput(req.Text); err != nil {
		return nil, err
	}
	return s.runner.Plan(r.Context(), req.Text, pipeline.Options{
		Layout:  s.layout.Overlay(req.Layout),
		Refresh: req.Refresh,
	})
}

func decodePlanRequest(body io.Reader, contentType string) (PlanRequest, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return PlanRequest{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body")
	}

	mt, _, _ := mime.ParseMediaType(contentType)
	if mt == "text/plain" {
		return PlanRequest{Text: string(data)}, nil
	}

	var req PlanRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return PlanRequest{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request")
	}
	return req, nil
}

// statusFor maps an error code onto an HTTP status.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeMalformedJSON, errors.ErrCodeEmptySpec:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidConfig:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, statusFor(code), ErrorResponse{
		Kind:    code,
		Message: errors.UserMessage(err),
		Snippet: errors.SnippetOf(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(data, '\n'))
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
