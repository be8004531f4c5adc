package server

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/inscribe/pkg/errors"
	"github.com/matzehuels/inscribe/pkg/history"
	"github.com/matzehuels/inscribe/pkg/pipeline"
	"github.com/matzehuels/inscribe/pkg/render"
	"github.com/matzehuels/inscribe/pkg/render/nodelink"
)

// Response headers describing a render.
const (
	HeaderSeed          = "X-Inscribe-Seed"
	HeaderIntersections = "X-Inscribe-Intersections"
	HeaderHistoryID     = "X-Inscribe-History-ID"
)

const defaultHistoryLimit = 50

var contentTypes = map[string]string{
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

// renderRequest is the body of POST /api/v1/render. Zero fields keep the
// server defaults. Seed is a decimal string since JSON numbers cannot hold
// every uint64.
type renderRequest struct {
	Text      string  `json:"text"`
	Tokens    string  `json:"tokens"`
	Seed      string  `json:"seed"`
	Format    string  `json:"format"`
	Style     string  `json:"style"`
	Primary   string  `json:"primary"`
	Secondary string  `json:"secondary"`
	Ternary   string  `json:"ternary"`
	Attempts  int     `json:"attempts"`
	Straight  bool    `json:"straight"`
	Scale     float64 `json:"scale"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code      errors.Code `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"requestId,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStyles(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"styles": render.Backgrounds()})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}

	opts, err := s.renderOptions(req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	format := opts.Formats[0]
	w.Header().Set(HeaderSeed, strconv.FormatUint(res.Seed, 10))
	w.Header().Set(HeaderIntersections, strconv.Itoa(res.Intersections()))

	if s.history != nil {
		e := history.NewEntry(opts.Text, opts.Style, res.Explanation, res.Seed)
		e.Intersections = res.Intersections()
		if opts.Text == "" {
			e.Text = opts.Tokens
		}
		if e, err := s.history.Add(r.Context(), e); err != nil {
			s.logger.Warn("record history", "error", err)
		} else {
			w.Header().Set(HeaderHistoryID, e.ID)
		}
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	w.Write(res.Artifacts[format])
}

func (s *Server) renderOptions(req renderRequest) (pipeline.Options, error) {
	opts := s.defaults
	opts.Text = req.Text
	opts.Tokens = req.Tokens
	opts.Straight = opts.Straight || req.Straight

	if req.Seed != "" {
		seed, err := errors.ValidateSeedString(req.Seed)
		if err != nil {
			return opts, err
		}
		opts.Seed = seed
	}
	if req.Format != "" {
		if err := errors.ValidateFormat(req.Format); err != nil {
			return opts, err
		}
		opts.Formats = []string{req.Format}
	}
	if len(opts.Formats) == 0 {
		opts.Formats = []string{pipeline.FormatPNG}
	}
	opts.Formats = opts.Formats[:1]

	// Arbitrary image paths are a CLI feature.
	if req.Style != "" {
		if !render.IsBuiltinBackground(req.Style) {
			return opts, errors.New(errors.ErrCodeInvalidStyle,
				"unknown style %q (must be one of: %s)", req.Style, strings.Join(render.Backgrounds(), ", "))
		}
		opts.Style = req.Style
	}

	if req.Primary != "" {
		opts.Primary = req.Primary
	}
	if req.Secondary != "" {
		opts.Secondary = req.Secondary
	}
	if req.Ternary != "" {
		opts.Ternary = req.Ternary
	}
	if req.Attempts > 0 {
		opts.Attempts = min(req.Attempts, maxAttempts)
	}
	if req.Scale > 0 {
		opts.Scale = min(req.Scale, maxScale)
	}
	return opts, nil
}

// Request limits.
const (
	maxAttempts = 100
	maxScale    = 4
)

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Text:        q.Get("text"),
		Tokens:      q.Get("tokens"),
		MaxSnippets: s.defaults.MaxSnippets,
	}

	_, trees, err := s.runner.Trees(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	switch format := q.Get("format"); format {
	case "", "text":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		for i, t := range trees {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprint(w, t.String())
		}
	case "dot", "svg":
		if len(trees) > 1 {
			if i, err := strconv.Atoi(q.Get("snippet")); err == nil && i >= 0 && i < len(trees) {
				trees = trees[i : i+1]
			}
		}
		dot := nodelink.ToDOT(trees[0], nodelink.Options{Detailed: q.Get("detailed") == "true"})
		if format == "dot" {
			w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
			w.Write([]byte(dot))
			return
		}
		svg, err := nodelink.RenderSVG(r.Context(), dot)
		if err != nil {
			s.writeError(w, r, errors.Wrap(errors.ErrCodeRender, err, "render tree"))
			return
		}
		w.Header().Set("Content-Type", contentTypes[pipeline.FormatSVG])
		w.Write(svg)
	default:
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidFormat, "unsupported tree format: %s (must be text, dot or svg)", format))
	}
}

func (s *Server) handleHistoryList(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "history is disabled"))
		return
	}
	limit := defaultHistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "invalid limit: %q", v))
			return
		}
		limit = n
	}

	entries, err := s.history.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeStorage, err, "list history"))
		return
	}
	if entries == nil {
		entries = []history.Entry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (s *Server) handleHistoryGet(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "history is disabled"))
		return
	}
	id := chi.URLParam(r, "id")
	e, err := s.history.Get(r.Context(), id)
	if stderrors.Is(err, history.ErrNotFound) {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeNotFound, err, "no history entry %q", id))
		return
	}
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeStorage, err, "get history"))
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	code := errors.GetCode(err)
	msg := errors.UserMessage(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
		if code == errors.ErrCodeInternal {
			msg = "internal error"
		}
	}
	writeJSON(w, status, errorResponse{Error: errorBody{
		Code:      code,
		Message:   msg,
		RequestID: RequestIDFromContext(r.Context()),
	}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}
