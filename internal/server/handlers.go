package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	apperr "github.com/matzehuels/treeviz/pkg/errors"
	"github.com/matzehuels/treeviz/pkg/observability"
	"github.com/matzehuels/treeviz/pkg/pipeline"
	"github.com/matzehuels/treeviz/pkg/render"
	"github.com/matzehuels/treeviz/pkg/tree"
	"github.com/matzehuels/treeviz/pkg/tree/layout"
)

// sceneResponse is the body of POST /v1/scenes.
type sceneResponse struct {
	ID       string          `json:"id"`
	TreeHash string          `json:"tree_hash"`
	Empty    bool            `json:"empty"`
	Message  string          `json:"message,omitempty"`
	Canvas   layout.Canvas   `json:"canvas"`
	Commands json.RawMessage `json:"commands"`
	Issues   []string        `json:"issues,omitempty"`
	Cached   bool            `json:"cached"`
}

type errorResponse struct {
	Error string      `json:"error"`
	Code  apperr.Code `json:"code,omitempty"`
}

func (s *Server) handleScene(w http.ResponseWriter, r *http.Request) {
	opts, err := s.options(r, pipeline.FormatJSON)
	if err != nil {
		writeError(w, r, err)
		return
	}
	t, issues, err := s.readTree(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	scene, hit, err := s.runner.BuildWithCacheInfo(r.Context(), t, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	cmds, err := render.MarshalCommands(scene.Commands)
	if err != nil {
		writeError(w, r, apperr.Wrap(apperr.ErrCodeInternal, err, "encode commands"))
		return
	}

	resp := sceneResponse{
		ID:       uuid.NewString(),
		TreeHash: pipeline.TreeHash(t),
		Empty:    scene.Empty,
		Message:  scene.Message,
		Canvas:   scene.Canvas,
		Commands: cmds,
		Cached:   hit,
	}
	for _, is := range issues {
		resp.Issues = append(resp.Issues, is.String())
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, r, err)
		return
	}
	opts, err := s.options(r, format)
	if err != nil {
		writeError(w, r, err)
		return
	}
	t, _, err := s.readTree(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), t, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	w.Header().Set("X-Treeviz-Cache", cacheHeader(result.CacheInfo.RenderHit))
	w.WriteHeader(http.StatusOK)
	w.Write(result.Artifacts[format])
}

// options merges query parameters over the server defaults.
func (s *Server) options(r *http.Request, format string) (pipeline.Options, error) {
	opts := s.cfg.Defaults
	opts.Formats = []string{format}
	opts.Theme = s.cfg.Theme
	opts.Logger = nil

	q := r.URL.Query()
	if v := q.Get("width"); v != "" {
		w, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, apperr.Wrap(apperr.ErrCodeInvalidWidth, err, "width %q", v)
		}
		opts.Width = w
	}
	if v := q.Get("engine"); v != "" {
		opts.Engine = v
	}
	if v := q.Get("legend"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, apperr.Wrap(apperr.ErrCodeInvalidInput, err, "legend %q", v)
		}
		opts.Legend = b
	}
	if v := q.Get("scale"); v != "" {
		sc, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, apperr.Wrap(apperr.ErrCodeInvalidInput, err, "scale %q", v)
		}
		opts.Scale = sc
	}
	// Defaults may arrive pre-validated; the overrides above have not been.
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

// readTree decodes the request body as a tree and runs diagnostics.
func (s *Server) readTree(w http.ResponseWriter, r *http.Request) (*tree.Tree, []tree.Issue, error) {
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	defer body.Close()
	logger := s.logger.With("request_id", middleware.GetReqID(r.Context()))
	return pipeline.Load(body, logger)
}

func cacheHeader(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

// statusFor maps error codes to HTTP status codes.
func statusFor(err error) int {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return http.StatusRequestEntityTooLarge
	}
	switch apperr.GetCode(err) {
	case apperr.ErrCodeInvalidInput, apperr.ErrCodeInvalidFormat, apperr.ErrCodeInvalidEngine,
		apperr.ErrCodeInvalidTheme, apperr.ErrCodeInvalidWidth:
		return http.StatusBadRequest
	case apperr.ErrCodeNotFound, apperr.ErrCodeFileNotFound:
		return http.StatusNotFound
	case apperr.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	observability.HTTP().OnError(r.Context(), r.Method, routePattern(r), err)
	writeJSON(w, status, errorResponse{
		Error: apperr.UserMessage(err),
		Code:  apperr.GetCode(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
