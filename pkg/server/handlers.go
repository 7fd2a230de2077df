package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/flowboard/pkg/buildinfo"
	"github.com/matzehuels/flowboard/pkg/catalog"
	"github.com/matzehuels/flowboard/pkg/editor"
	"github.com/matzehuels/flowboard/pkg/errors"
	"github.com/matzehuels/flowboard/pkg/graph"
	"github.com/matzehuels/flowboard/pkg/observability"
	"github.com/matzehuels/flowboard/pkg/pipeline"
	"github.com/matzehuels/flowboard/pkg/render/canvas"
)

// maxBody caps request bodies.
const maxBody = 1 << 20

var contentTypes = map[string]string{
	errors.FormatSVG:  "image/svg+xml",
	errors.FormatJSON: "application/json",
	errors.FormatPNG:  "image/png",
	errors.FormatPDF:  "application/pdf",
	errors.FormatDOT:  "text/vnd.graphviz",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.sessions.len(),
		"build":    buildinfo.Get(),
	})
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]catalog.Entry{"types": s.catalog.Entries()})
}

type createResponse struct {
	ID string `json:"id"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		writeError(w, s.logger, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body"))
		return
	}

	var opts []editor.Option
	if len(bytes.TrimSpace(data)) > 0 {
		seed, err := graph.Unmarshal(data)
		if err != nil {
			writeError(w, s.logger, err)
			return
		}
		opts = append(opts, editor.WithSeed(seed))
	}

	id := s.sessions.add(editor.New(s.catalog, opts...))
	s.logger.Debug("session created", "id", id)
	writeJSON(w, http.StatusCreated, createResponse{ID: id})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	var snap graph.Snapshot
	if !s.sessions.with(chi.URLParam(r, "id"), func(sess *editor.Session) { snap = sess.Snapshot() }) {
		s.sessionNotFound(w, r)
		return
	}
	var buf bytes.Buffer
	if err := graph.Write(snap, &buf); err != nil {
		writeError(w, s.logger, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(buf.Bytes())
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if !s.sessions.remove(chi.URLParam(r, "id")) {
		s.sessionNotFound(w, r)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type eventResponse struct {
	Result  editor.Result  `json:"result"`
	Diagram canvas.Diagram `json:"diagram"`
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	var ev editor.Event
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&ev); err != nil {
		writeError(w, s.logger, errors.Wrap(errors.ErrCodeInvalidEvent, err, "malformed event"))
		return
	}
	if err := s.validate.Struct(ev); err != nil {
		writeError(w, s.logger, errors.Wrap(errors.ErrCodeInvalidEvent, err, "%s", describeValidation(err)))
		return
	}

	th, _ := canvas.ThemeByName(s.theme)
	var resp eventResponse
	ok := s.sessions.with(chi.URLParam(r, "id"), func(sess *editor.Session) {
		resp.Result = sess.Apply(ev)
		resp.Diagram = sess.Diagram(canvas.WithTheme(th))
	})
	if !ok {
		s.sessionNotFound(w, r)
		return
	}

	observability.Command().OnCommand(r.Context(), string(ev.Kind), resp.Result.Changed)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDiagram(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	opts, err := s.diagramOptions(r, format)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	opts.Logger = s.logger

	// Project under the session lock, then render without it.
	var (
		src     pipeline.Source
		projErr error
	)
	if !s.sessions.with(chi.URLParam(r, "id"), func(sess *editor.Session) {
		src, projErr = s.runner.Project(sess, &opts)
	}) {
		s.sessionNotFound(w, r)
		return
	}
	if projErr != nil {
		writeError(w, s.logger, projErr)
		return
	}

	res, err := s.runner.Render(r.Context(), src, opts)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("ETag", strconv.Quote(src.Hash))
	w.Write(res.Artifacts[format])
}

// diagramOptions reads render options from the query string. Formats only
// nodelink supports (dot) imply viz=nodelink.
func (s *Server) diagramOptions(r *http.Request, format string) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		VizType:     q.Get("viz"),
		Formats:     []string{format},
		Theme:       q.Get("theme"),
		Interactive: queryBool(q.Get("interactive")),
		Inspector:   queryBool(q.Get("inspector")),
		Detailed:    queryBool(q.Get("detailed")),
		Refresh:     queryBool(q.Get("refresh")),
	}
	if opts.VizType == "" && format == errors.FormatDOT {
		opts.VizType = errors.VizNodelink
	}
	if opts.Theme == "" {
		opts.Theme = s.theme
	}
	if v := q.Get("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil || scale <= 0 || scale > 8 {
			return opts, errors.New(errors.ErrCodeInvalidInput, "scale must be a number in (0, 8]")
		}
		opts.Scale = scale
	}
	return opts, opts.ValidateAndSetDefaults()
}

func (s *Server) sessionNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, s.logger, errors.New(errors.ErrCodeSessionNotFound, "session %s not found", chi.URLParam(r, "id")))
}

func queryBool(v string) bool {
	b, _ := strconv.ParseBool(v)
	return b
}

// describeValidation turns validator errors into one readable line.
func describeValidation(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return "invalid event"
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required", "required_if":
		return "event is missing field " + fe.Field()
	case "oneof":
		return fmt.Sprintf("unknown event kind %q", fe.Value())
	default:
		return "invalid event field " + fe.Field()
	}
}
