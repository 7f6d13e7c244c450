package web

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	"github.com/rs/zerolog/log"

	"spinstudio/internal/adapters/http/middleware"
	"spinstudio/internal/application/listutil"
	"spinstudio/internal/application/projections"
	"spinstudio/internal/application/studio"
)

// maxIntentBody bounds a JSON intent. Images travel through the upload routes.
const maxIntentBody = 64 << 10

var shellTemplate = template.Must(template.ParseFS(assets, "templates/shell.html"))

// errorResponse is the body of every non-2xx API reply.
type errorResponse struct {
	Error string       `json:"error"`
	View  *studio.View `json:"view,omitempty"`
}

// internalError logs the cause and replies with a generic 500.
func internalError(w http.ResponseWriter, r *http.Request, err error) {
	log.Error().Err(err).
		Str("path", r.URL.Path).
		Str("request_id", requestID(r)).
		Msg("internal_error")
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("response_encode_failed")
	}
}

func requestID(r *http.Request) string {
	return chiMiddleware.GetReqID(r.Context())
}

// appFor returns the caller's studio instance. The Sessions middleware
// guarantees one is present on every routed request.
func appFor(w http.ResponseWriter, r *http.Request) (*studio.App, bool) {
	app, ok := middleware.AppFromContext(r.Context())
	if !ok {
		internalError(w, r, errors.New("no studio instance on request"))
	}
	return app, ok
}

// handleHealth handles GET /healthz.
func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handlePerf handles GET /debug/perf.
// Query "minutes" bounds the window (default 5).
func (s *server) handlePerf(w http.ResponseWriter, r *http.Request) {
	minutes := 5
	if v, err := strconv.Atoi(r.URL.Query().Get("minutes")); err == nil && v > 0 {
		minutes = v
	}
	since := time.Now().Add(-time.Duration(minutes) * time.Minute)
	writeJSON(w, http.StatusOK, s.deps.Perf.Snapshot(since, 10))
}

// handleShell handles GET /.
// Renders the page that hosts the client; every screen is drawn from /api/view.
func (s *server) handleShell(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := struct{ CSRFToken string }{CSRFToken: csrf.Token(r)}
	if err := shellTemplate.Execute(w, data); err != nil {
		log.Error().Err(err).Msg("template_render_failed")
	}
}

// handleView handles GET /api/view.
// PRE: optional q, sort, dir, page and per_page refine the admin users table
// POST: returns the current screen's View
func (s *server) handleView(w http.ResponseWriter, r *http.Request) {
	app, ok := appFor(w, r)
	if !ok {
		return
	}
	s.respondView(w, r, app, http.StatusOK)
}

// handleIntent handles POST /api/intents/{name}.
// PRE: body is the intent's JSON payload, or empty for intents without fields
// POST: 200 with the new View; 422 with the View and its inline message when
// the input was rejected; 409 when the intent is not offered on screen
func (s *server) handleIntent(w http.ResponseWriter, r *http.Request) {
	app, ok := appFor(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxIntentBody)
	in, err := decodeIntent(chi.URLParam(r, "name"), r)
	if err != nil {
		s.respondError(w, r, app, err)
		return
	}
	s.dispatch(w, r, app, in)
}

// dispatch applies in and writes the outcome.
func (s *server) dispatch(w http.ResponseWriter, r *http.Request, app *studio.App, in studio.Intent) {
	if err := app.Dispatch(r.Context(), in); err != nil {
		s.respondError(w, r, app, err)
		return
	}
	s.respondView(w, r, app, http.StatusOK)
}

func (s *server) respondView(w http.ResponseWriter, r *http.Request, app *studio.App, status int) {
	params := listutil.ParseListParams(r.URL.Query(), projections.UserSortColumns)
	view, err := app.View(r.Context(), params)
	if err != nil {
		s.respondError(w, r, app, err)
		return
	}
	writeJSON(w, status, view)
}

// respondError maps a Dispatch or View error onto a status code.
func (s *server) respondError(w http.ResponseWriter, r *http.Request, app *studio.App, err error) {
	var ue *studio.UserError
	switch {
	case errors.As(err, &ue):
		params := listutil.ParseListParams(r.URL.Query(), projections.UserSortColumns)
		view, verr := app.View(r.Context(), params)
		if verr != nil {
			internalError(w, r, verr)
			return
		}
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: ue.Message, View: &view})
	case errors.Is(err, studio.ErrWrongScreen):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, studio.ErrUnknownIntent):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, studio.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, studio.ErrClosed):
		middleware.ClearSessionCookie(w, s.deps.Secure)
		writeJSON(w, http.StatusGone, errorResponse{Error: "session expired, reload to start again"})
	default:
		internalError(w, r, err)
	}
}
