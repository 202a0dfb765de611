package liveselect

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/goliatone/go-liveselect/pkg/host"
	"github.com/goliatone/go-liveselect/pkg/liveselect"
	"github.com/goliatone/go-liveselect/pkg/render"
)

// ErrMissingForm is returned when no host form is configured for a request.
var ErrMissingForm = errors.New("liveselect: no host form configured")

const maxErrorPayload = 1 << 20

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// Option is a value/label pair returned by the options endpoint.
type Option struct {
	Value any    `json:"value"`
	Label string `json:"label"`
}

type optionsResponse struct {
	Data []Option `json:"data"`
}

type errorsResponse struct {
	Errors     liveselect.ErrorBag `json:"errors"`
	FormErrors []string            `json:"formErrors"`
}

type handler struct {
	opts  Options
	mount string

	// host forms and engines are not safe for concurrent use
	mu         sync.Mutex
	formErrors map[*host.Form][]string
}

// Handler builds a net/http handler with default options plus any overrides.
// Paths are resolved relative to the mount point; wrap it in
// http.StripPrefix or use RegisterRoutes.
func Handler(fns ...OptionFn) http.Handler {
	return NewHandler(fns...)
}

func NewHandler(fns ...OptionFn) http.Handler {
	opts := NewOptions(fns...)
	return HandlerWithOptions(opts)
}

// HandlerWithOptions builds a net/http handler from a pre-constructed
// Options value. Rendered widgets point their requests at
// RenderOptions.Endpoint, or the route path when it is empty, followed by
// the widget model.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return newHandler(opts, mountPath("", opts.RoutePath))
}

func newHandler(opts Options, mount string) *handler {
	return &handler{
		opts:       opts,
		mount:      mount,
		formErrors: make(map[*host.Form][]string),
	}
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r == nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if h.opts.Guard != nil {
		if err := h.opts.Guard(r); err != nil {
			writeGuardError(w, err)
			return
		}
	}

	segments, ok := splitPath(r.URL.EscapedPath())
	if !ok || len(segments) == 0 {
		http.NotFound(w, r)
		return
	}

	form, err := h.resolveForm(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	// GET /errors still renders a widget modelled "errors".
	if len(segments) == 1 && segments[0] == "errors" && r.Method == http.MethodPost {
		h.serveErrors(w, r, form)
		return
	}

	name := segments[0]
	action := ""
	if len(segments) == 2 {
		action = segments[1]
	} else if len(segments) > 2 {
		http.NotFound(w, r)
		return
	}

	switch action {
	case "":
		if !allowMethod(w, r, http.MethodGet, http.MethodHead) {
			return
		}
		h.serveRender(w, r, form, name)
	case "toggle":
		if !allowMethod(w, r, http.MethodPost) {
			return
		}
		h.serveToggle(w, r, form, name)
	case "search":
		if !allowMethod(w, r, http.MethodGet, http.MethodPost) {
			return
		}
		h.serveSearch(w, r, form, name)
	case "options":
		if !allowMethod(w, r, http.MethodGet, http.MethodHead) {
			return
		}
		h.serveOptions(w, r, form, name)
	default:
		http.NotFound(w, r)
	}
}

func (h *handler) resolveForm(r *http.Request) (*host.Form, error) {
	if h.opts.Forms == nil {
		return nil, ErrMissingForm
	}
	form, err := h.opts.Forms(r)
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, ErrMissingForm
	}
	return form, nil
}

func (h *handler) serveRender(w http.ResponseWriter, r *http.Request, form *host.Form, name string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	engine, ok := form.Widget(name)
	if !ok {
		http.NotFound(w, r)
		return
	}
	h.render(w, r, form, engine)
}

func (h *handler) serveToggle(w http.ResponseWriter, r *http.Request, form *host.Form, name string) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if !r.Form.Has(h.opts.ValueParam) {
		http.Error(w, fmt.Sprintf("missing %q parameter", h.opts.ValueParam), http.StatusBadRequest)
		return
	}
	value := r.Form.Get(h.opts.ValueParam)

	h.mu.Lock()
	defer h.mu.Unlock()

	engine, ok := form.Widget(name)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := engine.Toggle(value); err != nil {
		h.writeError(w, err)
		return
	}
	h.render(w, r, form, engine)
}

func (h *handler) serveSearch(w http.ResponseWriter, r *http.Request, form *host.Form, name string) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	query := r.Form.Get(h.opts.SearchParam)

	h.mu.Lock()
	defer h.mu.Unlock()

	engine, ok := form.Widget(name)
	if !ok {
		http.NotFound(w, r)
		return
	}
	engine.SetSearchText(query)
	h.render(w, r, form, engine)
}

func (h *handler) serveOptions(w http.ResponseWriter, r *http.Request, form *host.Form, name string) {
	query := strings.TrimSpace(r.URL.Query().Get(h.opts.SearchParam))
	limit := clampLimit(parseInt(r.URL.Query().Get(h.opts.LimitParam)), h.opts)

	h.mu.Lock()
	engine, ok := form.Widget(name)
	if !ok {
		h.mu.Unlock()
		http.NotFound(w, r)
		return
	}
	results := SearchOptions(engine, query, limit)
	h.mu.Unlock()

	writeJSON(w, r, http.StatusOK, optionsResponse{Data: results})
}

func (h *handler) serveErrors(w http.ResponseWriter, r *http.Request, form *host.Form) {
	var payload map[string][]string
	body := http.MaxBytesReader(w, r.Body, maxErrorPayload)
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "error payload too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "invalid error payload", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	formErrors, err := form.MapErrors(payload)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if formErrors == nil {
		formErrors = []string{}
	}
	h.formErrors[form] = formErrors

	writeJSON(w, r, http.StatusOK, errorsResponse{
		Errors:     form.Errors(),
		FormErrors: formErrors,
	})
}

// render must be called with h.mu held.
func (h *handler) render(w http.ResponseWriter, r *http.Request, form *host.Form, engine *liveselect.Engine) {
	if err := form.Rendering(); err != nil {
		h.writeError(w, err)
		return
	}

	renderOpts := h.opts.RenderOptions
	renderOpts.FormErrors = render.MergeFormErrors(renderOpts.FormErrors, h.formErrors[form]...)
	base := renderOpts.Endpoint
	if base == "" {
		base = h.mount
	}
	renderOpts.Endpoint = strings.TrimRight(base, "/") + "/" + url.PathEscape(engine.Config().Model)

	out, err := h.opts.Renderer.Render(r.Context(), engine.View(), renderOpts)
	if err != nil {
		h.opts.Logger.Error("liveselect: render widget", "model", engine.Config().Model, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", h.opts.Renderer.ContentType())
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(out)
}

func (h *handler) writeError(w http.ResponseWriter, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		h.opts.Logger.Error("liveselect: request failed", "error", err)
		http.Error(w, http.StatusText(code), code)
		return
	}
	http.Error(w, err.Error(), code)
}

func statusFor(err error) int {
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		return httpErr.StatusCode()
	}
	var miss *liveselect.LookupMissError
	if errors.As(err, &miss) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}

func writeJSON(w http.ResponseWriter, r *http.Request, code int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if r.Method == http.MethodHead {
		return
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(payload)
}

func allowMethod(w http.ResponseWriter, r *http.Request, methods ...string) bool {
	for _, method := range methods {
		if r.Method == method {
			return true
		}
	}
	w.Header().Set("Allow", strings.Join(methods, ", "))
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	return false
}

// splitPath splits an escaped path and unescapes each segment, so a model
// containing "/" travels as a single %2F escaped segment.
func splitPath(escaped string) ([]string, bool) {
	escaped = strings.Trim(escaped, "/")
	if escaped == "" {
		return nil, true
	}
	segments := strings.Split(escaped, "/")
	for i, segment := range segments {
		unescaped, err := url.PathUnescape(segment)
		if err != nil {
			return nil, false
		}
		segments[i] = unescaped
	}
	return segments, true
}

func parseInt(raw string) int {
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}
