package httpvalidator

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/erraggy/oasschema/oaserrors"
)

// DefaultMaxBodySize is the largest request or response body the
// middleware reads (10 MiB).
const DefaultMaxBodySize int64 = 10 << 20

// ErrBodyTooLarge is reported when a body exceeds the configured limit.
var ErrBodyTooLarge = errors.New("body exceeds maximum size")

// RouteFunc returns the route template for a request, in {name} form and
// including any basePath. An empty result falls back to the next strategy.
type RouteFunc func(r *http.Request) string

// ErrorHandler writes the response for a failed validation.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// MiddlewareOption configures Middleware.
type MiddlewareOption func(*middlewareConfig)

type middlewareConfig struct {
	route            RouteFunc
	onError          ErrorHandler
	maxBodySize      int64
	validateResponse bool
}

// WithRouteFunc sets how the route template is found for a request.
// By default the ServeMux pattern is used when set and is not a subtree
// pattern such as "/" or "GET /api/"; otherwise the request path is matched
// against the document's paths.
func WithRouteFunc(fn RouteFunc) MiddlewareOption {
	return func(c *middlewareConfig) { c.route = fn }
}

// WithErrorHandler replaces DefaultErrorHandler.
func WithErrorHandler(h ErrorHandler) MiddlewareOption {
	return func(c *middlewareConfig) {
		if h != nil {
			c.onError = h
		}
	}
}

// WithMaxBodySize limits how many body bytes are read. Values <= 0 select
// DefaultMaxBodySize.
func WithMaxBodySize(n int64) MiddlewareOption {
	return func(c *middlewareConfig) {
		if n <= 0 {
			n = DefaultMaxBodySize
		}
		c.maxBodySize = n
	}
}

// WithResponseValidation buffers each response and validates it before it
// is written. Failing responses are replaced by the error handler's output.
//
// Every validated response needs a schema: a status declared without one
// (for example "204": {"description": "deleted"}) and a status with no
// matching entry or default are reported as a ResponseValidationError
// wrapping a SchemaNotFoundError, which DefaultErrorHandler answers with 500.
// Responses larger than the body limit are reported the same way.
func WithResponseValidation(enabled bool) MiddlewareOption {
	return func(c *middlewareConfig) { c.validateResponse = enabled }
}

// Middleware returns net/http middleware that validates each request before
// calling the next handler.
//
//	mux := http.NewServeMux()
//	mux.Handle("PUT /books/{isbn}", v.Middleware()(putBook))
func (v *Validator) Middleware(opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := &middlewareConfig{
		onError:     DefaultErrorHandler,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	matcher := NewRouteMatcher(v.doc)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := cfg.routeFor(r, matcher)

			raw, err := readBody(r, cfg.maxBodySize)
			if err != nil {
				cfg.onError(w, r, err)
				return
			}
			body := decodeBody(r.Header.Get("Content-Type"), raw)

			if err := v.ValidateRequest(route, r.Method, body, r.URL.RawQuery); err != nil {
				cfg.onError(w, r, err)
				return
			}

			if !cfg.validateResponse {
				next.ServeHTTP(w, r)
				return
			}

			rec := newRecorder()
			defer rec.release()
			next.ServeHTTP(rec, r)

			if int64(rec.body.Len()) > cfg.maxBodySize {
				cfg.onError(w, r, &oaserrors.ResponseValidationError{StatusCode: rec.status, Cause: ErrBodyTooLarge})
				return
			}
			respBody := decodeBody(rec.header.Get("Content-Type"), rec.body.Bytes())
			if err := v.ValidateResponse(route, r.Method, rec.status, respBody); err != nil {
				cfg.onError(w, r, err)
				return
			}
			rec.flush(w)
		})
	}
}

func (c *middlewareConfig) routeFor(r *http.Request, matcher *RouteMatcher) string {
	if c.route != nil {
		if route := c.route(r); route != "" {
			return route
		}
	}
	if r.Pattern != "" && !isSubtreePattern(r.Pattern) {
		return PatternTemplate(r.Pattern)
	}
	if tmpl, _, ok := matcher.Match(r.URL.Path); ok {
		return tmpl
	}
	return r.URL.Path
}

// isSubtreePattern reports whether a ServeMux pattern matches a whole
// subtree ("/", "GET /api/"). Such patterns say nothing about the declared
// template, so the request path is matched instead.
func isSubtreePattern(pattern string) bool {
	return strings.HasSuffix(pattern, "/") && !strings.Contains(pattern, "{$}")
}

// readBody reads at most limit bytes of the request body and replaces
// r.Body so the next handler can read it again.
func readBody(r *http.Request, limit int64) ([]byte, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}
	buf := getBuffer()
	defer putBuffer(buf)

	_, err := buf.ReadFrom(io.LimitReader(r.Body, limit+1))
	_ = r.Body.Close()
	if err != nil {
		return nil, err
	}
	if int64(buf.Len()) > limit {
		return nil, ErrBodyTooLarge
	}

	data := bytes.Clone(buf.Bytes())
	r.Body = io.NopCloser(bytes.NewReader(data))
	return data, nil
}

// decodeBody treats anything that is not a JSON media type, and any
// unparseable JSON, as NoBody.
func decodeBody(contentType string, data []byte) Body {
	if !isJSONMediaType(contentType) {
		return NoBody
	}
	body, err := ParseJSONBody(data)
	if err != nil {
		return NoBody
	}
	return body
}

func isJSONMediaType(contentType string) bool {
	if contentType == "" {
		return false
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}

// StatusCode maps a validation error to an HTTP status: response validation
// failures are server errors, request failures are client errors.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, oaserrors.ErrResponseValidation):
		return http.StatusInternalServerError
	case errors.Is(err, ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, oaserrors.ErrSchemaNotFound), errors.Is(err, oaserrors.ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ErrorBody is the JSON document written by DefaultErrorHandler.
type ErrorBody struct {
	Message string        `json:"message"`
	Details []ErrorDetail `json:"details,omitempty"`
}

// ErrorDetail is one schema violation in an ErrorBody.
type ErrorDetail struct {
	Path    string `json:"path"`
	Keyword string `json:"keyword,omitempty"`
	Message string `json:"message"`
}

// DefaultErrorHandler writes err as JSON with the status from StatusCode.
// Response validation failures do not expose their details to the client.
func DefaultErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	status := StatusCode(err)
	out := ErrorBody{Message: err.Error()}

	var ve *oaserrors.ValidationError
	if errors.As(err, &ve) {
		for _, d := range ve.Details {
			path := d.InstancePath
			if path == "" {
				path = "/"
			}
			out.Details = append(out.Details, ErrorDetail{Path: path, Keyword: d.KeywordPath, Message: d.Message})
		}
	}
	if errors.Is(err, oaserrors.ErrResponseValidation) {
		out = ErrorBody{Message: http.StatusText(status)}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(out)
}

// recorder buffers a response so it can be validated before being sent.
type recorder struct {
	header      http.Header
	body        *bytes.Buffer
	status      int
	wroteHeader bool
}

func newRecorder() *recorder {
	return &recorder{header: make(http.Header), body: getBuffer(), status: http.StatusOK}
}

func (rec *recorder) Header() http.Header { return rec.header }

func (rec *recorder) WriteHeader(code int) {
	if rec.wroteHeader {
		return
	}
	rec.status = code
	rec.wroteHeader = true
}

func (rec *recorder) Write(p []byte) (int, error) {
	rec.wroteHeader = true
	return rec.body.Write(p)
}

func (rec *recorder) flush(w http.ResponseWriter) {
	dst := w.Header()
	for k, vs := range rec.header {
		dst[k] = vs
	}
	w.WriteHeader(rec.status)
	_, _ = w.Write(rec.body.Bytes())
}

func (rec *recorder) release() {
	putBuffer(rec.body)
	rec.body = nil
}
