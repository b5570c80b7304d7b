// Package httptrace traces HTTP servers and clients with ctrace, carrying
// span contexts in request headers through the http_headers format.
package httptrace

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zoobzio/ctrace"
)

// Tag keys set on server and client spans.
const (
	TagMethod     = "http.method"
	TagURL        = "http.url"
	TagRoute      = "http.route"
	TagStatusCode = "http.status_code"
	TagError      = "error"
)

// Middleware starts a server span per request. The span continues any trace
// found in the request headers, is stored in the request context for
// handlers, and is finished once the handler returns. Under a chi router the
// span is renamed to the matched route pattern.
func Middleware(tracer *ctrace.Tracer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var opts []ctrace.StartOption
			if parent, ok := tracer.Extract(ctrace.FormatHTTPHeaders, ctrace.HeaderCarrier(r.Header)); ok {
				opts = append(opts, ctrace.ChildOf(parent))
			}
			opts = append(opts, ctrace.WithTags(ctrace.Fields{
				TagMethod: r.Method,
				TagURL:    r.URL.String(),
			}))

			span := tracer.StartSpan(r.Method+" "+r.URL.Path, opts...)
			defer span.Finish() //nolint:errcheck // span is fresh

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctrace.ContextWithSpan(r.Context(), span)))

			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					span.SetOperationName(r.Method + " " + pattern)
					_ = span.SetTag(TagRoute, pattern)
				}
			}

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			_ = span.SetTag(TagStatusCode, status)
			if status >= http.StatusInternalServerError {
				_ = span.SetTag(TagError, true)
			}
		})
	}
}
