package route

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"evboard/src-server/page"
)

type PageCtxKeyType string

const PageCtxKey PageCtxKeyType = "page"

// PageMiddleware resolves {pageID}. An unknown or evicted page sends the
// browser back to / where a fresh page is created.
func PageMiddleware(registry *page.Registry, next func(http.ResponseWriter, *http.Request)) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := registry.Get(r.PathValue("pageID"))
		if !ok {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		ctx := context.WithValue(r.Context(), PageCtxKey, p)
		next(w, r.WithContext(ctx))
	}
}

func pageFromContext(r *http.Request) (*page.EventPage, bool) {
	p, ok := r.Context().Value(PageCtxKey).(*page.EventPage)
	return p, ok
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

func LogRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		slog.Debug("http",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
