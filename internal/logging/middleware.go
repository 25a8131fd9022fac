// ABOUTME: HTTP download logging middleware.
// ABOUTME: Captures method, path, status, duration and bytes served, and stores them in the database.

package logging

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/2389/fixturegen/internal/store"
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
	bytes      int
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.written {
		rw.statusCode = code
		rw.written = true
		rw.ResponseWriter.WriteHeader(code)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.statusCode = http.StatusOK
		rw.written = true
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.bytes += n
	return n, err
}

// Middleware logs every scenario download to the database
func Middleware(s *store.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scenario, ok := ScenarioFromPath(r.URL.Path)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			wrapped := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(wrapped, r)

			duration := time.Since(start).Milliseconds()

			// Get client IP
			ip := r.RemoteAddr
			if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
				ip = strings.TrimSpace(strings.Split(forwarded, ",")[0])
			}

			if err := s.LogDownload(&store.DownloadLog{
				Scenario:   scenario,
				Method:     r.Method,
				Path:       r.URL.Path,
				StatusCode: wrapped.statusCode,
				DurationMs: int(duration),
				Bytes:      wrapped.bytes,
				IPAddress:  ip,
				UserAgent:  r.Header.Get("User-Agent"),
			}); err != nil {
				log.Printf("Failed to log download of %s: %v", r.URL.Path, err)
			}
		})
	}
}

// ScenarioFromPath extracts the scenario name from a download path
// such as /scenarios/valid. Other paths are not downloads.
func ScenarioFromPath(path string) (string, bool) {
	name, ok := strings.CutPrefix(path, "/scenarios/")
	if !ok || name == "" || strings.Contains(name, "/") {
		return "", false
	}
	return strings.TrimSuffix(name, ".xlsx"), true
}
