package app

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/bft-labs/crmapp/pkg/log"
)

const (
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeText = "text/plain; charset=utf-8"
)

// NewHandler returns the handler serving page at "/" and "/index.html"
// and a liveness probe at "/healthz". Anything else is a 404, or a 405
// when only the method is wrong.
func NewHandler(page []byte, logger log.Logger) http.Handler {
	if logger == nil {
		logger = log.NewNoopLogger()
	}

	ph := newPageHandler(page)

	mux := http.NewServeMux()
	mux.Handle("GET /{$}", ph)
	mux.Handle("GET /index.html", ph)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentTypeText)
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write([]byte("ok"))
	})

	return accessLog(mux, logger)
}

// pageHandler serves a fixed document with a content-derived ETag.
type pageHandler struct {
	page []byte
	etag string
}

func newPageHandler(page []byte) *pageHandler {
	sum := sha256.Sum256(page)
	return &pageHandler{
		page: page,
		etag: `"` + hex.EncodeToString(sum[:16]) + `"`,
	}
}

func (p *pageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", contentTypeHTML)
	w.Header().Set("ETag", p.etag)
	w.Header().Set("Cache-Control", "no-cache")
	// Zero modtime: validation goes through the ETag only.
	http.ServeContent(w, r, "index.html", time.Time{}, bytes.NewReader(p.page))
}

// statusRecorder captures the status code and body size for access logs.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int64
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.status == 0 {
		s.status = code
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	n, err := s.ResponseWriter.Write(b)
	s.bytes += int64(n)
	return n, err
}

func accessLog(next http.Handler, logger log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}

		next.ServeHTTP(rec, r)

		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}
		logger.Debug("request",
			log.String("method", r.Method),
			log.String("path", r.URL.Path),
			log.Int("status", status),
			log.Int64("bytes", rec.bytes),
			log.Duration("duration", time.Since(start)),
			log.String("remote", r.RemoteAddr),
		)
	})
}
