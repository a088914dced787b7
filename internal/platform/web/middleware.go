package web

import (
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/klauspost/compress/gzip"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// AccessLog emits one log line per request. Server errors log at error
// level, client errors at warn, the rest at debug.
func AccessLog(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rw, r)

			kv := []any{
				"status", rw.status,
				"method", r.Method,
				"path", r.URL.Path,
				"latency", time.Since(start),
				"request_id", chimid.GetReqID(r.Context()),
			}
			switch {
			case rw.status >= 500:
				logger.Error("http request", kv...)
			case rw.status >= 400:
				logger.Warn("http request", kv...)
			default:
				logger.Debug("http request", kv...)
			}
		})
	}
}

var gzipPool sync.Pool

func getGzipWriter(w io.Writer) *gzip.Writer {
	if v := gzipPool.Get(); v != nil {
		gw := v.(*gzip.Writer)
		gw.Reset(w)
		return gw
	}
	gw, _ := gzip.NewWriterLevel(w, gzip.DefaultCompression)
	return gw
}

func releaseGzipWriter(gw *gzip.Writer) {
	_ = gw.Close()
	gzipPool.Put(gw)
}

type gzipResponseWriter struct {
	http.ResponseWriter
	gw       *gzip.Writer
	disabled bool // 204/304 and 1xx carry no body
}

func (cw *gzipResponseWriter) Write(b []byte) (int, error) {
	if cw.disabled {
		return cw.ResponseWriter.Write(b)
	}
	cw.Header().Del("Content-Length")
	if cw.Header().Get("Content-Type") == "" {
		cw.Header().Set("Content-Type", http.DetectContentType(b))
	}
	return cw.gw.Write(b)
}

func (cw *gzipResponseWriter) WriteHeader(code int) {
	cw.Header().Del("Content-Length")
	if (code >= 100 && code < 200) || code == http.StatusNoContent || code == http.StatusNotModified {
		cw.disabled = true
		cw.Header().Del("Content-Encoding")
		cw.Header().Del("Vary")
	}
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *gzipResponseWriter) Flush() {
	if !cw.disabled {
		_ = cw.gw.Flush()
	}
	if f, ok := cw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Compression gzips responses for clients that accept it.
func Compression(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead ||
			w.Header().Get("Content-Encoding") != "" ||
			!strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Add("Vary", "Accept-Encoding")

		gw := getGzipWriter(w)
		cw := &gzipResponseWriter{ResponseWriter: w, gw: gw}
		defer func() {
			// Drop the gzip footer for bodiless responses.
			if cw.disabled {
				gw.Reset(io.Discard)
			}
			releaseGzipWriter(gw)
		}()

		next.ServeHTTP(cw, r)
	})
}
