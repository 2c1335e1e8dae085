package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"daysquare/internal/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/sirupsen/logrus"
)

// requestLogFormatter logs one line when a request arrives and one when it
// completes, both tagged with the request id set by chimw.RequestID
type requestLogFormatter struct {
	log logrus.FieldLogger
}

func (f *requestLogFormatter) NewLogEntry(r *http.Request) chimw.LogEntry {
	log := logger.WithReqIDFromCtx(r.Context(), f.log).WithFields(logrus.Fields{
		"method":      r.Method,
		"path":        r.URL.Path,
		"remote_addr": r.RemoteAddr,
	})
	log.Info("Started request")
	return &requestLogEntry{log: log}
}

type requestLogEntry struct {
	log logrus.FieldLogger
}

func (e *requestLogEntry) Write(status, bytes int, header http.Header, elapsed time.Duration, extra interface{}) {
	entry := e.log.WithFields(logrus.Fields{
		"status":  status,
		"bytes":   bytes,
		"latency": elapsed.String(),
	})
	if status >= http.StatusInternalServerError {
		entry.Error("Finished request")
		return
	}
	entry.Info("Finished request")
}

func (e *requestLogEntry) Panic(v interface{}, stack []byte) {
	e.log.WithField("panic", v).Error(string(stack))
}

// RequestLogger traces every request through log
func RequestLogger(log logrus.FieldLogger) func(http.Handler) http.Handler {
	return chimw.RequestLogger(&requestLogFormatter{log: log})
}

// IPRateLimiter limits requests per client IP and answers 429 with a JSON body
func IPRateLimiter(requests int, window time.Duration) func(http.Handler) http.Handler {
	return httprate.Limit(
		requests,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
			writeError(w, http.StatusTooManyRequests, "TooManyRequests", "rate limit exceeded, please try again later")
		}),
	)
}

type errorResponse struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Reason  string            `json:"reason"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func writeError(w http.ResponseWriter, code int, reason, message string) {
	writeJSON(w, code, errorResponse{Code: code, Message: message, Reason: reason})
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
