package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
)

// quietPaths are polled by load balancers and Prometheus. Successful hits
// are logged at DEBUG.
var quietPaths = map[string]bool{"/healthz": true, "/metrics": true}

func requestLevel(path string, status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	case quietPaths[path]:
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// clientIP is the first X-Forwarded-For hop, else the remote address
// without its port.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
