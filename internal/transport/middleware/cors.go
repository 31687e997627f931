package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/heartmarshall/syllabl-backend/internal/config"
)

// exposedHeaders are response headers the game client reads: the request ID
// for bug reports and Retry-After on 429.
var exposedHeaders = strings.Join([]string{requestIDHeader, "Retry-After"}, ", ")

// CORS returns middleware that handles Cross-Origin Resource Sharing.
//
// The game is served from a static site on another origin. Preflights
// (OPTIONS carrying Access-Control-Request-Method) are answered here with
// 204 and never reach the handlers; a preflight from an origin outside the
// allow list gets 204 without any Allow headers, so the browser blocks it.
// A plain OPTIONS falls through to the router.
func CORS(cfg config.CORSConfig) Middleware {
	origins := cfg.Origins()
	maxAge := strconv.Itoa(cfg.MaxAge)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Add("Vary", "Origin")

			origin := r.Header.Get("Origin")
			allowed := origin != "" && isAllowedOrigin(origin, origins)
			if allowed {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Expose-Headers", exposedHeaders)
				if cfg.AllowCredentials {
					h.Set("Access-Control-Allow-Credentials", "true")
				}
			}

			if r.Method != http.MethodOptions || r.Header.Get("Access-Control-Request-Method") == "" {
				next.ServeHTTP(w, r)
				return
			}

			if allowed {
				h.Set("Access-Control-Allow-Methods", cfg.AllowedMethods)
				h.Set("Access-Control-Allow-Headers", cfg.AllowedHeaders)
				h.Set("Access-Control-Max-Age", maxAge)
			}
			w.WriteHeader(http.StatusNoContent)
		})
	}
}

func isAllowedOrigin(origin string, allowed []string) bool {
	for _, a := range allowed {
		if a == "*" || a == origin {
			return true
		}
	}
	return false
}
