package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/supervape/catalog/internal/apperr"
	"github.com/supervape/catalog/internal/config"
	"github.com/supervape/catalog/internal/http/apierr"
)

// APIKeyHeader carries the shared secret on gated requests.
const APIKeyHeader = "x-api-key"

// APIKey gates requests behind an optional shared secret.
//
// If no key is configured, the gate is a no-op for all requests. If one is
// configured, every request through this middleware must present a matching
// x-api-key header; mismatch or absence yields 401 without reaching the route.
func APIKey(cfg config.Auth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.APIKey == "" {
				next.ServeHTTP(w, r)
				return
			}

			presented := r.Header.Get(APIKeyHeader)
			if subtle.ConstantTimeCompare([]byte(presented), []byte(cfg.APIKey)) != 1 {
				res := apierr.New(apperr.UnauthorizedErr)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(res.StatusCode)
				//nolint:errcheck
				json.NewEncoder(w).Encode(res)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
