package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// Cors permits all origins, methods and headers. Credentials stay disabled;
// the API never uses cookie-based auth.
func Cors() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	})
}
