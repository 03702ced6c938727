package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// KeyChecker reports whether a presented API key is valid.
type KeyChecker func(key string) bool

// PlainKey accepts exactly apiKey.
func PlainKey(apiKey string) KeyChecker {
	return func(key string) bool {
		return subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) == 1
	}
}

// HashedKey accepts keys matching a bcrypt hash.
func HashedKey(hash string) KeyChecker {
	return func(key string) bool {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) == nil
	}
}

// APIKeyAuth creates a middleware that validates API key authentication.
// A nil checker lets every request through.
func APIKeyAuth(check KeyChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if check == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := apiKey(r)
			if key == "" {
				writeUnauthorized(w, "missing API key")
				return
			}
			if !check(key) {
				writeUnauthorized(w, "invalid API key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// apiKey returns the key sent in X-API-Key or as a bearer token.
func apiKey(r *http.Request) string {
	if key := r.Header.Get("X-API-Key"); key != "" {
		return key
	}
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

func writeUnauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"` + msg + `"}`))
}

// CORS lets browser clients on other origins call the API.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-API-Key, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
