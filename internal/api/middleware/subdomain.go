package middleware

import "net/http"

// SubdomainMatcher extracts a split name from a request host.
type SubdomainMatcher func(host string) (string, bool)

// SubdomainHandler serves a request addressed to the split called name.
type SubdomainHandler func(w http.ResponseWriter, r *http.Request, name string)

// Subdomain routes requests whose Host names a split subdomain to serve and
// passes every other request to the next handler. The Host header lives in
// r.Host, so chi's header routing cannot see it.
func Subdomain(match SubdomainMatcher, serve SubdomainHandler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if name, ok := match(r.Host); ok {
				serve(w, r, name)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
