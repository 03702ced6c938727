// Package proxy forwards requests on a split subdomain to the split's
// backing address.
package proxy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"time"

	"github.com/iconidentify/splitdash/internal/domain"
)

// DefaultTimeout bounds connecting to a split and waiting for its headers.
const DefaultTimeout = 10 * time.Second

// Resolver looks a split up by name.
type Resolver interface {
	GetByName(ctx context.Context, name string) (*domain.Split, error)
}

// Proxy is the subdomain reverse proxy.
type Proxy struct {
	resolver   Resolver
	baseDomain string
	transport  http.RoundTripper
	logger     *slog.Logger
}

// New creates a proxy for subdomains of baseDomain.
func New(resolver Resolver, baseDomain string, timeout time.Duration, logger *slog.Logger) *Proxy {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	dialer := &net.Dialer{Timeout: timeout}
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ResponseHeaderTimeout: timeout,
		TLSHandshakeTimeout:   timeout,
		IdleConnTimeout:       90 * time.Second,
		MaxIdleConnsPerHost:   4,
	}
	return &Proxy{
		resolver:   resolver,
		baseDomain: strings.ToLower(baseDomain),
		transport:  transport,
		logger:     logger,
	}
}

// WithTransport replaces the upstream transport.
func (p *Proxy) WithTransport(rt http.RoundTripper) *Proxy {
	p.transport = rt
	return p
}

// SplitName extracts the split name from a host of the form
// {name}.{baseDomain}. Ports are ignored and only a single label matches.
func (p *Proxy) SplitName(host string) (string, bool) {
	return SplitName(host, p.baseDomain)
}

// SplitName extracts the split name from host under baseDomain.
func SplitName(host, baseDomain string) (string, bool) {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	suffix := "." + strings.ToLower(baseDomain)
	if baseDomain == "" || !strings.HasSuffix(host, suffix) {
		return "", false
	}
	name := strings.TrimSuffix(host, suffix)
	if name == "" || strings.Contains(name, ".") {
		return "", false
	}
	return name, true
}

// Target resolves the upstream URL for a request path on base.
func Target(base string, path string, rawQuery string) (*url.URL, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, err
	}
	if baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidURL, base)
	}
	ref := &url.URL{Path: strings.TrimPrefix(path, "/"), RawQuery: rawQuery}
	return baseURL.ResolveReference(ref), nil
}

// ServeSplit proxies r to the split called name.
func (p *Proxy) ServeSplit(w http.ResponseWriter, r *http.Request, name string) {
	switch r.Method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
	default:
		w.Header().Set("Allow", "GET, POST, PUT, DELETE")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	split, err := p.resolver.GetByName(r.Context(), name)
	if err != nil {
		if errors.Is(err, domain.ErrSplitNotFound) {
			http.Error(w, fmt.Sprintf("Sous-domaine '%s' non trouvé.", name), http.StatusNotFound)
			return
		}
		p.logger.Error("failed to resolve split", "name", name, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	target, err := Target(split.URL, r.URL.Path, r.URL.RawQuery)
	if err != nil {
		p.logger.Warn("invalid split url", "name", name, "url", split.URL, "error", err)
		http.Error(w, fmt.Sprintf("Erreur du proxy pour %s: %v", split.URL, err), http.StatusBadGateway)
		return
	}

	rp := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.Out.URL = target
			pr.Out.Host = target.Host
		},
		Transport: p.transport,
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			p.logger.Warn("proxy upstream failed",
				"name", name,
				"target", target.String(),
				"error", err,
			)
			http.Error(w, fmt.Sprintf("Erreur du proxy pour %s: %v", target, err), http.StatusBadGateway)
		},
	}
	rp.ServeHTTP(w, r)
}
