package proxy

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/iconidentify/splitdash/internal/domain"
)

type mockResolver struct {
	splits map[string]domain.Split
	err    error
}

func (m *mockResolver) GetByName(ctx context.Context, name string) (*domain.Split, error) {
	if m.err != nil {
		return nil, m.err
	}
	sp, ok := m.splits[name]
	if !ok {
		return nil, domain.ErrSplitNotFound
	}
	return &sp, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		host   string
		base   string
		want   string
		wantOK bool
	}{
		{"nas.home.lan", "home.lan", "nas", true},
		{"NAS.Home.Lan:5000", "home.lan", "nas", true},
		{"nas.localhost:5000", "localhost", "nas", true},
		{"home.lan", "home.lan", "", false},
		{"a.b.home.lan", "home.lan", "", false},
		{"nas.other.lan", "home.lan", "", false},
		{"nas.home.lan", "", "", false},
		{"evilhome.lan", "home.lan", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			got, ok := SplitName(tt.host, tt.base)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("SplitName(%q, %q) = %q, %v; want %q, %v", tt.host, tt.base, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestTarget(t *testing.T) {
	tests := []struct {
		base  string
		path  string
		query string
		want  string
	}{
		{"http://192.168.1.190", "/", "", "http://192.168.1.190"},
		{"http://192.168.1.190", "/status", "", "http://192.168.1.190/status"},
		{"http://192.168.1.190/", "/api/v1", "x=1", "http://192.168.1.190/api/v1?x=1"},
		{"http://10.0.0.1/app/", "/page", "", "http://10.0.0.1/app/page"},
	}

	for _, tt := range tests {
		got, err := Target(tt.base, tt.path, tt.query)
		if err != nil {
			t.Fatalf("Target(%q, %q) error = %v", tt.base, tt.path, err)
		}
		if got.String() != tt.want {
			t.Errorf("Target(%q, %q) = %q, want %q", tt.base, tt.path, got, tt.want)
		}
	}

	if _, err := Target("192.168.1.190", "/", ""); err == nil {
		t.Error("Target() accepted a base without scheme")
	}
}

func TestServeSplit_ForwardsRequest(t *testing.T) {
	var gotHost, gotPath, gotMethod, gotBody string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHost = r.Host
		gotPath = r.URL.Path
		gotMethod = r.Method
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Header().Set("X-Upstream", "yes")
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte("panel"))
	}))
	defer upstream.Close()

	resolver := &mockResolver{splits: map[string]domain.Split{
		"nas": {ID: "1", Name: "nas", Label: "NAS", URL: upstream.URL},
	}}
	p := New(resolver, "home.lan", 0, testLogger())

	req := httptest.NewRequest(http.MethodPost, "http://nas.home.lan/settings", strings.NewReader("a=1"))
	rec := httptest.NewRecorder()
	p.ServeSplit(rec, req, "nas")

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if rec.Body.String() != "panel" || rec.Header().Get("X-Upstream") != "yes" {
		t.Errorf("response = %q, headers = %v", rec.Body.String(), rec.Header())
	}
	if gotHost != strings.TrimPrefix(upstream.URL, "http://") {
		t.Errorf("upstream Host = %q", gotHost)
	}
	if gotPath != "/settings" || gotMethod != http.MethodPost || gotBody != "a=1" {
		t.Errorf("upstream got %s %s %q", gotMethod, gotPath, gotBody)
	}
}

func TestServeSplit_DoesNotFollowRedirects(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/login", http.StatusFound)
	}))
	defer upstream.Close()

	resolver := &mockResolver{splits: map[string]domain.Split{"nas": {Name: "nas", URL: upstream.URL}}}
	p := New(resolver, "home.lan", 0, testLogger())

	rec := httptest.NewRecorder()
	p.ServeSplit(rec, httptest.NewRequest(http.MethodGet, "http://nas.home.lan/", nil), "nas")

	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/login" {
		t.Errorf("status = %d, Location = %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestServeSplit_UnknownName(t *testing.T) {
	p := New(&mockResolver{splits: map[string]domain.Split{}}, "home.lan", 0, testLogger())

	rec := httptest.NewRecorder()
	p.ServeSplit(rec, httptest.NewRequest(http.MethodGet, "http://ghost.home.lan/", nil), "ghost")

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Sous-domaine 'ghost' non trouvé.") {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestServeSplit_UpstreamDown(t *testing.T) {
	upstream := httptest.NewServer(http.NotFoundHandler())
	deadURL := upstream.URL
	upstream.Close()

	resolver := &mockResolver{splits: map[string]domain.Split{"nas": {Name: "nas", URL: deadURL}}}
	p := New(resolver, "home.lan", 0, testLogger())

	rec := httptest.NewRecorder()
	p.ServeSplit(rec, httptest.NewRequest(http.MethodGet, "http://nas.home.lan/x", nil), "nas")

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
	if !strings.HasPrefix(rec.Body.String(), "Erreur du proxy pour "+deadURL+"/x: ") {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestServeSplit_MethodNotAllowed(t *testing.T) {
	p := New(&mockResolver{}, "home.lan", 0, testLogger())

	rec := httptest.NewRecorder()
	p.ServeSplit(rec, httptest.NewRequest(http.MethodPatch, "http://nas.home.lan/", nil), "nas")

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}
