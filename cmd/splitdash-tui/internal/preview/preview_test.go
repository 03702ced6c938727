package preview

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const panelHTML = `<!DOCTYPE html>
<html><head><title>  Router
 Admin </title><style>body{color:red}</style></head>
<body>
<h1>Status</h1>
<script>var secret = 1;</script>
<p>WAN   connected</p>
<h2>Clients</h2>
<a href="/dhcp">DHCP</a> <a href="/wifi">Wi-Fi</a>
</body></html>`

func TestParse(t *testing.T) {
	p, err := Parse(strings.NewReader(panelHTML))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if p.Title != "Router Admin" {
		t.Errorf("Title = %q", p.Title)
	}
	if len(p.Headings) != 2 || p.Headings[0] != "Status" || p.Headings[1] != "Clients" {
		t.Errorf("Headings = %v", p.Headings)
	}
	if p.Links != 2 {
		t.Errorf("Links = %d", p.Links)
	}
	if strings.Contains(p.Text, "secret") || strings.Contains(p.Text, "color") {
		t.Errorf("Text includes script or style: %q", p.Text)
	}
	if !strings.Contains(p.Text, "WAN connected") {
		t.Errorf("Text = %q", p.Text)
	}
}

func TestParse_Truncates(t *testing.T) {
	long := "<body>" + strings.Repeat("é", MaxTextLen+50) + "</body>"
	p, err := Parse(strings.NewReader(long))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := len([]rune(p.Text)); got != MaxTextLen+1 {
		t.Errorf("text length = %d runes, want %d", got, MaxTextLen+1)
	}
}

func TestFetcher_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			w.Write([]byte(panelHTML))
			return
		}
		http.Redirect(w, r, "/", http.StatusFound)
	}))
	defer srv.Close()

	f := NewFetcher(srv.Client())

	p, err := f.Fetch(context.Background(), srv.URL+"/")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if p.Status != http.StatusOK || p.Title != "Router Admin" || p.URL != srv.URL+"/" {
		t.Errorf("preview = %+v", p)
	}

	p, err = f.Fetch(context.Background(), srv.URL+"/old")
	if err != nil {
		t.Fatalf("Fetch() redirect error = %v", err)
	}
	if p.Status != http.StatusFound {
		t.Errorf("Status = %d, want 302 (redirect not followed)", p.Status)
	}
}

func TestFetcher_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	if _, err := NewFetcher(nil).Fetch(context.Background(), url); err == nil {
		t.Error("Fetch() to a closed server succeeded")
	}
}
