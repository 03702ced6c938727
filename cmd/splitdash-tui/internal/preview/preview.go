// Package preview fetches a text summary of a split panel for terminals
// that cannot embed it.
package preview

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// MaxTextLen caps the body excerpt, in runes.
const MaxTextLen = 600

// maxBodyBytes bounds how much of a panel page is read.
const maxBodyBytes = 2 << 20

// Preview is the readable summary of a panel page.
type Preview struct {
	URL      string
	Status   int
	Title    string
	Headings []string
	Links    int
	Text     string
}

// Fetcher downloads and summarises panel pages.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a fetcher. Redirects are not followed so the summary
// reflects the panel itself.
func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = &http.Client{}
	}
	c := *client
	c.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return &Fetcher{client: &c}
}

// Fetch downloads url and summarises it.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Preview, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	p, err := Parse(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}
	p.URL = url
	p.Status = resp.StatusCode
	return p, nil
}

// Parse summarises an HTML document.
func Parse(r io.Reader) (*Preview, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	doc.Find("script, style, noscript, template").Remove()

	p := &Preview{
		Title: collapse(doc.Find("title").First().Text()),
		Links: doc.Find("a[href]").Length(),
	}
	doc.Find("h1, h2, h3").Each(func(_ int, s *goquery.Selection) {
		if text := collapse(s.Text()); text != "" {
			p.Headings = append(p.Headings, text)
		}
	})
	p.Text = truncate(collapse(doc.Find("body").Text()), MaxTextLen)
	return p, nil
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "…"
}
