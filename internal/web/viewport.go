package web

import (
	"net/http"
	"strconv"
	"strings"
)

// AcceptCH asks browsers to send their viewport width on later requests.
const AcceptCH = "Sec-CH-Viewport-Width, Viewport-Width"

// Widths assumed when the browser sends no viewport hint.
const (
	MobileWidth  = 390
	DesktopWidth = 1280
)

// ViewportWidth returns the viewport width of the client of r. It reads the
// viewport client hints and falls back to user agent detection.
func ViewportWidth(r *http.Request) int {
	for _, h := range []string{"Sec-CH-Viewport-Width", "Viewport-Width"} {
		if v := strings.TrimSpace(r.Header.Get(h)); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				return n
			}
		}
	}
	if isMobile(r.UserAgent()) {
		return MobileWidth
	}
	return DesktopWidth
}

func isMobile(userAgent string) bool {
	ua := strings.ToLower(userAgent)
	return strings.Contains(ua, "mobile") ||
		strings.Contains(ua, "android") ||
		strings.Contains(ua, "iphone") ||
		strings.Contains(ua, "ipad")
}
