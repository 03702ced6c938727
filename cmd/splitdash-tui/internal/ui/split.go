package ui

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/rivo/tview"

	"github.com/iconidentify/splitdash/cmd/splitdash-tui/internal/preview"
	"github.com/iconidentify/splitdash/internal/dashboard"
)

const (
	previewLoading = "Chargement de l'aperçu…"
	previewFailed  = "Aperçu indisponible : "
)

// renderSplit shows a split as an inline preview or, on narrow terminals,
// as a card with a link. A new frame is built on every entry.
func (a *App) renderSplit(v *dashboard.SplitView) {
	if v.Variant == dashboard.VariantCard {
		a.frameView = nil
		a.frameSeq = 0
		a.splitView = a.newCard(v)
		a.content.AddPage(viewSplit, a.splitView, true, false)
		return
	}

	if a.frameView != nil && a.frameSeq == v.FrameSeq {
		return
	}
	a.frameSeq = v.FrameSeq
	a.frameView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(true)
	a.frameView.SetBorder(true).SetTitle(fmt.Sprintf(" %s ", tview.Escape(v.FrameTitle)))
	a.frameView.SetText(frameHeader(v) + "\n[gray]" + previewLoading)
	a.splitView = a.frameView
	a.content.AddPage(viewSplit, a.splitView, true, false)

	go a.loadPreview(v)
}

func (a *App) newCard(v *dashboard.SplitView) tview.Primitive {
	info := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter).
		SetText("\n" + frameHeader(v))

	url := v.URL
	button := tview.NewButton(v.LinkText).SetSelectedFunc(func() {
		a.openPanel(url)
	})

	card := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(info, 0, 1, false).
		AddItem(button, 1, 0, true)
	card.SetBorder(true).SetTitle(fmt.Sprintf(" %s ", tview.Escape(v.Label)))
	return card
}

func frameHeader(v *dashboard.SplitView) string {
	return fmt.Sprintf("[::b]%s[::-]\n[blue]%s[-]\n", tview.Escape(v.Label), tview.Escape(v.URL))
}

// loadPreview fetches the panel and fills the frame it was started for.
func (a *App) loadPreview(v *dashboard.SplitView) {
	ctx, cancel := context.WithTimeout(a.ctx, a.cfg.Timeout)
	defer cancel()

	p, err := a.fetcher.Fetch(ctx, v.URL)
	if err != nil {
		a.logger.Warn("preview failed", "split", v.Name, "url", v.URL, "error", err)
	}

	seq := v.FrameSeq
	a.app.QueueUpdateDraw(func() {
		if a.frameSeq != seq || a.frameView == nil {
			return
		}
		a.frameView.SetText(frameHeader(v) + "\n" + formatPreview(p, err))
		a.frameView.ScrollToBeginning()
	})
}

func formatPreview(p *preview.Preview, err error) string {
	if err != nil {
		return "[red]" + previewFailed + tview.Escape(err.Error())
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[gray]HTTP %d[-]\n", p.Status)
	if p.Title != "" {
		fmt.Fprintf(&b, "\n[yellow::b]%s[-::-]\n", tview.Escape(p.Title))
	}
	for _, h := range p.Headings {
		fmt.Fprintf(&b, "  • %s\n", tview.Escape(h))
	}
	if p.Text != "" {
		fmt.Fprintf(&b, "\n%s\n", tview.Escape(p.Text))
	}
	if p.Links > 0 {
		fmt.Fprintf(&b, "\n[gray]%d liens[-]", p.Links)
	}
	return b.String()
}

// openPanel opens url in the desktop browser.
func (a *App) openPanel(url string) {
	name, args := openCommand(runtime.GOOS, url)
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		a.logger.Warn("failed to open browser", "url", url, "error", err)
		a.setStatus(fmt.Sprintf("[red]%s", tview.Escape(err.Error())))
		return
	}
	go cmd.Wait()
	a.setStatus(tview.Escape(url))
}

func openCommand(goos, url string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	default:
		return "xdg-open", []string{url}
	}
}
