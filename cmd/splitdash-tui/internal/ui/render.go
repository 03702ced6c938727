package ui

import (
	"fmt"

	"github.com/rivo/tview"

	"github.com/iconidentify/splitdash/internal/dashboard"
)

const redirectNotice = "Split inconnu, retour à l'accueil."

// render replaces the screen content with page. Must run on the UI goroutine.
func (a *App) render(page dashboard.Page) {
	inContent := a.app.GetFocus() != a.sidebar
	a.page = page

	a.header.SetText(fmt.Sprintf("[::b]splitdash[::-] - [yellow]%s[white] | %s",
		tview.Escape(page.Title), tview.Escape(page.Path)))
	a.renderSidebar(page.Sidebar)

	switch page.View {
	case dashboard.ViewSplit:
		a.renderSplit(page.Split)
		a.content.SwitchToPage(viewSplit)
	case dashboard.ViewManagement:
		a.manage.render(page.Management)
		a.content.SwitchToPage(viewManage)
		if inContent {
			a.app.SetFocus(a.manage.form)
		}
	default:
		a.renderHome(page.Home)
		a.content.SwitchToPage(viewHome)
	}

	if page.View == dashboard.ViewManagement && page.Management.Confirm != nil {
		a.showConfirm(page.Management.Confirm)
	} else {
		a.root.RemovePage(pageConfirm)
	}

	if page.Redirected {
		a.setStatus("[yellow]" + redirectNotice)
	}
	a.applyPalette(paletteFor(page.Theme))
}

func (a *App) renderSidebar(sb dashboard.Sidebar) {
	a.sidebar.Clear()

	if sb.Error != "" {
		a.sidebar.AddItem("[red]"+tview.Escape(sb.Error), "", 0, nil)
	}
	current := -1
	for _, item := range sb.Items {
		path := item.Path
		text := tview.Escape(item.Label)
		if item.Active {
			text = "[::b]▸ " + text
			current = a.sidebar.GetItemCount()
		}
		a.sidebar.AddItem(text, path, 0, func() {
			a.navigate(path)
		})
	}

	manage := tview.Escape(sb.ManageText)
	if sb.ManageActive {
		manage = "[::b]▸ " + manage
		current = a.sidebar.GetItemCount()
	}
	a.sidebar.AddItem(manage, sb.ManagePath, 0, func() {
		a.navigate(dashboard.PathManage)
	})

	if current >= 0 {
		a.sidebar.SetCurrentItem(current)
	}
}

func (a *App) renderHome(v *dashboard.HomeView) {
	if v.Failed {
		a.homeView.SetText(fmt.Sprintf("\n\n[red::b]%s", tview.Escape(v.Heading)))
		return
	}
	a.homeView.SetText(fmt.Sprintf("\n\n[::b]%s[::-]\n\n%s",
		tview.Escape(v.Heading), tview.Escape(v.Hint)))
}

// sidebarTexts returns the main text of every sidebar entry.
func (a *App) sidebarTexts() []string {
	texts := make([]string, 0, a.sidebar.GetItemCount())
	for i := 0; i < a.sidebar.GetItemCount(); i++ {
		main, _ := a.sidebar.GetItemText(i)
		texts = append(texts, main)
	}
	return texts
}
