package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/iconidentify/splitdash/internal/domain"
)

// palette holds the colours of one theme.
type palette struct {
	background tcell.Color
	foreground tcell.Color
	bar        tcell.Color
	border     tcell.Color
}

// paletteFor maps a theme to colours. The system theme keeps the terminal
// defaults.
func paletteFor(theme domain.Theme) palette {
	switch theme {
	case domain.ThemeLight:
		return palette{
			background: tcell.ColorWhite,
			foreground: tcell.ColorBlack,
			bar:        tcell.ColorLightSteelBlue,
			border:     tcell.ColorSteelBlue,
		}
	case domain.ThemeDark:
		return palette{
			background: tcell.ColorBlack,
			foreground: tcell.ColorWhite,
			bar:        tcell.ColorDarkBlue,
			border:     tcell.ColorGray,
		}
	default:
		return palette{
			background: tcell.ColorDefault,
			foreground: tcell.ColorDefault,
			bar:        tcell.ColorDarkBlue,
			border:     tcell.ColorDefault,
		}
	}
}

func (a *App) applyPalette(p palette) {
	a.header.SetBackgroundColor(p.bar)
	a.footer.SetBackgroundColor(p.bar)
	a.statusBar.SetBackgroundColor(p.bar)

	a.sidebar.SetBackgroundColor(p.background)
	a.sidebar.SetMainTextColor(p.foreground)
	a.sidebar.SetBorderColor(p.border)

	a.homeView.SetBackgroundColor(p.background)
	a.homeView.SetTextColor(p.foreground)
	a.homeView.SetBorderColor(p.border)

	if a.frameView != nil {
		a.frameView.SetBackgroundColor(p.background)
		a.frameView.SetTextColor(p.foreground)
		a.frameView.SetBorderColor(p.border)
	}

	m := a.manage
	m.form.SetBackgroundColor(p.background)
	m.form.SetLabelColor(p.foreground)
	m.form.SetBorderColor(p.border)
	m.list.SetBackgroundColor(p.background)
	m.list.SetMainTextColor(p.foreground)
	m.list.SetBorderColor(p.border)
	m.notice.SetBackgroundColor(p.background)
}
