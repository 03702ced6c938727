package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/iconidentify/splitdash/internal/dashboard"
	"github.com/iconidentify/splitdash/internal/domain"
)

// managementPanel is the add/edit form next to the split list.
type managementPanel struct {
	app    *App
	layout *tview.Flex
	notice *tview.TextView
	form   *tview.Form
	list   *tview.List

	view *dashboard.ManagementView
}

func newManagementPanel(a *App) *managementPanel {
	m := &managementPanel{
		app: a,
		notice: tview.NewTextView().
			SetDynamicColors(true),
		form: tview.NewForm(),
		list: tview.NewList(),
	}
	m.form.SetBorder(true)
	m.list.SetBorder(true)
	m.list.SetInputCapture(m.handleListKeys)

	left := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(m.form, 0, 1, true).
		AddItem(m.notice, 2, 0, false)

	m.layout = tview.NewFlex().
		AddItem(left, 0, 1, true).
		AddItem(m.list, 0, 1, false)
	return m
}

// render rebuilds the form and list from v.
func (m *managementPanel) render(v *dashboard.ManagementView) {
	m.view = v

	m.form.Clear(true)
	m.form.SetTitle(fmt.Sprintf(" %s ", tview.Escape(v.Form.Heading)))
	m.form.AddInputField(v.Form.Label.Text, v.Form.Label.Value, 0, nil, nil)
	m.form.AddInputField(v.Form.URL.Text, v.Form.URL.Value, 0, nil, nil)

	id := v.Form.ID
	m.form.AddButton(v.Form.SubmitText, func() {
		label, url := m.values()
		m.app.dispatch(dashboard.Action{Kind: dashboard.ActionSubmit, ID: id, Label: label, URL: url})
	})
	if v.Form.CancelText != "" {
		m.form.AddButton(v.Form.CancelText, func() {
			m.app.dispatch(dashboard.Action{Kind: dashboard.ActionCancel})
		})
	}

	if v.Notice != "" {
		m.notice.SetText("[red]" + tview.Escape(v.Notice))
	} else {
		m.notice.SetText("")
	}

	current := m.list.GetCurrentItem()
	m.list.Clear()
	m.list.SetTitle(fmt.Sprintf(" %s [gray](Entrée: %s, d: %s) ",
		tview.Escape(v.ListHeading), dashboard.ButtonEdit, dashboard.ButtonDelete))
	for _, row := range v.Rows {
		rowID := row.ID
		m.list.AddItem(tview.Escape(row.Label), tview.Escape(row.URL), 0, func() {
			m.app.dispatch(dashboard.Action{Kind: dashboard.ActionEdit, ID: rowID})
		})
	}
	if current >= 0 && current < m.list.GetItemCount() {
		m.list.SetCurrentItem(current)
	}
}

// values returns the label and url typed into the form.
func (m *managementPanel) values() (string, string) {
	var label, url string
	if f, ok := m.form.GetFormItem(0).(*tview.InputField); ok {
		label = f.GetText()
	}
	if f, ok := m.form.GetFormItem(1).(*tview.InputField); ok {
		url = f.GetText()
	}
	return label, url
}

// selectedID returns the id of the highlighted list row.
func (m *managementPanel) selectedID() (domain.SplitID, bool) {
	if m.view == nil {
		return "", false
	}
	i := m.list.GetCurrentItem()
	if i < 0 || i >= len(m.view.Rows) {
		return "", false
	}
	return m.view.Rows[i].ID, true
}

func (m *managementPanel) handleListKeys(event *tcell.EventKey) *tcell.EventKey {
	if event.Key() == tcell.KeyRune && event.Rune() == 'd' || event.Key() == tcell.KeyDelete {
		if id, ok := m.selectedID(); ok {
			m.app.dispatch(dashboard.Action{Kind: dashboard.ActionDelete, ID: id})
		}
		return nil
	}
	if event.Key() == tcell.KeyTab {
		m.app.app.SetFocus(m.form)
		return nil
	}
	return event
}

// showConfirm overlays the delete confirmation.
func (a *App) showConfirm(c *dashboard.ConfirmView) {
	id := c.ID
	yes := c.YesText
	modal := tview.NewModal().
		SetText(fmt.Sprintf("%s\n\n%s", c.Prompt, c.Label)).
		AddButtons([]string{c.YesText, c.NoText}).
		SetDoneFunc(func(_ int, label string) {
			a.root.RemovePage(pageConfirm)
			if label == yes {
				a.dispatch(dashboard.Action{Kind: dashboard.ActionConfirm, ID: id})
				return
			}
			a.dispatch(dashboard.Action{Kind: dashboard.ActionDecline, ID: id})
		})
	a.root.AddPage(pageConfirm, modal, true, true)
	a.app.SetFocus(modal)
}
