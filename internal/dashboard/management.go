package dashboard

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/iconidentify/splitdash/internal/domain"
)

// ErrUnknownAction is returned for an unrecognised management action.
var ErrUnknownAction = errors.New("unknown management action")

// ActionKind names a management action.
type ActionKind string

const (
	ActionSubmit  ActionKind = "submit"
	ActionEdit    ActionKind = "edit"
	ActionCancel  ActionKind = "cancel"
	ActionDelete  ActionKind = "delete"
	ActionConfirm ActionKind = "confirm"
	ActionDecline ActionKind = "decline"
)

// Action is a user intent on the management view. Controls carry their
// action kind and target id, and one dispatcher interprets them.
type Action struct {
	Kind  ActionKind
	ID    domain.SplitID
	Label string
	URL   string
}

// Form field names shared by frontends that post actions.
const (
	FormFieldAction = "action"
	FormFieldID     = "id"
	FormFieldLabel  = "label"
	FormFieldURL    = "url"
)

// ActionFromForm decodes an action from submitted form values.
func ActionFromForm(v url.Values) (Action, error) {
	kind := ActionKind(v.Get(FormFieldAction))
	switch kind {
	case ActionSubmit, ActionEdit, ActionCancel, ActionDelete, ActionConfirm, ActionDecline:
	default:
		return Action{}, fmt.Errorf("%w: %q", ErrUnknownAction, kind)
	}
	return Action{
		Kind:  kind,
		ID:    domain.SplitID(v.Get(FormFieldID)),
		Label: v.Get(FormFieldLabel),
		URL:   v.Get(FormFieldURL),
	}, nil
}

// Values encodes the action as form values.
func (a Action) Values() url.Values {
	v := url.Values{}
	v.Set(FormFieldAction, string(a.Kind))
	if a.ID != "" {
		v.Set(FormFieldID, a.ID.String())
	}
	if a.Kind == ActionSubmit {
		v.Set(FormFieldLabel, a.Label)
		v.Set(FormFieldURL, a.URL)
	}
	return v
}

// Management is the state of the add/edit/delete form.
type Management struct {
	store *Store

	mu      sync.Mutex
	editing domain.SplitID
	pending domain.SplitID
	draft   domain.Draft
	notice  string
}

// NewManagement creates a controller in add mode.
func NewManagement(store *Store) *Management {
	return &Management{store: store}
}

// Reset returns to add mode and clears any confirmation or notice.
func (m *Management) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reset()
}

func (m *Management) reset() {
	m.editing = ""
	m.pending = ""
	m.draft = domain.Draft{}
	m.notice = ""
}

// Dispatch applies a. Failed mutations leave the store untouched and set a
// notice; the error is returned as well. The form state is not locked while
// a request is in flight, so views can still be rendered.
func (m *Management) Dispatch(ctx context.Context, a Action) error {
	switch a.Kind {
	case ActionSubmit:
		return m.submit(ctx, a)
	case ActionConfirm:
		return m.confirm(ctx, a)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	switch a.Kind {
	case ActionEdit:
		sp, ok := m.store.Get(a.ID)
		if !ok {
			m.notice = NoticeNotFound
			return domain.NewSplitError(a.ID, "edit", domain.ErrSplitNotFound)
		}
		m.editing = sp.ID
		m.pending = ""
		m.draft = domain.Draft{Label: sp.Label, URL: sp.URL}
		m.notice = ""
		return nil
	case ActionCancel:
		m.reset()
		return nil
	case ActionDelete:
		if _, ok := m.store.Get(a.ID); !ok {
			m.notice = NoticeNotFound
			return domain.NewSplitError(a.ID, "delete", domain.ErrSplitNotFound)
		}
		m.pending = a.ID
		m.notice = ""
		return nil
	case ActionDecline:
		m.pending = ""
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownAction, a.Kind)
}

func (m *Management) submit(ctx context.Context, a Action) error {
	d := domain.Draft{
		Label: strings.TrimSpace(a.Label),
		URL:   strings.TrimSpace(a.URL),
	}

	m.mu.Lock()
	m.draft = d
	m.pending = ""
	if d.Label == "" {
		m.notice = NoticeLabelRequired
		m.mu.Unlock()
		return domain.ErrEmptyLabel
	}
	if d.URL == "" {
		m.notice = NoticeURLRequired
		m.mu.Unlock()
		return domain.ErrEmptyURL
	}
	id := a.ID
	if id == "" {
		id = m.editing
	}
	if id != "" {
		m.editing = id
	}
	m.mu.Unlock()

	var err error
	if id != "" {
		_, err = m.store.Update(ctx, id, d)
	} else {
		_, err = m.store.Create(ctx, d)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.notice = failureNotice(NoticeSaveFailed, err)
		return err
	}
	m.reset()
	return nil
}

func (m *Management) confirm(ctx context.Context, a Action) error {
	m.mu.Lock()
	id := a.ID
	if id == "" {
		id = m.pending
	}
	m.pending = ""
	m.mu.Unlock()

	if id == "" {
		return nil
	}

	err := m.store.Delete(ctx, id)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.notice = failureNotice(NoticeDeleteFailed, err)
		return err
	}
	m.reset()
	return nil
}

func failureNotice(prefix string, err error) string {
	switch {
	case errors.Is(err, domain.ErrSplitNotFound):
		return NoticeNotFound
	case errors.Is(err, domain.ErrDuplicateSplit):
		return NoticeDuplicate
	}
	var se *domain.SplitError
	if errors.As(err, &se) && se.Err != nil {
		return prefix + se.Err.Error()
	}
	return prefix + err.Error()
}

// View renders the management screen from the current store contents.
func (m *Management) View() *ManagementView {
	m.mu.Lock()
	defer m.mu.Unlock()

	splits := m.store.Splits()
	v := &ManagementView{
		Heading:     TitleManagement,
		ListHeading: ListHeading,
		Notice:      m.notice,
		Rows:        make([]ManagementRow, 0, len(splits)),
	}

	v.Form = FormView{
		Mode:       FormAdd,
		Heading:    FormAddHeading,
		Label:      FieldView{Name: FormFieldLabel, Text: FieldLabel, Value: m.draft.Label},
		URL:        FieldView{Name: FormFieldURL, Text: FieldURL, Value: m.draft.URL},
		SubmitText: ButtonAdd,
	}
	if m.editing != "" {
		v.Form.Mode = FormEdit
		v.Form.ID = m.editing
		v.Form.Heading = FormEditHeading
		v.Form.SubmitText = ButtonSave
		v.Form.CancelText = ButtonCancel
	}

	for _, sp := range splits {
		v.Rows = append(v.Rows, ManagementRow{
			ID:         sp.ID,
			Name:       sp.Name,
			Label:      sp.Label,
			URL:        sp.URL,
			EditText:   ButtonEdit,
			DeleteText: ButtonDelete,
		})
		if sp.ID == m.pending {
			v.Confirm = &ConfirmView{
				ID:      sp.ID,
				Label:   sp.Label,
				Prompt:  ConfirmPrompt,
				YesText: ConfirmYes,
				NoText:  ConfirmNo,
			}
		}
	}
	return v
}

// Editing returns the id bound to the form, empty in add mode.
func (m *Management) Editing() domain.SplitID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.editing
}

// Pending returns the id awaiting delete confirmation.
func (m *Management) Pending() domain.SplitID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending
}
