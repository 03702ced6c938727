package dashboard

import "github.com/iconidentify/splitdash/internal/domain"

// ViewKind selects which view a Page carries.
type ViewKind int

const (
	ViewHome ViewKind = iota
	ViewSplit
	ViewManagement
)

func (k ViewKind) String() string {
	switch k {
	case ViewSplit:
		return "split"
	case ViewManagement:
		return "management"
	default:
		return "home"
	}
}

// Page is one rendered state of the dashboard. Exactly one of Home, Split
// and Management is set, matching View.
type Page struct {
	Path  string
	Title string

	// Redirected is set when the requested path named an unknown split and
	// the history entry was replaced with home.
	Redirected bool

	Theme        domain.Theme
	ThemeOptions []ThemeOption

	Sidebar Sidebar

	View       ViewKind
	Home       *HomeView
	Split      *SplitView
	Management *ManagementView
}

// Sidebar lists the splits. At most one item is active.
type Sidebar struct {
	Items        []SidebarItem
	Loaded       bool
	Error        string
	ManagePath   string
	ManageText   string
	ManageActive bool
}

// SidebarItem is one sidebar entry.
type SidebarItem struct {
	ID     domain.SplitID
	Name   string
	Label  string
	Path   string
	Active bool
}

// HomeView is the welcome view.
type HomeView struct {
	Heading string
	Hint    string
	Failed  bool
}

// SplitVariant is how a split is shown.
type SplitVariant int

const (
	// VariantFrame embeds the split panel.
	VariantFrame SplitVariant = iota
	// VariantCard shows a link opening the panel externally.
	VariantCard
)

func (v SplitVariant) String() string {
	if v == VariantCard {
		return "card"
	}
	return "frame"
}

// SplitView shows one split.
type SplitView struct {
	Variant SplitVariant
	ID      domain.SplitID
	Name    string
	Label   string
	// URL is the panel address on the split's subdomain.
	URL string
	// FrameSeq changes on every entry into a split view so frontends
	// recreate the embedded panel instead of reusing it.
	FrameSeq   uint64
	FrameTitle string
	LinkText   string
}

// FormMode is the state of the management form.
type FormMode int

const (
	FormAdd FormMode = iota
	FormEdit
)

func (m FormMode) String() string {
	if m == FormEdit {
		return "edit"
	}
	return "add"
}

// ManagementView is the add/edit/delete screen.
type ManagementView struct {
	Heading     string
	Form        FormView
	ListHeading string
	Rows        []ManagementRow
	Confirm     *ConfirmView
	Notice      string
}

// FormView is the add/edit form.
type FormView struct {
	Mode       FormMode
	ID         domain.SplitID
	Heading    string
	Label      FieldView
	URL        FieldView
	SubmitText string
	// CancelText is empty in add mode.
	CancelText string
}

// FieldView is one form input.
type FieldView struct {
	Name  string
	Text  string
	Value string
}

// ManagementRow is one split in the management list.
type ManagementRow struct {
	ID         domain.SplitID
	Name       string
	Label      string
	URL        string
	EditText   string
	DeleteText string
}

// ConfirmView asks before deleting a split.
type ConfirmView struct {
	ID      domain.SplitID
	Label   string
	Prompt  string
	YesText string
	NoText  string
}
