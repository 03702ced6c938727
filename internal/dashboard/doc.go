// Package dashboard is the client core of the splits dashboard.
//
// It owns the in-memory split list (Store), maps paths to views (Router and
// History), drives the add/edit/delete form (Management) and persists the
// display theme (ThemeController). Every render returns a Page: a tree of
// typed view nodes that a frontend draws without touching the store. The web
// frontend renders Pages to HTML, the terminal frontend to tview primitives.
//
// The Store is the only writable copy of the splits. It is mutated after the
// backend confirms a change and never before, so a failed call leaves the
// dashboard exactly as it was.
package dashboard
