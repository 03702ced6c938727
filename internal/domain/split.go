package domain

import (
	"strings"
	"unicode"
)

// SplitID is the opaque identifier the backend assigns to a split.
type SplitID string

// String returns the string representation of the SplitID.
func (id SplitID) String() string {
	return string(id)
}

// Split is a named target shown as a dashboard entry. Name is the routing key
// and the subdomain label; URL is the backing address the proxy forwards to.
type Split struct {
	ID    SplitID `json:"id"`
	Name  string  `json:"name"`
	Label string  `json:"label"`
	URL   string  `json:"url"`
}

// Draft holds the user-supplied fields of a split being added or edited.
type Draft struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Name returns the slug derived from the draft label.
func (d Draft) Name() string {
	return Slugify(d.Label)
}

// Split builds the record for id from the draft, deriving the name.
func (d Draft) Split(id SplitID) Split {
	return Split{
		ID:    id,
		Name:  d.Name(),
		Label: d.Label,
		URL:   d.URL,
	}
}

// Apply replaces the mutable fields of s with the draft, keeping s.ID.
func (s Split) Apply(d Draft) Split {
	return d.Split(s.ID)
}

// Slugify lowercases text, turns each whitespace run into a hyphen and drops
// every character outside [a-z0-9-]. Applying it twice yields the same result.
func Slugify(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	inSpace := false
	for _, r := range strings.ToLower(text) {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte('-')
			}
			inSpace = true
			continue
		}
		inSpace = false
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
