package domain

import "errors"

// Domain errors.
var (
	// ErrSplitNotFound is returned when no split matches the given ID or name.
	ErrSplitNotFound = errors.New("split not found")

	// ErrDuplicateSplit is returned when a split with the same name already exists.
	ErrDuplicateSplit = errors.New("un split avec ce nom existe déjà")

	// ErrEmptyLabel is returned when a split label is empty.
	ErrEmptyLabel = errors.New("split label cannot be empty")

	// ErrEmptyName is returned when the label slugifies to nothing.
	ErrEmptyName = errors.New("split label must contain at least one letter or digit")

	// ErrEmptyURL is returned when a split URL is empty.
	ErrEmptyURL = errors.New("split url cannot be empty")

	// ErrInvalidURL is returned when the split URL is not an absolute http(s) address.
	ErrInvalidURL = errors.New("split url must be an absolute http or https address")

	// ErrInvalidTheme is returned for theme names other than light, dark and system.
	ErrInvalidTheme = errors.New("invalid theme")

	// ErrInvalidAPIKey is returned when the API key is invalid.
	ErrInvalidAPIKey = errors.New("invalid API key")
)

// SplitError wraps an error with split context.
type SplitError struct {
	ID  SplitID
	Op  string
	Err error
}

func (e *SplitError) Error() string {
	if e.ID != "" {
		return e.Op + " [" + e.ID.String() + "]: " + e.Err.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *SplitError) Unwrap() error {
	return e.Err
}

// NewSplitError creates a new SplitError.
func NewSplitError(id SplitID, op string, err error) *SplitError {
	return &SplitError{
		ID:  id,
		Op:  op,
		Err: err,
	}
}
