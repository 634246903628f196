package widget

import (
	"errors"
	"fmt"
)

// DuplicateWidgetError reports that a user key or a derived identity was
// claimed twice within one run. Always fatal to the run and surfaced to
// the caller of the declaration: it means the calling script produced two
// widgets the engine cannot distinguish.
type DuplicateWidgetError struct {
	// DisplayName is the human-facing widget name: the declaring
	// function's name when it differs from the element type, else the
	// element type itself.
	DisplayName string

	// UserKey is the offending explicit key, empty for collisions on a
	// generated identity.
	UserKey string
}

// Error implements the error interface with distinct phrasing for
// duplicate explicit keys versus duplicate generated identities.
func (e *DuplicateWidgetError) Error() string {
	if e.UserKey != "" {
		return fmt.Sprintf(
			"multiple identical %s widgets with key=%q; pass a unique key argument to each %s",
			e.DisplayName, e.UserKey, e.DisplayName,
		)
	}
	return fmt.Sprintf(
		"multiple identical %s widgets with the same generated key; "+
			"widgets with identical structure share a generated key, "+
			"pass an explicit key argument to each %s to distinguish them",
		e.DisplayName, e.DisplayName,
	)
}

// IsDuplicateWidget returns true if the error is a duplicate widget
// collision. Uses errors.As to handle wrapped errors.
func IsDuplicateWidget(err error) bool {
	var de *DuplicateWidgetError
	return errors.As(err, &de)
}
