package store

import (
	"errors"
	"fmt"
)

// ErrNotFound reports a lookup for a slug with no stored page
var ErrNotFound = errors.New("page not found")

// SlugCollisionError reports two different target keywords resolving to the
// same slug. The stored page wins; the new save is rejected.
type SlugCollisionError struct {
	Slug            string
	ExistingKeyword string
	NewKeyword      string
}

func (e *SlugCollisionError) Error() string {
	return fmt.Sprintf("slug %q already belongs to keyword %q, refusing to overwrite with %q",
		e.Slug, e.ExistingKeyword, e.NewKeyword)
}

// IsSlugCollision reports whether err is, or wraps, a slug collision
func IsSlugCollision(err error) bool {
	var collisionErr *SlugCollisionError
	return errors.As(err, &collisionErr)
}
