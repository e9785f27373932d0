package service

import (
	"errors"
	"fmt"
)

// Error taxonomy: every service error wraps one of these sentinels so the
// HTTP layer can map it to a status code without string matching.
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrPermission = errors.New("permission denied")
)

var (
	ErrUserNotFound     = fmt.Errorf("user %w", ErrNotFound)
	ErrRecipeNotFound   = fmt.Errorf("recipe %w", ErrNotFound)
	ErrRelationNotFound = fmt.Errorf("relation %w", ErrNotFound)
	ErrFollowNotFound   = fmt.Errorf("subscription %w", ErrNotFound)

	ErrAlreadyFavorited = fmt.Errorf("%w: recipe already in favorites", ErrConflict)
	ErrAlreadyInCart    = fmt.Errorf("%w: recipe already in shopping cart", ErrConflict)
	ErrAlreadyFollowing = fmt.Errorf("%w: already subscribed", ErrConflict)
	ErrSelfFollow       = fmt.Errorf("%w: cannot subscribe to yourself", ErrConflict)

	ErrNotRecipeAuthor = fmt.Errorf("%w: only the author may modify a recipe", ErrPermission)
)

// ValidationError reports a rejected payload. The request is terminated and
// nothing is written.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErr(msg string) error {
	return &ValidationError{Message: msg}
}
