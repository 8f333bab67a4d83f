package services

import (
	"errors"
	"fmt"

	"github.com/treehollow/socialite/pkg/internal/models"
)

// Caller-visible error kinds. Every failure leaving the interactor wraps
// exactly one of these, so the transport layer can map them to status codes
// with errors.Is and nothing else.
var (
	ErrValidation       = errors.New("validation failed")
	ErrNotFound         = errors.New("record not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrStateConflict    = errors.New("state conflict")
	ErrCommentsDisabled = errors.New("comments are disabled for this post")
)

var (
	ErrMaxDepthExceeded = fmt.Errorf("%w: max comment depth is %d", ErrStateConflict, models.MaxCommentDepth)
	ErrCrossPostParent  = fmt.Errorf("%w: parent comment belongs to a different post", ErrValidation)
	ErrSelfRequest      = fmt.Errorf("%w: cannot send a friend request to yourself", ErrValidation)
	ErrAlreadyFriends   = fmt.Errorf("%w: already friends", ErrStateConflict)
	ErrAlreadyPending   = fmt.Errorf("%w: a friend request is already pending", ErrStateConflict)
	// ErrNotFoundOrForbidden deliberately hides whether the row exists at all.
	ErrNotFoundOrForbidden = fmt.Errorf("%w: no matching pending request addressed to you", ErrNotFound)
)
