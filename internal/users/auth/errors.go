// Copyright (c) 2026 Hortus. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"errors"
	"net/http"

	"github.com/taibuivan/hortus/internal/platform/apperr"
)

// Kind classifies how a session operation failed.
type Kind int

const (
	// KindNone means the operation finished cleanly.
	KindNone Kind = iota

	// KindTransientAuth is a recoverable login or registration failure.
	// The operator may retry immediately.
	KindTransientAuth

	// KindSessionInvalidated means the stored session was rejected and fully signed out.
	KindSessionInvalidated

	// KindStorageCorruption means the persisted entries were unreadable or incomplete
	// and were treated as absent.
	KindStorageCorruption

	// KindLogoutRemote means the API logout call failed. The local sign-out still happened.
	KindLogoutRemote

	// KindSuperseded means a newer operation started before this one finished,
	// so its result was discarded.
	KindSuperseded
)

// String returns a stable name for logs.
func (kind Kind) String() string {
	switch kind {
	case KindNone:
		return "none"
	case KindTransientAuth:
		return "transient_auth"
	case KindSessionInvalidated:
		return "session_invalidated"
	case KindStorageCorruption:
		return "storage_corruption"
	case KindLogoutRemote:
		return "logout_remote"
	case KindSuperseded:
		return "superseded"
	}
	return "unknown"
}

// Error is a classified session failure.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

// Error returns the operator-facing message.
func (e *Error) Error() string { return e.Message }

// Unwrap exposes the collaborator error.
func (e *Error) Unwrap() error { return e.Cause }

// ErrSuperseded is returned by Login and Register when a newer operation
// took over before they could record their result.
var ErrSuperseded = &Error{Kind: KindSuperseded, Message: "auth: superseded by a newer operation"}

// IsKind reports whether err is an [*Error] of the given kind.
func IsKind(err error, kind Kind) bool {
	var authError *Error
	return errors.As(err, &authError) && authError.Kind == kind
}

// AppError converts e into the web shell's error envelope, keeping the API's
// status when the failure came from a response.
func (e *Error) AppError() *apperr.AppError {
	status := apperr.Status(e.Cause)
	if status == 0 {
		status = http.StatusUnauthorized
	}

	var details []apperr.FieldError
	if cause := apperr.As(e.Cause); cause != nil {
		details = cause.Details
	}

	return &apperr.AppError{
		Code:       "AUTH_FAILED",
		Message:    e.Message,
		HTTPStatus: status,
		Cause:      e.Cause,
		Details:    details,
	}
}

// Outcome is the result of the operations that never fail outright:
// Restore and Logout always end in a settled state.
type Outcome struct {
	Status Status
	Kind   Kind
	Err    error
}

// Clean reports whether the operation finished without a tagged failure.
func (outcome Outcome) Clean() bool {
	return outcome.Kind == KindNone
}
