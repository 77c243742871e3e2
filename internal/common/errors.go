// Package common defines shared sentinel and typed errors used across the
// storefront client. Callers should use errors.Is / errors.As to match them.
package common

import "errors"

var (
	// ErrNotSignedIn marks operations that require an authenticated session.
	// Surfaced to the user as a "please sign in" condition, not a hard failure.
	ErrNotSignedIn = errors.New("please sign in")

	// ErrForbidden marks operations that require the admin role.
	ErrForbidden = errors.New("access denied, admin only")
)

// AuthError reports a well-formed backend response that is missing fields the
// client requires, e.g. a sign-in response without a bearer token.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

func NewAuthError(msg string) *AuthError { return &AuthError{Message: msg} }

// ValidationError reports a client-side precondition failure detected before
// any network call is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(msg string) *ValidationError { return &ValidationError{Message: msg} }
