package domain

import (
	"errors"
	"fmt"
	"os"
)

const (
	RoleUser  = "user"
	RoleStaff = "staff"
)

// Error roots. Every feature sentinel wraps one of these, and the presenter
// maps the root to an HTTP status: validation -> 400, not found -> 404,
// forbidden -> 403.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
)

var (
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"

	JwtSecret = os.Getenv("JWT_SECRET")

	ErrParseUUID      = fmt.Errorf("%w: failed to parse UUID", ErrValidation)
	ErrUserNotAllowed = fmt.Errorf("%w: user not allowed", ErrForbidden)
	ErrTokenNotFound  = errors.New("failed to token not found")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenInvalid   = errors.New("token invalid")
)
