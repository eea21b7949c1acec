package domain

import "errors"

// Store-layer errors. The repository translates every raw store failure into
// one of these; no driver error escapes the persistence boundary.
var (
	ErrIntegrityViolation = errors.New("integrity constraint violated")
	ErrAttributeNotFound  = errors.New("attribute not found")
	ErrConnection         = errors.New("database unreachable")
	ErrRepository         = errors.New("repository failure")
)

// Auth-layer errors.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrTokenExpired       = errors.New("token has expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrHashing            = errors.New("password hashing failed")
	ErrForbidden          = errors.New("forbidden")
	ErrLoginThrottled     = errors.New("too many failed login attempts")
)

// Domain-layer errors, per entity type. The AlreadyExists family for users is
// field-specific so conflict responses can name the colliding field.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUserExists       = errors.New("user already exists")
	ErrUsernameExists   = errors.New("username already exists")
	ErrEmailExists      = errors.New("email already exists")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrCustomerExists   = errors.New("customer already exists")
	ErrProjectNotFound  = errors.New("project not found")
	ErrProjectExists    = errors.New("project already exists")
	ErrInvalidRole      = errors.New("invalid role")
	ErrInvalidStatus    = errors.New("invalid project status")
)
