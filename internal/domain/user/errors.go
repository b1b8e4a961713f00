package user

import "errors"

var (
	ErrUserNotFound       = errors.New("User not found")
	ErrEmailExists        = errors.New("Email already registered")
	ErrLeadAccessRequired = errors.New("Lead access required")
)
