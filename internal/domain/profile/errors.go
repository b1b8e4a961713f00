package profile

import "errors"

var (
	ErrProfileNotFound = errors.New("Profile not found")
	ErrNotProfileOwner = errors.New("Profile can only be edited by its owner")
)
