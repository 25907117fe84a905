package apperr

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicateID   = errors.New("id already exists")
	ErrDuplicateName = errors.New("name already exists")
	ErrInvalidID     = errors.New("invalid identifier")
)
