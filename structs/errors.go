package structs

import "errors"

var (
	ErrValidation  = errors.New("validation failed")
	ErrNotFound    = errors.New("record not found")
	ErrNotFavorite = errors.New("meal is not a favorite")
)
