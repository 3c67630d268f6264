package linop

import "errors"

// Errors returned by operator construction and application.
var (
	ErrEmptyInput             = errors.New("linop: empty input")
	ErrDimensionMismatch      = errors.New("linop: dimension mismatch")
	ErrConstruction           = errors.New("linop: invalid operator descriptor")
	ErrSingularPreconditioner = errors.New("linop: singular preconditioner")
)
