package navigation

import "errors"

var (
	ErrInvalidPattern   = errors.New("invalid route pattern")
	ErrDuplicatePattern = errors.New("duplicate route pattern")
	ErrInvalidRedirect  = errors.New("invalid fallback redirect")
	ErrProviderBuilt    = errors.New("route provider already built")
	ErrUnknownPattern   = errors.New("route pattern not declared")
	ErrMissingParam     = errors.New("missing route parameter")
)
