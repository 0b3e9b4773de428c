package guard

import "errors"

var (
	ErrMissingParam  = errors.New("missing path parameter")
	ErrInvalidParam  = errors.New("invalid path parameter")
	ErrMissingHeader = errors.New("missing header")
	ErrMissingQuery  = errors.New("missing query parameter")
	ErrMalformedBody = errors.New("malformed request body")
	ErrValidation    = errors.New("request body validation failed")
	ErrRateLimited   = errors.New("too many requests")
)
