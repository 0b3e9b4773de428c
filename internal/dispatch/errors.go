package dispatch

import "errors"

var (
	ErrHandlerPanic = errors.New("handler panicked")
	ErrHookPanic    = errors.New("response hook panicked")
	ErrNilResponse  = errors.New("handler returned no response")
	ErrBodyTooLarge = errors.New("request body too large")
	ErrReadingBody  = errors.New("error reading request body")
)
