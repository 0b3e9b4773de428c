package dispatch

import "github.com/MKhiriev/go-forum/models"

// ResponseHook observes and may modify every response before it is written.
// Hooks run in registration order and must not replace resp.
type ResponseHook interface {
	OnResponse(req *models.Request, resp *models.Response)
}

// HookFunc adapts a function to ResponseHook.
type HookFunc func(req *models.Request, resp *models.Response)

func (f HookFunc) OnResponse(req *models.Request, resp *models.Response) {
	f(req, resp)
}

// ErrorMapper returns the HTTP status for an error returned by a handler.
type ErrorMapper func(err error) int
