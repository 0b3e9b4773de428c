package http

import (
	"github.com/MKhiriev/go-forum/internal/dispatch"
	"github.com/MKhiriev/go-forum/models"
)

const (
	corsAllowMethods = "POST, GET, DELETE, PATCH, OPTIONS"
	corsAllowHeaders = "*"
)

// CORS returns a response hook adding permissive CORS headers to every
// response, error responses included.
func CORS(allowOrigin string) dispatch.ResponseHook {
	return dispatch.HookFunc(func(_ *models.Request, resp *models.Response) {
		resp.Header.Set("Access-Control-Allow-Origin", allowOrigin)
		resp.Header.Set("Access-Control-Allow-Methods", corsAllowMethods)
		resp.Header.Set("Access-Control-Allow-Headers", corsAllowHeaders)
		resp.Header.Set("Access-Control-Allow-Credentials", "true")
	})
}
