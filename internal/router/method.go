package router

import (
	"fmt"
	"net/http"
	"strings"
)

// Method is an HTTP request method a route can be registered for.
type Method string

const (
	GET     Method = http.MethodGet
	HEAD    Method = http.MethodHead
	POST    Method = http.MethodPost
	PUT     Method = http.MethodPut
	PATCH   Method = http.MethodPatch
	DELETE  Method = http.MethodDelete
	OPTIONS Method = http.MethodOptions
)

var methods = map[string]Method{
	http.MethodGet:     GET,
	http.MethodHead:    HEAD,
	http.MethodPost:    POST,
	http.MethodPut:     PUT,
	http.MethodPatch:   PATCH,
	http.MethodDelete:  DELETE,
	http.MethodOptions: OPTIONS,
}

// ParseMethod converts s to a Method. Matching is case-insensitive.
func ParseMethod(s string) (Method, error) {
	m, ok := methods[strings.ToUpper(s)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}
	return m, nil
}

func (m Method) String() string {
	return string(m)
}
