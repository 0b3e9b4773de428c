package dispatch

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/MKhiriev/go-forum/models"
)

// ServeHTTP adapts the Dispatcher to net/http. The body is read once,
// bounded by the configured limit, before any guard runs.
func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req := NewRequest(r)

	body, err := readBody(w, r, d.maxBodyBytes)
	if err != nil {
		resp := bodyErrorResponse(err)
		d.finish(r.Context(), req, resp, unmatchedRoute, start)
		writeResponse(w, resp)
		return
	}
	req.Body = body

	writeResponse(w, d.Dispatch(r.Context(), req))
}

// NewRequest copies the routing-relevant parts of r. The body is left
// empty.
func NewRequest(r *http.Request) *models.Request {
	path := r.URL.Path
	if path == "" || path[0] != '/' {
		path = "/" + path
	}

	return &models.Request{
		Method:     r.Method,
		Path:       path,
		Header:     r.Header,
		Query:      r.URL.Query(),
		RemoteAddr: r.RemoteAddr,
	}
}

func readBody(w http.ResponseWriter, r *http.Request, limit int64) ([]byte, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}
	defer r.Body.Close()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, errors.Join(ErrBodyTooLarge, err)
		}
		return nil, errors.Join(ErrReadingBody, err)
	}
	return body, nil
}

func bodyErrorResponse(err error) *models.Response {
	if errors.Is(err, ErrBodyTooLarge) {
		return models.Error(http.StatusRequestEntityTooLarge, "")
	}
	return models.Error(http.StatusBadRequest, "")
}

func writeResponse(w http.ResponseWriter, resp *models.Response) {
	header := w.Header()
	for k, v := range resp.Header {
		header[k] = v
	}
	w.WriteHeader(resp.Status)
	if len(resp.Body) > 0 {
		_, _ = w.Write(resp.Body)
	}
}
