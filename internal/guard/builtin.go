package guard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"golang.org/x/time/rate"

	"github.com/MKhiriev/go-forum/models"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// PositiveInt binds the path parameter param as an int64 greater than zero.
// Anything else fails with 422.
func PositiveInt(param string) Guard {
	return Func(param, func(_ context.Context, req *models.Request, _ Values, _ *State) Outcome {
		raw, ok := req.Param(param)
		if !ok {
			return Fail(http.StatusInternalServerError, fmt.Errorf("%w: %s", ErrMissingParam, param))
		}

		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			return Fail(http.StatusUnprocessableEntity, fmt.Errorf("%w: %s must be a positive integer", ErrInvalidParam, param))
		}
		return Succeed(n)
	})
}

// PathString binds the path parameter param as a non-empty string.
func PathString(param string) Guard {
	return Func(param, func(_ context.Context, req *models.Request, _ Values, _ *State) Outcome {
		raw, ok := req.Param(param)
		if !ok {
			return Fail(http.StatusInternalServerError, fmt.Errorf("%w: %s", ErrMissingParam, param))
		}
		if raw == "" {
			return Fail(http.StatusUnprocessableEntity, fmt.Errorf("%w: %s is empty", ErrInvalidParam, param))
		}
		return Succeed(raw)
	})
}

// Header binds the value of the request header name. A missing or empty
// header fails with 400.
func Header(name string) Guard {
	return Func(http.CanonicalHeaderKey(name), func(_ context.Context, req *models.Request, _ Values, _ *State) Outcome {
		v := req.Header.Get(name)
		if v == "" {
			return Fail(http.StatusBadRequest, fmt.Errorf("%w: %s", ErrMissingHeader, name))
		}
		return Succeed(v)
	})
}

// Query binds the first value of the query parameter name. A missing
// parameter fails with 400.
func Query(name string) Guard {
	return Func(name, func(_ context.Context, req *models.Request, _ Values, _ *State) Outcome {
		if !req.Query.Has(name) {
			return Fail(http.StatusBadRequest, fmt.Errorf("%w: %s", ErrMissingQuery, name))
		}
		return Succeed(req.Query.Get(name))
	})
}

// JSON decodes the request body into a T and validates it with the
// `validate` struct tags. Requests that do not declare a JSON content type
// are forwarded, malformed bodies fail with 400, and validation errors fail
// with 422. The success value is a T.
func JSON[T any](name string) Guard {
	return Func(name, func(_ context.Context, req *models.Request, _ Values, _ *State) Outcome {
		if req.ContentType() != "application/json" {
			return Forwarded()
		}

		var v T
		if err := json.Unmarshal(req.Body, &v); err != nil {
			return Fail(http.StatusBadRequest, fmt.Errorf("%w: %v", ErrMalformedBody, err))
		}

		if err := validate.Struct(&v); err != nil {
			var invalid *validator.InvalidValidationError
			if !errors.As(err, &invalid) {
				return Fail(http.StatusUnprocessableEntity, fmt.Errorf("%w: %v", ErrValidation, err))
			}
		}
		return Succeed(v)
	})
}

// RateLimit admits requests while limiter has tokens and fails with 429
// otherwise. The limiter is shared by every request reaching the route.
func RateLimit(name string, limiter *rate.Limiter) Guard {
	return Func(name, func(_ context.Context, _ *models.Request, _ Values, _ *State) Outcome {
		if !limiter.Allow() {
			return Fail(http.StatusTooManyRequests, ErrRateLimited)
		}
		return Succeed(struct{}{})
	})
}

type forwarding struct {
	Guard
}

// Forwarding turns failures of g into forwards, so a route can step aside
// for a less specific one when its parameter does not fit.
func Forwarding(g Guard) Guard {
	return forwarding{g}
}

func (f forwarding) Extract(ctx context.Context, req *models.Request, values Values, state *State) Outcome {
	out := f.Guard.Extract(ctx, req, values, state)
	if out.Kind == Failure {
		return Forwarded()
	}
	return out
}

type optional struct {
	Guard
}

// Optional makes g never block a route: failures and forwards become a
// success with a nil value.
func Optional(g Guard) Guard {
	return optional{g}
}

func (o optional) Extract(ctx context.Context, req *models.Request, values Values, state *State) Outcome {
	out := o.Guard.Extract(ctx, req, values, state)
	if out.Kind != Success {
		return Succeed(nil)
	}
	return out
}
