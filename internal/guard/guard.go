// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package guard

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-forum/models"
)

// Kind tells the dispatcher what to do after a guard ran.
type Kind uint8

const (
	Success Kind = iota
	Forward
	Failure
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case Forward:
		return "forward"
	case Failure:
		return "failure"
	default:
		return "unknown"
	}
}

// Outcome is the tagged result of a single guard evaluation.
// Value is set only for Success, Status and Err only for Failure.
type Outcome struct {
	Kind   Kind
	Value  any
	Status int
	Err    error
}

// Succeed returns a successful outcome carrying value.
func Succeed(value any) Outcome {
	return Outcome{Kind: Success, Value: value}
}

// Forwarded returns an outcome that passes the request to the next
// candidate route.
func Forwarded() Outcome {
	return Outcome{Kind: Forward}
}

// Fail returns a failed outcome. A status outside 400..599 is treated as 500.
func Fail(status int, err error) Outcome {
	if status < http.StatusBadRequest || status > 599 {
		status = http.StatusInternalServerError
	}
	return Outcome{Kind: Failure, Status: status, Err: err}
}

// Message returns the text sent to the client for a failure.
func (o Outcome) Message() string {
	if o.Err != nil {
		return o.Err.Error()
	}
	return http.StatusText(o.Status)
}

// Guard extracts one piece of typed data from a request.
//
// Extract must not modify req. Values holds the successes of the guards
// declared before this one on the same route.
type Guard interface {
	Name() string
	Extract(ctx context.Context, req *models.Request, values Values, state *State) Outcome
}

// ExtractFunc is the function form of Guard.Extract.
type ExtractFunc func(ctx context.Context, req *models.Request, values Values, state *State) Outcome

type funcGuard struct {
	name string
	fn   ExtractFunc
}

// Func adapts fn to the Guard interface under the given name.
func Func(name string, fn ExtractFunc) Guard {
	return &funcGuard{name: name, fn: fn}
}

func (g *funcGuard) Name() string {
	return g.name
}

func (g *funcGuard) Extract(ctx context.Context, req *models.Request, values Values, state *State) Outcome {
	return g.fn(ctx, req, values, state)
}
