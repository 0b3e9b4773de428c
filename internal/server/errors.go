// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	// ErrGraceExceeded is returned by Shutdown when in-flight requests did
	// not finish before the grace deadline and their connections were closed.
	ErrGraceExceeded = errors.New("shutdown grace period exceeded")

	// ErrNoRouteTable is returned by Start when no route table is given.
	ErrNoRouteTable = errors.New("no route table")

	// ErrBind is returned by Start when the address cannot be bound.
	ErrBind = errors.New("error binding address")
)
