// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package dispatch turns a request into exactly one response.
//
// The Dispatcher asks the route table for candidate routes, runs each
// candidate's guards in declaration order and invokes the handler of the
// first candidate whose guards all succeed.
//
// Guard outcomes drive the walk over candidates:
//
//   - forward moves on to the next candidate;
//   - failure is answered right away when the failing guard is the route's
//     last one or when the next candidate has a lower rank; otherwise the
//     next candidate of the same rank gets its chance and the failure is
//     remembered;
//   - when no candidate is left the request gets the remembered failure,
//     or 404 if nothing failed.
//
// Handler errors are translated to statuses by an ErrorMapper, panics are
// recovered and answered with 500, and every response, error responses
// included, passes through the registered ResponseHooks.
package dispatch
