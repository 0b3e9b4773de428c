// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package router

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/atomic"

	"github.com/MKhiriev/go-forum/internal/guard"
	"github.com/MKhiriev/go-forum/models"
)

// Handler produces the response of a route once all of its guards have
// succeeded. values holds each guard's result under the guard's name.
//
// A returned error is mapped to a status by the dispatcher; a panic is
// recovered and answered with 500.
type Handler func(ctx context.Context, req *models.Request, values guard.Values) (*models.Response, error)

// Route binds a method and a path pattern to guards and a handler.
// Routes are immutable once registered.
type Route struct {
	Method  Method
	Pattern string
	Guards  []guard.Guard
	Handler Handler

	// Name is optional and used in logs, metrics and conflict errors.
	Name string

	pattern pattern
	seq     int
}

// Rank returns the specificity of the route's pattern.
func (r *Route) Rank() Rank {
	return r.pattern.rank
}

// Label is the route name, or "METHOD pattern" when the route has none.
func (r *Route) Label() string {
	if r.Name != "" {
		return r.Name
	}
	return r.Method.String() + " " + r.pattern.raw
}

// Candidate is a route matching a request together with the path parameters
// it binds.
type Candidate struct {
	Route  *Route
	Params map[string]string
	Rank   Rank
}

type snapshot struct {
	byMethod map[Method][]*Route
	byKey    map[string]*Route
	count    int
}

// Table is the route table. It is safe for concurrent use: writers are
// serialised, readers work on an immutable snapshot.
type Table struct {
	mu       sync.Mutex
	snapshot *atomic.Pointer[snapshot]
	sealed   *atomic.Bool
}

// NewTable returns an empty, unsealed table.
func NewTable() *Table {
	return &Table{
		snapshot: atomic.NewPointer(&snapshot{
			byMethod: map[Method][]*Route{},
			byKey:    map[string]*Route{},
		}),
		sealed: atomic.NewBool(false),
	}
}

// Register adds route to the table.
//
// It fails with ErrSealed after Seal, ErrUnknownMethod, ErrNilHandler,
// ErrInvalidPattern, or a *ConflictError when the same method and pattern
// are already registered.
func (t *Table) Register(route Route) error {
	if t.sealed.Load() {
		return ErrSealed
	}

	method, err := ParseMethod(string(route.Method))
	if err != nil {
		return err
	}
	if route.Handler == nil {
		return fmt.Errorf("%w: %s %s", ErrNilHandler, method, route.Pattern)
	}

	p, err := parsePattern(route.Pattern)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	// Seal may have won the race while we were parsing.
	if t.sealed.Load() {
		return ErrSealed
	}

	cur := t.snapshot.Load()
	key := method.String() + " " + p.raw
	if existing, ok := cur.byKey[key]; ok {
		return &ConflictError{Method: method, Pattern: p.raw, Existing: existing.Name}
	}

	r := &Route{
		Method:  method,
		Pattern: p.raw,
		Guards:  slices.Clone(route.Guards),
		Handler: route.Handler,
		Name:    route.Name,
		pattern: p,
		seq:     cur.count,
	}

	next := &snapshot{
		byMethod: make(map[Method][]*Route, len(cur.byMethod)+1),
		byKey:    make(map[string]*Route, len(cur.byKey)+1),
		count:    cur.count + 1,
	}
	for m, routes := range cur.byMethod {
		next.byMethod[m] = routes
	}
	for k, v := range cur.byKey {
		next.byKey[k] = v
	}

	routes := append(slices.Clone(cur.byMethod[method]), r)
	slices.SortStableFunc(routes, compareRoutes)
	next.byMethod[method] = routes
	next.byKey[key] = r

	t.snapshot.Store(next)
	return nil
}

// MustRegister is like Register but panics on error.
func (t *Table) MustRegister(route Route) {
	if err := t.Register(route); err != nil {
		panic(err)
	}
}

func (t *Table) add(method Method, pattern string, handler Handler, guards []guard.Guard) error {
	return t.Register(Route{Method: method, Pattern: pattern, Handler: handler, Guards: guards})
}

func (t *Table) Get(pattern string, handler Handler, guards ...guard.Guard) error {
	return t.add(GET, pattern, handler, guards)
}

func (t *Table) Post(pattern string, handler Handler, guards ...guard.Guard) error {
	return t.add(POST, pattern, handler, guards)
}

func (t *Table) Put(pattern string, handler Handler, guards ...guard.Guard) error {
	return t.add(PUT, pattern, handler, guards)
}

func (t *Table) Patch(pattern string, handler Handler, guards ...guard.Guard) error {
	return t.add(PATCH, pattern, handler, guards)
}

func (t *Table) Delete(pattern string, handler Handler, guards ...guard.Guard) error {
	return t.add(DELETE, pattern, handler, guards)
}

// Seal freezes the table. It is called by the server before it starts
// accepting connections and may be called more than once.
func (t *Table) Seal() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sealed.Store(true)
}

// Sealed reports whether Seal has been called.
func (t *Table) Sealed() bool {
	return t.sealed.Load()
}

// Len returns the number of registered routes.
func (t *Table) Len() int {
	return t.snapshot.Load().count
}

// Match returns the routes registered for method whose pattern fits path,
// most specific first. Unknown methods match nothing.
func (t *Table) Match(method, path string) []Candidate {
	m, err := ParseMethod(method)
	if err != nil {
		return nil
	}

	routes := t.snapshot.Load().byMethod[m]
	if len(routes) == 0 {
		return nil
	}

	parts := splitPath(path)
	var candidates []Candidate
	for _, r := range routes {
		params, ok := r.pattern.match(parts)
		if !ok {
			continue
		}
		candidates = append(candidates, Candidate{Route: r, Params: params, Rank: r.pattern.rank})
	}
	return candidates
}

// Routes lists every registered route grouped by method, each group in
// match order.
func (t *Table) Routes() []*Route {
	snap := t.snapshot.Load()

	methods := make([]Method, 0, len(snap.byMethod))
	for m := range snap.byMethod {
		methods = append(methods, m)
	}
	slices.Sort(methods)

	out := make([]*Route, 0, snap.count)
	for _, m := range methods {
		out = append(out, snap.byMethod[m]...)
	}
	return out
}
