package guard

import (
	"fmt"
	"reflect"
)

// Values collects the successful guard results of one route attempt, keyed
// by guard name.
type Values map[string]any

// Get returns the value stored under name converted to T.
// The second result is false when name is absent or holds another type.
func Get[T any](values Values, name string) (T, bool) {
	v, ok := values[name].(T)
	return v, ok
}

// MustGet is like Get but panics when the value is missing. Handlers use it
// for guards their route is guaranteed to declare.
func MustGet[T any](values Values, name string) T {
	v, ok := Get[T](values, name)
	if !ok {
		var zero T
		panic(fmt.Sprintf("guard value %q of type %T not found", name, zero))
	}
	return v
}

// State is the registry of shared application handles available to guards
// and handlers. One value is kept per concrete type.
//
// State is filled at startup and read concurrently afterwards; it is not
// safe to call Manage while requests are being served.
type State struct {
	handles map[reflect.Type]any
}

// NewState returns a State managing every given handle.
func NewState(handles ...any) *State {
	s := &State{handles: make(map[reflect.Type]any, len(handles))}
	for _, h := range handles {
		s.Manage(h)
	}
	return s
}

// Manage stores handle under its dynamic type, replacing a previous handle
// of the same type.
func (s *State) Manage(handle any) *State {
	if handle == nil {
		return s
	}
	s.handles[reflect.TypeOf(handle)] = handle
	return s
}

// Managed returns the handle of type T. T may be an interface type, in which
// case a handle implementing it is returned. Register at most one handle
// per interface a caller asks for.
func Managed[T any](s *State) (T, bool) {
	var zero T
	if s == nil {
		return zero, false
	}

	typ := reflect.TypeFor[T]()
	if h, ok := s.handles[typ]; ok {
		return h.(T), true
	}

	if typ.Kind() == reflect.Interface {
		for _, h := range s.handles {
			if v, ok := h.(T); ok {
				return v, true
			}
		}
	}
	return zero, false
}
