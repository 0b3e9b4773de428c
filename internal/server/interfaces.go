package server

import (
	"net"
	"time"
)

// Server defines the lifecycle contract of a running transport server.
//
// Implementations serve in the background from the moment they are
// returned; Done is closed once serving has stopped for good.
type Server interface {
	// Addr returns the bound listener address.
	Addr() net.Addr

	// Shutdown stops accepting connections and drains in-flight requests
	// for at most grace.
	Shutdown(grace time.Duration) error

	// Done is closed when the server has stopped.
	Done() <-chan struct{}

	// Err returns the error that stopped the server, if any.
	Err() error
}
