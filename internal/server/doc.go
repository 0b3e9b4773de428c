// Package server runs the HTTP transport of the application.
//
// Start binds the configured address, seals the route table and serves
// connections with net/http (HTTP/1.1 framing, keep-alive, timeouts). Every
// request passes through a chi pipeline (trace id, access log, health and
// metrics endpoints) before it reaches the dispatcher.
//
// Shutdown stops accepting connections, lets in-flight requests finish until
// the grace deadline and then closes whatever is left. Run ties the
// lifecycle to a context, typically one cancelled by OS signals.
package server
