// Package http wires the forum onto the dispatch core: it registers the
// forum routes on a router.Table, provides the authentication guard and the
// CORS response hook, and maps service and store errors to HTTP statuses.
package http
