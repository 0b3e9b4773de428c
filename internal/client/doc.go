// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command-line forum client.
//
// Each invocation runs one command (e.g. "threads", "post", "login") against
// the server through an [adapter.ServerAdapter] and prints the result as
// indented JSON.
package client
