// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package router holds the route table: the mapping from (method, path
// pattern) to the guards and handler serving a request.
//
// Patterns are made of slash-separated segments:
//
//	/threads            literal segment
//	/threads/<id>       named parameter, matches exactly one segment
//	/static/<path..>    wildcard, matches the rest of the path; must be last
//
// Match returns every route that fits a request, most specific first.
// Specificity is compared segment by segment (literal beats parameter,
// parameter beats wildcard); routes of equal rank keep registration order.
//
// The table is built once at startup. Registration publishes a fresh
// immutable snapshot, so lookups never take a lock. After Seal the table
// rejects further registrations.
package router
