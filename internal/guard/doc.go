// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package guard implements request guards: small extraction units a route
// declares as preconditions for its handler.
//
// Each guard inspects the incoming [models.Request] and yields an [Outcome]:
//
//   - success carries the extracted value, which the dispatcher stores in
//     [Values] under the guard's name;
//   - forward tells the dispatcher to try the next candidate route;
//   - failure carries an HTTP status and an error and usually ends dispatch.
//
// Guards run in declaration order and only read the request. Shared
// application handles (database pools, services, rate limiters) reach them
// through [State], which is built once at startup.
package guard
