// Package service contains the application use cases. It sits between the
// delivery mechanisms (the HTTP API and background tasks) and the domain,
// store and integration packages.
//
// LetterService runs the full letter pipeline: engine calculation through
// the letter data cache, persistence of the letter record, narrative
// composition, PDF rendering and hand-off to the mail carrier. EngineService
// exposes the individual engine primitives for the read-only API.
//
// Services receive their dependencies through constructor injection and
// depend on interfaces, never on concrete infrastructure. Errors are either
// sentinels (ErrEngine, ErrInvalidRequest, ErrLetterNotFound) or a
// *LetterServiceError naming the failed operation.
package service
