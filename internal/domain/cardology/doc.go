// Package cardology implements the card-algebra engine that drives every
// personalized letter and planner.
//
// The engine maps a birthday onto a fixed 52-card cycle and derives from it:
//
//   - the birth card and spread value for a month/day pair
//   - the age-indexed yearly Spread (seven planetary rows plus a crown)
//   - the fractal chain, a 52-card walk through a Spread from an anchor card
//   - the planetary period and fractal card for a day within a 364-day cycle
//   - the satellite forecast cards (long range, pluto, result, displacement,
//     environment)
//
// Everything in this package is a pure function over read-only tables that are
// built once at package initialization. Nothing blocks, performs I/O, or keeps
// state between calls, so all functions are safe for concurrent use.
//
// CalculateLetterData is the boundary used by the HTTP and task layers. It
// never panics and reports every failure through the Error field of the
// returned LetterResult. The remaining exported functions are composable
// primitives for batch tooling such as the planner exporters.
package cardology
