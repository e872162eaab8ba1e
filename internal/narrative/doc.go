// Package narrative turns engine output into prose. It holds the fixed
// lookup tables keyed by planet, card and collision label, and renders letter
// bodies through text/template. No text is generated beyond these lookups.
package narrative
