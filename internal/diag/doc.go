// Package diag models diagnostics reported by an external TypeScript type
// checker (tsc, vue-tsc).
//
// The checker speaks free text. ParseLine recognises the two layouts the
// checker uses:
//
//	src/components/Foo.vue(12,5): error TS2339: Property 'x' does not exist on type 'IFooProps'.
//	src/components/Foo.vue:12:5 - error TS2339: Property 'x' does not exist on type 'IFooProps'.
//
// plus the location-less form ("error TS5023: Unknown compiler option").
// Lines that match none of these are not diagnostics (code frames, summary
// lines, blank lines) and are ignored.
//
// Diagnostic is intentionally small: severity, code, optional location and
// message, and the raw line it came from. Bag collects diagnostics with a cap
// and offers deterministic sorting and de-duplication for listings.
//
// Package diag does no IO; running the checker lives in internal/checker and
// the pattern-driven analysis lives in internal/analysis.
package diag
