// Package extract scans preprocessed CoreAudio header text for named
// constant definitions and classifies them into stringification families.
//
// The input is the raw output of running a C preprocessor over
// CoreAudio/AudioServerPlugIn.h. The package does not parse C; it matches
// loosely structured "name = literal" occurrences with family-specific
// patterns and collects them into a Result:
//
//   - Selectors: property selectors (kAudio...Property...), with scope,
//     element, hardware-error and custom-property-type markers excluded,
//     and code collisions resolved so at most one name survives per code.
//   - Classes, Scopes, Operations, Errors: plain name-to-code tables.
//   - FormatIDs, FormatFlags: name sets; a flag whose literal is "0" is
//     dropped because it cannot participate in a bitmask.
//
// Scan is a pure function over its input string. Names that match no
// pattern are silently skipped; the generated code's fallback formatter
// covers any code absent from the tables.
package extract
