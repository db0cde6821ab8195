package extract

import (
	"regexp"
	"sort"
	"strings"
)

// Result holds the constant tables produced by one Scan pass.
// All fields are fully populated when Scan returns and are not
// mutated afterwards.
type Result struct {
	// Selectors maps property selector names to their four-char codes.
	// At most one name is present per distinct code.
	Selectors map[string]string

	// Classes maps class ID names to their four-char codes.
	Classes map[string]string

	// Scopes maps property scope names to their four-char codes.
	Scopes map[string]string

	// Operations maps IO operation names to their four-char codes.
	Operations map[string]string

	// Errors maps hardware error names to their four-char codes.
	Errors map[string]string

	// FormatIDs is the set of format ID names.
	FormatIDs map[string]struct{}

	// FormatFlags is the set of format flag names with non-zero values.
	FormatFlags map[string]struct{}
}

// Definition patterns per family. Codes for the quoted families are
// four-char literals like 'stm#'; format constants may be any token.
var (
	selectorPattern  = regexp.MustCompile(`(kAudio\S+Property\S+)\s*=\s*('\S+')`)
	classPattern     = regexp.MustCompile(`(kAudio\S+ClassID)\s*=\s*('\S+')`)
	scopePattern     = regexp.MustCompile(`(kAudioObjectPropertyScope\S+)\s*=\s*('\S+')`)
	operationPattern = regexp.MustCompile(`(kAudioServerPlugInIOOperation\S+)\s*=\s*('\S+')`)
	errorPattern     = regexp.MustCompile(`(kAudioHardware\S+)\s*=\s*('\S+')`)
	formatPattern    = regexp.MustCompile(`(kAudioFormat\S+)\s*=\s*(\S+)`)
)

// selectorExclusions lists name prefixes that match the selector pattern
// but belong to other families (scopes, elements, error codes) or are
// custom property type markers. Tested against the name, not the code.
var selectorExclusions = []string{
	"kAudioObjectPropertyScope",
	"kAudioObjectPropertyElement",
	"kAudioHardware",
	"kAudioServerPlugInCustomPropertyDataType",
}

// formatFlagPrefix splits the format family into flags and IDs.
const formatFlagPrefix = "kAudioFormatFlag"

// Scan extracts all constant families from preprocessed header text.
func Scan(defs string) *Result {
	r := &Result{
		Selectors:   make(map[string]string),
		Classes:     make(map[string]string),
		Scopes:      make(map[string]string),
		Operations:  make(map[string]string),
		Errors:      make(map[string]string),
		FormatIDs:   make(map[string]struct{}),
		FormatFlags: make(map[string]struct{}),
	}

	scanSelectors(defs, r.Selectors)
	scanTable(defs, classPattern, r.Classes)
	scanTable(defs, scopePattern, r.Scopes)
	scanTable(defs, operationPattern, r.Operations)
	scanTable(defs, errorPattern, r.Errors)
	scanFormats(defs, r.FormatIDs, r.FormatFlags)

	return r
}

// scanSelectors fills the selector table, applying exclusions and
// resolving code collisions through the disambiguator.
func scanSelectors(defs string, selectors map[string]string) {
	byCode := make(map[string]string)

	for _, m := range selectorPattern.FindAllStringSubmatch(defs, -1) {
		name, code := m[1], m[2]
		if excludedSelector(name) {
			continue
		}
		insertSelector(selectors, byCode, name, code)
	}
}

func excludedSelector(name string) bool {
	for _, prefix := range selectorExclusions {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// scanTable fills a plain name-to-code table. A repeated name is a
// redefinition: the later occurrence overwrites the earlier one.
func scanTable(defs string, pattern *regexp.Regexp, table map[string]string) {
	for _, m := range pattern.FindAllStringSubmatch(defs, -1) {
		table[m[1]] = m[2]
	}
}

// scanFormats splits format constants into the flag and ID sets.
// A flag whose literal value is the token "0" is meaningless as a
// maskable bit and is dropped entirely.
func scanFormats(defs string, ids, flags map[string]struct{}) {
	for _, m := range formatPattern.FindAllStringSubmatch(defs, -1) {
		name, code := m[1], m[2]
		if strings.HasPrefix(name, formatFlagPrefix) {
			if code != "0" {
				flags[name] = struct{}{}
			}
			continue
		}
		ids[name] = struct{}{}
	}
}

// SortedNames returns the keys of a name table in ascending order.
// Generated switch bodies must be byte-stable across runs, so every
// family is emitted in this order.
func SortedNames[V any](table map[string]V) []string {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
