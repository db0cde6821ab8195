package preprocess

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// ResolveHeaderFile locates the concrete header file under the sysroot.
// The preprocessor resolves the include on its own; this lookup exists
// for watch mode, which needs a real path to put a filesystem watch on.
// With an empty sysroot the header path is tried as-is relative to the
// filesystem root conventions, which rarely matches; callers treat an
// empty result as "nothing to watch".
func ResolveHeaderFile(sysroot, header string) (string, error) {
	if sysroot == "" {
		return "", nil
	}

	pattern := filepath.Join(sysroot, "**", header)
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return "", fmt.Errorf("glob header %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return "", nil
	}

	// Multiple SDK copies can match; pick deterministically.
	sort.Strings(matches)
	return matches[0], nil
}
