// Package rename replaces whitespace in file names with underscores.
package rename

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"

	"filetools/internal/fileutil"
)

// Options controls how names are rewritten.
type Options struct {
	// NFC composes the base name into Unicode normalization form C first, so
	// decomposed accents from some file systems collapse to single runes.
	NFC bool
}

// FixName returns path with every whitespace run in its final element
// replaced by a single underscore. Leading and trailing whitespace is dropped.
func FixName(path string, opts Options) string {
	path = filepath.Clean(path)
	dir, base := filepath.Dir(path), filepath.Base(path)
	if opts.NFC {
		base = norm.NFC.String(base)
	}
	fields := strings.Fields(base)
	if len(fields) == 0 {
		return path
	}
	return filepath.Join(dir, strings.Join(fields, "_"))
}

// Rename moves path to its fixed name. It reports the new path and whether a
// rename happened; an existing target is never overwritten.
func Rename(path string, opts Options) (string, bool, error) {
	target := FixName(path, opts)
	if target == filepath.Clean(path) {
		return target, false, nil
	}
	if err := fileutil.RenameNoReplace(path, target); err != nil {
		return target, false, err
	}
	return target, true, nil
}
