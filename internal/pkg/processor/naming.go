package processor

import (
	"fmt"
	"path"
	"regexp"
	"strings"
)

var (
	nonAlnum    = regexp.MustCompile(`[^a-z0-9]+`)
	trailingSeq = regexp.MustCompile(`-\d+$`)
)

// ResolveName derives a unique base name (no extension) for a source URL or
// filename within one folder. taken is the set of base names already used in
// the folder; the returned name is recorded in it.
//
// With enhance the base is lowercased, separator runs collapse to "-" and a
// pre-existing trailing numeric suffix is stripped. Without it the last path
// segment is used verbatim, minus any query string. In both modes a taken
// base gets a zero-padded counter so duplicates in one batch never collide.
func ResolveName(source string, enhance bool, taken map[string]bool) string {
	base := baseName(source)

	if enhance {
		base = strings.ToLower(base)
		base = nonAlnum.ReplaceAllString(base, "-")
		base = strings.Trim(base, "-")
		base = trailingSeq.ReplaceAllString(base, "")
	}
	if base == "" {
		base = "image"
	}

	name := base
	for n := 1; taken[name]; n++ {
		name = fmt.Sprintf("%s-%02d", base, n)
	}
	taken[name] = true
	return name
}

// baseName extracts the last path segment without query string or extension.
func baseName(source string) string {
	if i := strings.IndexAny(source, "?#"); i >= 0 {
		source = source[:i]
	}
	// uploads from Windows clients may carry backslash paths
	source = strings.ReplaceAll(source, `\`, "/")

	name := path.Base(source)
	if name == "." || name == "/" {
		return ""
	}
	return strings.TrimSuffix(name, path.Ext(name))
}

// SourceExt returns the lowercased extension of a URL or filename,
// query string excluded.
func SourceExt(source string) string {
	if i := strings.IndexAny(source, "?#"); i >= 0 {
		source = source[:i]
	}
	return strings.ToLower(path.Ext(source))
}
