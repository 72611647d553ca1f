package bridge

import "strings"

const schemeMarker = "://"

// StripScheme removes a leading "scheme://" prefix from path, returning
// the storage-native remainder. Paths without a scheme are returned
// unchanged, so applying it twice equals applying it once.
func StripScheme(path string) string {
	if i := strings.Index(path, schemeMarker); i >= 0 {
		return path[i+len(schemeMarker):]
	}
	return path
}

// normalize strips the scheme and any trailing slashes.
func normalize(path string) string {
	return strings.TrimRight(StripScheme(path), "/")
}

// parentPath returns the parent directory of path, with "/" as the
// parent of top-level names.
func parentPath(path string) string {
	path = normalize(path)
	if i := strings.LastIndex(path, "/"); i > 0 {
		return path[:i]
	}
	return "/"
}
