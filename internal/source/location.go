package source

import (
	"errors"
	"fmt"
	"strings"
)

// trunkMarker names a leaf segment that is not the project name:
// a ".../project/trunk" URL names the project in its parent segment.
const trunkMarker = "trunk"

// ErrMalformedSourceLocation is returned when a source URL has no segment
// usable as a directory name.
var ErrMalformedSourceLocation = errors.New("malformed source location")

// BuildDirectoryName returns "{base}-{version}" where base is the last path
// segment of sourceURL, or the one before it when the last segment contains
// "trunk". Trailing slashes are ignored.
func BuildDirectoryName(sourceURL, version string) (string, error) {
	segments := strings.Split(sourceURL, "/")

	// Trailing separators do not name anything.
	for len(segments) > 0 && segments[len(segments)-1] == "" {
		segments = segments[:len(segments)-1]
	}

	if len(segments) == 0 {
		return "", fmt.Errorf("%w: %q has no path segments", ErrMalformedSourceLocation, sourceURL)
	}

	base := segments[len(segments)-1]

	if strings.Contains(base, trunkMarker) {
		if len(segments) < 2 {
			return "", fmt.Errorf("%w: %q has no segment before %q",
				ErrMalformedSourceLocation, sourceURL, base)
		}

		base = segments[len(segments)-2]
	}

	if base == "" {
		return "", fmt.Errorf("%w: %q has an empty project segment", ErrMalformedSourceLocation, sourceURL)
	}

	return base + "-" + version, nil
}
