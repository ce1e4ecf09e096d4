// Package savegame implements the save-game stream: a sequence of named,
// versioned patterns holding little-endian primitives. It also holds the
// byte reader for static RCD data files.
package savegame

import (
	"errors"
	"fmt"
)

var (
	// ErrStructure reports a malformed pattern sequence: a wrong name, a bad
	// end marker, or nested patterns.
	ErrStructure = errors.New("savegame: bad pattern structure")

	// ErrTruncated reports that the stream ended in the middle of a value.
	ErrTruncated = errors.New("savegame: unexpected end of data")
)

// VersionError reports a pattern version the loader does not understand.
type VersionError struct {
	Pattern string
	Version uint32
	Current uint32
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("savegame: pattern %q has version %d, newest supported is %d", e.Pattern, e.Version, e.Current)
}

// patternNameLength is the size of a pattern name and of its end marker.
const patternNameLength = 4

func checkPatternName(name string) error {
	if len(name) != patternNameLength {
		return fmt.Errorf("%w: pattern name %q is not %d bytes", ErrStructure, name, patternNameLength)
	}
	for i := 0; i < len(name); i++ {
		if name[i] < 0x20 || name[i] > 0x7E {
			return fmt.Errorf("%w: pattern name %q is not printable ASCII", ErrStructure, name)
		}
	}
	return nil
}

// endMarker is the pattern name reversed.
func endMarker(name string) string {
	b := []byte(name)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}
