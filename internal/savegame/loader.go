package savegame

import (
	"encoding/binary"
	"fmt"
)

// Loader reads patterns from an in-memory stream. The first error sticks:
// later reads return zero values and Err reports it. Bytes after the last
// pattern the caller reads are ignored.
//
// A Loader without data stands for a new game: every pattern opens with
// version 0 and nothing is read.
type Loader struct {
	data    []byte
	pos     int
	pattern string
	err     error
}

// NewLoader creates a Loader over data.
func NewLoader(data []byte) *Loader {
	return &Loader{data: data}
}

// Err returns the first error encountered while loading.
func (l *Loader) Err() error {
	return l.err
}

// Fail records a data error found by the caller, such as a reference that
// does not resolve. Only the first error is kept.
func (l *Loader) Fail(err error) {
	if l.err == nil {
		l.err = err
	}
}

// Remaining returns the number of unread bytes.
func (l *Loader) Remaining() int {
	return len(l.data) - l.pos
}

func (l *Loader) newGame() bool {
	return len(l.data) == 0
}

// OpenPattern opens the next pattern, which must be called name, and returns
// its version. It returns 0 for a new game or after an error.
func (l *Loader) OpenPattern(name string) uint32 {
	if l.err != nil || l.newGame() {
		return 0
	}
	if l.pattern != "" {
		l.err = fmt.Errorf("%w: opening %q while %q is open", ErrStructure, name, l.pattern)
		return 0
	}
	got := l.take(patternNameLength)
	if l.err != nil {
		return 0
	}
	if string(got) != name {
		l.err = fmt.Errorf("%w: expected pattern %q, found %q", ErrStructure, name, got)
		return 0
	}
	version := l.GetLong()
	if l.err != nil {
		return 0
	}
	l.pattern = name
	return version
}

// ClosePattern checks the end marker of the open pattern.
func (l *Loader) ClosePattern() {
	if l.err != nil || l.newGame() {
		return
	}
	if l.pattern == "" {
		l.err = fmt.Errorf("%w: closing without an open pattern", ErrStructure)
		return
	}
	want := endMarker(l.pattern)
	got := l.take(patternNameLength)
	if l.err != nil {
		return
	}
	if string(got) != want {
		l.err = fmt.Errorf("%w: pattern %q not terminated (found %q)", ErrStructure, l.pattern, got)
		return
	}
	l.pattern = ""
}

// VersionMismatch fails the load because the open pattern has a version the
// caller cannot read.
func (l *Loader) VersionMismatch(version, current uint32) {
	l.Fail(&VersionError{Pattern: l.pattern, Version: version, Current: current})
}

// GetByte reads an 8 bit unsigned number.
func (l *Loader) GetByte() uint8 {
	b := l.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

// GetWord reads a 16 bit unsigned number.
func (l *Loader) GetWord() uint16 {
	b := l.take(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

// GetInt16 reads a 16 bit signed number.
func (l *Loader) GetInt16() int16 {
	return int16(l.GetWord())
}

// GetLong reads a 32 bit unsigned number.
func (l *Loader) GetLong() uint32 {
	b := l.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// GetLongLong reads a 64 bit unsigned number.
func (l *Loader) GetLongLong() uint64 {
	b := l.take(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

// GetInt64 reads a 64 bit signed number.
func (l *Loader) GetInt64() int64 {
	return int64(l.GetLongLong())
}

// GetBlob reads a length-prefixed block of bytes. The result is a copy.
func (l *Loader) GetBlob() []byte {
	n := l.GetLong()
	if l.err != nil {
		return nil
	}
	if int64(n) > int64(l.Remaining()) {
		l.err = fmt.Errorf("%w: blob of %d bytes with %d remaining", ErrTruncated, n, l.Remaining())
		return nil
	}
	b := l.take(int(n))
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// GetText reads a string written by PutText.
func (l *Loader) GetText() string {
	return string(l.GetBlob())
}

func (l *Loader) take(n int) []byte {
	if l.err != nil {
		return nil
	}
	if l.Remaining() < n {
		l.err = fmt.Errorf("%w: need %d bytes, have %d", ErrTruncated, n, l.Remaining())
		return nil
	}
	b := l.data[l.pos : l.pos+n]
	l.pos += n
	return b
}
