package savegame

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Saver writes patterns to a stream. The first error sticks: later calls do
// nothing and Err reports it.
type Saver struct {
	w       io.Writer
	buf     [8]byte
	pattern string // Name of the open pattern, empty if none.
	err     error
}

// NewSaver creates a Saver writing to w.
func NewSaver(w io.Writer) *Saver {
	return &Saver{w: w}
}

// Err returns the first error encountered while saving.
func (s *Saver) Err() error {
	return s.err
}

// CheckNoOpenPattern fails the save if a pattern is still open.
func (s *Saver) CheckNoOpenPattern() error {
	if s.err == nil && s.pattern != "" {
		s.err = fmt.Errorf("%w: pattern %q is still open", ErrStructure, s.pattern)
	}
	return s.err
}

// StartPattern opens a new pattern. Patterns do not nest.
func (s *Saver) StartPattern(name string, version uint32) {
	if s.CheckNoOpenPattern() != nil {
		return
	}
	if err := checkPatternName(name); err != nil {
		s.err = err
		return
	}
	s.write([]byte(name))
	s.PutLong(version)
	s.pattern = name
}

// EndPattern closes the open pattern by writing its end marker.
func (s *Saver) EndPattern() {
	if s.err != nil {
		return
	}
	if s.pattern == "" {
		s.err = fmt.Errorf("%w: end of pattern without an open pattern", ErrStructure)
		return
	}
	s.write([]byte(endMarker(s.pattern)))
	s.pattern = ""
}

// PutByte writes an 8 bit unsigned number.
func (s *Saver) PutByte(v uint8) {
	s.buf[0] = v
	s.write(s.buf[:1])
}

// PutWord writes a 16 bit unsigned number.
func (s *Saver) PutWord(v uint16) {
	binary.LittleEndian.PutUint16(s.buf[:2], v)
	s.write(s.buf[:2])
}

// PutInt16 writes a 16 bit signed number.
func (s *Saver) PutInt16(v int16) {
	s.PutWord(uint16(v))
}

// PutLong writes a 32 bit unsigned number.
func (s *Saver) PutLong(v uint32) {
	binary.LittleEndian.PutUint32(s.buf[:4], v)
	s.write(s.buf[:4])
}

// PutLongLong writes a 64 bit unsigned number.
func (s *Saver) PutLongLong(v uint64) {
	binary.LittleEndian.PutUint64(s.buf[:8], v)
	s.write(s.buf[:8])
}

// PutInt64 writes a 64 bit signed number.
func (s *Saver) PutInt64(v int64) {
	s.PutLongLong(uint64(v))
}

// PutBlob writes a length-prefixed block of bytes.
func (s *Saver) PutBlob(b []byte) {
	s.PutLong(uint32(len(b)))
	s.write(b)
}

// PutText writes a string as a blob.
func (s *Saver) PutText(text string) {
	s.PutBlob([]byte(text))
}

func (s *Saver) write(b []byte) {
	if s.err != nil || len(b) == 0 {
		return
	}
	if _, err := s.w.Write(b); err != nil {
		s.err = fmt.Errorf("savegame: write: %w", err)
	}
}
