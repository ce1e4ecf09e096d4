package savegame

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// RcdFile reads a static RCD data file byte by byte. Unlike the pattern
// stream it has no structure of its own beyond the file header.
type RcdFile struct {
	f    *os.File
	r    *bufio.Reader
	size int64
	pos  int64
	err  error
}

// OpenRcdFile opens an RCD file for reading.
func OpenRcdFile(path string) (*RcdFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	return &RcdFile{f: f, r: bufio.NewReader(f), size: st.Size()}, nil
}

// Close closes the file.
func (rf *RcdFile) Close() error {
	return rf.f.Close()
}

// Err returns the first read error.
func (rf *RcdFile) Err() error {
	return rf.err
}

// Remaining returns the number of bytes not yet read.
func (rf *RcdFile) Remaining() int64 {
	if rf.size >= rf.pos {
		return rf.size - rf.pos
	}
	return 0
}

// GetBlob fills buf from the file and reports whether that succeeded.
func (rf *RcdFile) GetBlob(buf []byte) bool {
	if rf.err != nil {
		return false
	}
	n, err := io.ReadFull(rf.r, buf)
	rf.pos += int64(n)
	if err != nil {
		rf.err = fmt.Errorf("%w: rcd file: %v", ErrTruncated, err)
		return false
	}
	return true
}

// GetUInt8 reads an 8 bit unsigned number.
func (rf *RcdFile) GetUInt8() uint8 {
	var b [1]byte
	if !rf.GetBlob(b[:]) {
		return 0
	}
	return b[0]
}

// GetUInt16 reads a 16 bit unsigned number.
func (rf *RcdFile) GetUInt16() uint16 {
	var b [2]byte
	if !rf.GetBlob(b[:]) {
		return 0
	}
	return binary.LittleEndian.Uint16(b[:])
}

// GetInt16 reads a 16 bit signed number.
func (rf *RcdFile) GetInt16() int16 {
	return int16(rf.GetUInt16())
}

// GetUInt32 reads a 32 bit unsigned number.
func (rf *RcdFile) GetUInt32() uint32 {
	var b [4]byte
	if !rf.GetBlob(b[:]) {
		return 0
	}
	return binary.LittleEndian.Uint32(b[:])
}

// CheckFileHeader reads the 4 byte file name and the version, and reports
// whether both match.
func (rf *RcdFile) CheckFileHeader(name string, version uint32) bool {
	if rf.Remaining() < 8 {
		return false
	}
	var magic [4]byte
	if !rf.GetBlob(magic[:]) || string(magic[:]) != name {
		return false
	}
	return rf.CheckVersion(version)
}

// CheckVersion reads a version number and compares it with ver.
func (rf *RcdFile) CheckVersion(ver uint32) bool {
	v := rf.GetUInt32()
	return rf.err == nil && v == ver
}
