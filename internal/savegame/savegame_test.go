package savegame

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	svr := NewSaver(&buf)
	svr.StartPattern("TEST", 3)
	svr.PutByte(0xAB)
	svr.PutWord(0x1234)
	svr.PutInt16(-2)
	svr.PutLong(0xDEADBEEF)
	svr.PutLongLong(1 << 40)
	svr.PutInt64(-5)
	svr.PutBlob([]byte{1, 2, 3})
	svr.PutText("Mechanic #1")
	svr.EndPattern()
	require.NoError(t, svr.CheckNoOpenPattern())

	ldr := NewLoader(buf.Bytes())
	assert.Equal(t, uint32(3), ldr.OpenPattern("TEST"))
	assert.Equal(t, uint8(0xAB), ldr.GetByte())
	assert.Equal(t, uint16(0x1234), ldr.GetWord())
	assert.Equal(t, int16(-2), ldr.GetInt16())
	assert.Equal(t, uint32(0xDEADBEEF), ldr.GetLong())
	assert.Equal(t, uint64(1<<40), ldr.GetLongLong())
	assert.Equal(t, int64(-5), ldr.GetInt64())
	assert.Equal(t, []byte{1, 2, 3}, ldr.GetBlob())
	assert.Equal(t, "Mechanic #1", ldr.GetText())
	ldr.ClosePattern()
	require.NoError(t, ldr.Err())
	assert.Equal(t, 0, ldr.Remaining())
}

func TestLittleEndianLayout(t *testing.T) {
	var buf bytes.Buffer
	svr := NewSaver(&buf)
	svr.StartPattern("GSTS", 2)
	svr.PutWord(0x0102)
	svr.PutLong(0x03040506)
	svr.EndPattern()
	require.NoError(t, svr.Err())

	want := []byte{
		'G', 'S', 'T', 'S', 2, 0, 0, 0,
		0x02, 0x01,
		0x06, 0x05, 0x04, 0x03,
		'S', 'T', 'S', 'G',
	}
	assert.Equal(t, want, buf.Bytes())
}

func TestSaverStructureErrors(t *testing.T) {
	t.Run("nested", func(t *testing.T) {
		svr := NewSaver(&bytes.Buffer{})
		svr.StartPattern("AAAA", 1)
		svr.StartPattern("BBBB", 1)
		assert.ErrorIs(t, svr.Err(), ErrStructure)
	})
	t.Run("end without start", func(t *testing.T) {
		svr := NewSaver(&bytes.Buffer{})
		svr.EndPattern()
		assert.ErrorIs(t, svr.Err(), ErrStructure)
	})
	t.Run("bad name", func(t *testing.T) {
		svr := NewSaver(&bytes.Buffer{})
		svr.StartPattern("TOOLONG", 1)
		assert.ErrorIs(t, svr.Err(), ErrStructure)
	})
	t.Run("left open", func(t *testing.T) {
		svr := NewSaver(&bytes.Buffer{})
		svr.StartPattern("OPEN", 1)
		assert.ErrorIs(t, svr.CheckNoOpenPattern(), ErrStructure)
	})
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestSaverWriteErrorSticks(t *testing.T) {
	svr := NewSaver(failingWriter{})
	svr.StartPattern("TEST", 1)
	svr.PutLong(1)
	assert.ErrorContains(t, svr.Err(), "disk full")
}

func encode(t *testing.T, fill func(*Saver)) []byte {
	t.Helper()
	var buf bytes.Buffer
	svr := NewSaver(&buf)
	fill(svr)
	require.NoError(t, svr.CheckNoOpenPattern())
	return buf.Bytes()
}

func TestLoaderNameMismatch(t *testing.T) {
	data := encode(t, func(s *Saver) {
		s.StartPattern("STAF", 3)
		s.EndPattern()
	})
	ldr := NewLoader(data)
	assert.Equal(t, uint32(0), ldr.OpenPattern("GSTS"))
	assert.ErrorIs(t, ldr.Err(), ErrStructure)
}

func TestLoaderBadEndMarker(t *testing.T) {
	data := encode(t, func(s *Saver) {
		s.StartPattern("STAF", 1)
		s.PutWord(7)
		s.EndPattern()
	})
	ldr := NewLoader(data)
	require.Equal(t, uint32(1), ldr.OpenPattern("STAF"))
	// Reading too little leaves the end marker misaligned.
	ldr.GetByte()
	ldr.ClosePattern()
	assert.ErrorIs(t, ldr.Err(), ErrStructure)
}

func TestLoaderTruncated(t *testing.T) {
	data := encode(t, func(s *Saver) {
		s.StartPattern("DATA", 1)
		s.PutLong(42)
		s.EndPattern()
	})
	ldr := NewLoader(data[:10])
	require.Equal(t, uint32(1), ldr.OpenPattern("DATA"))
	assert.Equal(t, uint32(0), ldr.GetLong())
	assert.ErrorIs(t, ldr.Err(), ErrTruncated)

	// Everything after the first failure reads as zero.
	assert.Equal(t, uint16(0), ldr.GetWord())
	assert.Nil(t, ldr.GetBlob())
}

func TestLoaderBlobLongerThanData(t *testing.T) {
	data := encode(t, func(s *Saver) {
		s.StartPattern("BLOB", 1)
		s.PutLong(1000)
		s.EndPattern()
	})
	ldr := NewLoader(data)
	ldr.OpenPattern("BLOB")
	assert.Nil(t, ldr.GetBlob())
	assert.ErrorIs(t, ldr.Err(), ErrTruncated)
}

func TestLoaderVersionMismatch(t *testing.T) {
	data := encode(t, func(s *Saver) {
		s.StartPattern("GSTS", 9)
		s.EndPattern()
	})
	ldr := NewLoader(data)
	v := ldr.OpenPattern("GSTS")
	ldr.VersionMismatch(v, 2)

	var verr *VersionError
	require.ErrorAs(t, ldr.Err(), &verr)
	assert.Equal(t, "GSTS", verr.Pattern)
	assert.Equal(t, uint32(9), verr.Version)
	assert.Equal(t, uint32(2), verr.Current)
}

func TestLoaderNewGame(t *testing.T) {
	ldr := NewLoader(nil)
	assert.Equal(t, uint32(0), ldr.OpenPattern("GSTS"))
	ldr.ClosePattern()
	assert.Equal(t, uint32(0), ldr.OpenPattern("STAF"))
	ldr.ClosePattern()
	assert.NoError(t, ldr.Err())
}

func TestLoaderTrailingGarbageIgnored(t *testing.T) {
	data := encode(t, func(s *Saver) {
		s.StartPattern("DATE", 1)
		s.PutByte(3)
		s.EndPattern()
	})
	data = append(data, 0xFF, 0xFE, 0xFD)
	ldr := NewLoader(data)
	ldr.OpenPattern("DATE")
	assert.Equal(t, uint8(3), ldr.GetByte())
	ldr.ClosePattern()
	assert.NoError(t, ldr.Err())
	assert.Equal(t, 3, ldr.Remaining())
}

func TestWriteReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saves", "park.fct")
	size, err := WriteFile(path, func(s *Saver) error {
		s.StartPattern("FCTS", 1)
		s.PutText("Demo Park")
		s.EndPattern()
		return s.Err()
	})
	require.NoError(t, err)
	assert.Greater(t, size, int64(0))

	ldr, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), ldr.OpenPattern("FCTS"))
	assert.Equal(t, "Demo Park", ldr.GetText())
	ldr.ClosePattern()
	assert.NoError(t, ldr.Err())

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestWriteFileKeepsOldOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "park.fct")
	_, err := WriteFile(path, func(s *Saver) error {
		s.StartPattern("FCTS", 1)
		s.EndPattern()
		return nil
	})
	require.NoError(t, err)

	_, err = WriteFile(path, func(s *Saver) error {
		s.StartPattern("FCTS", 1)
		return nil // Left open.
	})
	assert.ErrorIs(t, err, ErrStructure)

	ldr, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), ldr.OpenPattern("FCTS"))
}

func writeRcd(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.rcd")
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestRcdFileHeader(t *testing.T) {
	path := writeRcd(t, []byte{'R', 'C', 'D', 'F', 2, 0, 0, 0, 0x34, 0x12, 0xFE, 0xFF, 9})
	rf, err := OpenRcdFile(path)
	require.NoError(t, err)
	defer rf.Close()

	assert.Equal(t, int64(13), rf.Remaining())
	assert.True(t, rf.CheckFileHeader("RCDF", 2))
	assert.Equal(t, uint16(0x1234), rf.GetUInt16())
	assert.Equal(t, int16(-2), rf.GetInt16())
	assert.Equal(t, int64(1), rf.Remaining())
	assert.Equal(t, uint8(9), rf.GetUInt8())
	assert.Equal(t, int64(0), rf.Remaining())

	assert.Equal(t, uint32(0), rf.GetUInt32())
	assert.ErrorIs(t, rf.Err(), ErrTruncated)
}

func TestRcdFileHeaderMismatch(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
	}{
		{"wrong magic", []byte{'X', 'C', 'D', 'F', 2, 0, 0, 0}},
		{"wrong version", []byte{'R', 'C', 'D', 'F', 1, 0, 0, 0}},
		{"too short", []byte{'R', 'C', 'D'}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rf, err := OpenRcdFile(writeRcd(t, tc.content))
			require.NoError(t, err)
			defer rf.Close()
			assert.False(t, rf.CheckFileHeader("RCDF", 2))
		})
	}
}
