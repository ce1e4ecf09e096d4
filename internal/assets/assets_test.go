package assets

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rcd builds an RCD file from a header and blocks of the given sizes.
func rcd(magic string, version uint32, blocks ...Block) []byte {
	b := append([]byte(magic), 0, 0, 0, 0)
	binary.LittleEndian.PutUint32(b[4:], version)
	for _, blk := range blocks {
		b = append(b, blk.Name...)
		b = binary.LittleEndian.AppendUint32(b, blk.Version)
		b = binary.LittleEndian.AppendUint32(b, blk.Length)
		b = append(b, make([]byte, blk.Length)...)
	}
	return b
}

func write(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestReadAsset(t *testing.T) {
	dir := t.TempDir()
	blocks := []Block{{"SURF", 3, 20}, {"TSEL", 1, 0}, {"SURF", 3, 8}}
	path := write(t, dir, "ground.rcd", rcd(FileMagic, FileVersion, blocks...))

	a, err := ReadAsset(path)
	require.NoError(t, err)
	assert.Equal(t, blocks, a.Blocks)
	assert.Equal(t, int64(8+3*12+28), a.Size)
}

func TestReadAssetErrors(t *testing.T) {
	dir := t.TempDir()
	good := rcd(FileMagic, FileVersion, Block{"SURF", 3, 20})

	tests := []struct {
		name    string
		content []byte
		want    error
	}{
		{"magic", rcd("FRCD", FileVersion), ErrBadHeader},
		{"version", rcd(FileMagic, 1), ErrBadHeader},
		{"empty", nil, ErrBadHeader},
		{"short block", good[:len(good)-1], ErrBadBlock},
		{"trailing", append(append([]byte{}, good...), 1, 2, 3), ErrBadBlock},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadAsset(write(t, dir, tt.name+".rcd", tt.content))
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := ReadAsset(filepath.Join(dir, "missing.rcd"))
	assert.Error(t, err)
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "b.rcd", rcd(FileMagic, FileVersion, Block{"SURF", 3, 4}))
	write(t, dir, "a.RCD", rcd(FileMagic, FileVersion, Block{"SURF", 3, 4}, Block{"PATH", 1, 2}))
	write(t, dir, "broken.rcd", []byte("RCDF"))
	write(t, dir, "notes.txt", []byte("RCDF"))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.rcd"), 0o755))

	cat, err := Scan(dir)
	require.NoError(t, err)
	require.Len(t, cat.Assets, 2)
	assert.Equal(t, filepath.Join(dir, "a.RCD"), cat.Assets[0].Path)
	assert.Equal(t, filepath.Join(dir, "b.rcd"), cat.Assets[1].Path)
	require.Len(t, cat.Skipped, 1)
	assert.Equal(t, filepath.Join(dir, "broken.rcd"), cat.Skipped[0].Path)
	assert.Equal(t, 2, cat.Count("SURF"))
	assert.Equal(t, 1, cat.Count("PATH"))
}

func TestScanMissingDir(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
