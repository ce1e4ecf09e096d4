// Package assets finds the RCD data files of the game.
package assets

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/talgya/mini-park/internal/savegame"
)

// RCD file header.
const (
	FileMagic   = "RCDF"
	FileVersion = 2
)

var (
	ErrBadHeader = errors.New("not an RCD file")
	ErrBadBlock  = errors.New("bad RCD block")
)

// Block is the header of one data block in an RCD file.
type Block struct {
	Name    string `json:"name"`
	Version uint32 `json:"version"`
	Length  uint32 `json:"length"`
}

// Asset is a readable RCD file.
type Asset struct {
	Path   string  `json:"path"`
	Size   int64   `json:"size"`
	Blocks []Block `json:"blocks"`
}

// Skipped is an RCD file that could not be used.
type Skipped struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// Catalog is the result of scanning a directory.
type Catalog struct {
	Assets  []Asset   `json:"assets"`
	Skipped []Skipped `json:"skipped"`
}

// Scan lists the .rcd files of dir. Only regular files are considered;
// directories and other entries are ignored. Files with a bad header or
// block list end up in Skipped.
func Scan(dir string) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}

	cat := &Catalog{}
	for _, e := range entries {
		if !e.Type().IsRegular() || !strings.EqualFold(filepath.Ext(e.Name()), ".rcd") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		a, err := ReadAsset(path)
		if err != nil {
			slog.Warn("skipping rcd file", "path", path, "err", err)
			cat.Skipped = append(cat.Skipped, Skipped{Path: path, Reason: err.Error()})
			continue
		}
		cat.Assets = append(cat.Assets, a)
	}
	sort.Slice(cat.Assets, func(i, j int) bool { return cat.Assets[i].Path < cat.Assets[j].Path })

	slog.Info("assets scanned", "dir", dir, "files", len(cat.Assets), "skipped", len(cat.Skipped))
	return cat, nil
}

// ReadAsset checks the file header of an RCD file and lists its blocks.
func ReadAsset(path string) (Asset, error) {
	rf, err := savegame.OpenRcdFile(path)
	if err != nil {
		return Asset{}, err
	}
	defer rf.Close()

	a := Asset{Path: path, Size: rf.Remaining()}
	if !rf.CheckFileHeader(FileMagic, FileVersion) {
		return a, fmt.Errorf("%w: want %s version %d", ErrBadHeader, FileMagic, FileVersion)
	}

	var name [4]byte
	for rf.Remaining() > 0 {
		if rf.Remaining() < 12 {
			return a, fmt.Errorf("%w: %d trailing bytes", ErrBadBlock, rf.Remaining())
		}
		rf.GetBlob(name[:])
		b := Block{Name: string(name[:]), Version: rf.GetUInt32(), Length: rf.GetUInt32()}
		if int64(b.Length) > rf.Remaining() {
			return a, fmt.Errorf("%w: %s needs %d bytes, %d left", ErrBadBlock, b.Name, b.Length, rf.Remaining())
		}
		rf.GetBlob(make([]byte, b.Length))
		if err := rf.Err(); err != nil {
			return a, err
		}
		a.Blocks = append(a.Blocks, b)
	}
	return a, nil
}

// Count returns the number of blocks with the given name over all assets.
func (c *Catalog) Count(name string) int {
	n := 0
	for _, a := range c.Assets {
		for _, b := range a.Blocks {
			if b.Name == name {
				n++
			}
		}
	}
	return n
}
