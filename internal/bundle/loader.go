package bundle

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ChunksDir is the subdirectory of a build output holding the chunks.
const ChunksDir = "chunks"

// StampFile marks a finished build. The build removes it before writing
// output and writes it last.
const StampFile = "build.stamp"

// ErrBuildIncomplete is returned while a build is still writing its output.
var ErrBuildIncomplete = errors.New("extension bundle build in progress")

// LoadDir reads a build output directory laid out as
//
//	<dir>/index.js
//	<dir>/chunks/<id>.js
//	<dir>/build.stamp
//
// A missing directory or entry bundle yields ErrNotBuilt. Output without a
// stamp, output modified after the stamp, or a file that changes while it is
// read yields ErrBuildIncomplete. Chunk ids are the chunk file names,
// including the extension.
func LoadDir(dir string) (*Build, error) {
	entryPath := filepath.Join(dir, EntryID)
	stamp, err := os.Stat(filepath.Join(dir, StampFile))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading build stamp: %w", err)
		}
		if _, entryErr := os.Stat(entryPath); errors.Is(entryErr, os.ErrNotExist) {
			return nil, ErrNotBuilt
		}
		return nil, fmt.Errorf("%s: no %s: %w", dir, StampFile, ErrBuildIncomplete)
	}

	entry, err := readStable(entryPath, stamp)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotBuilt
		}
		return nil, fmt.Errorf("reading entry bundle: %w", err)
	}

	b := &Build{Entry: entry, Chunks: make(map[string]string)}

	entries, err := os.ReadDir(filepath.Join(dir, ChunksDir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return b, nil
		}
		return nil, fmt.Errorf("reading chunks directory: %w", err)
	}

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".js") {
			continue
		}
		src, err := readStable(filepath.Join(dir, ChunksDir, e.Name()), stamp)
		if err != nil {
			return nil, fmt.Errorf("reading chunk %s: %w", e.Name(), err)
		}
		b.Chunks[e.Name()] = src
	}
	return b, nil
}

// readStable reads path and fails with ErrBuildIncomplete if the file is
// newer than the stamp or changes size or mtime during the read.
func readStable(path string, stamp fs.FileInfo) (string, error) {
	before, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if before.ModTime().After(stamp.ModTime()) {
		return "", fmt.Errorf("%s modified after %s: %w", filepath.Base(path), StampFile, ErrBuildIncomplete)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	after, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if after.Size() != before.Size() || !after.ModTime().Equal(before.ModTime()) || int64(len(data)) != after.Size() {
		return "", fmt.Errorf("%s changed while reading: %w", filepath.Base(path), ErrBuildIncomplete)
	}
	return string(data), nil
}
