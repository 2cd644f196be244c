package source

import (
	"context"
	"os"
	"time"
)

// Source produces a fresh data tree on demand.
type Source interface {
	Name() string
	Fetch(ctx context.Context) (any, error)
}

// File is a Source backed by a data file on disk.
type File struct {
	path string
}

// NewFile returns a Source reading path on every Fetch.
func NewFile(path string) *File {
	return &File{path: path}
}

// Name returns the file path.
func (f *File) Name() string { return f.path }

// Fetch reads and decodes the file. It returns ctx's error if ctx is done
// before the read.
func (f *File) Fetch(ctx context.Context) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Load(f.path)
}

// ModTime returns the file's modification time, zero if it cannot be read.
func (f *File) ModTime() time.Time {
	fi, err := os.Stat(f.path)
	if err != nil {
		return time.Time{}
	}
	return fi.ModTime()
}

// Static is a Source that always returns the same data.
type Static struct {
	Label string
	Data  any
}

// Name returns the label.
func (s Static) Name() string { return s.Label }

// Fetch returns the fixed data.
func (s Static) Fetch(ctx context.Context) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.Data, nil
}
