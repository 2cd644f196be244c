package source

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Snapshot wraps a Source and keeps the last successfully fetched tree on
// disk. When the wrapped Fetch fails, the stored tree is served instead so a
// restarted host can still render something.
type Snapshot struct {
	src    Source
	dir    string
	logger *slog.Logger
}

// NewSnapshot returns a Snapshot storing under dir. A nil logger discards.
func NewSnapshot(src Source, dir string, logger *slog.Logger) *Snapshot {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Snapshot{src: src, dir: dir, logger: logger}
}

// Name returns the wrapped source's name.
func (s *Snapshot) Name() string { return s.src.Name() }

// ModTime forwards to the wrapped source when it reports one.
func (s *Snapshot) ModTime() time.Time {
	if mt, ok := s.src.(interface{ ModTime() time.Time }); ok {
		return mt.ModTime()
	}
	return time.Time{}
}

// Fetch fetches from the wrapped source and stores the result. On failure it
// returns the stored tree, or the fetch error when nothing was stored yet.
func (s *Snapshot) Fetch(ctx context.Context) (any, error) {
	data, err := s.src.Fetch(ctx)
	if err == nil {
		if serr := s.store(data); serr != nil {
			s.logger.Warn("snapshot write failed", "source", s.src.Name(), "error", serr)
		}
		return data, nil
	}

	stale, ok := s.Last()
	if !ok {
		return nil, err
	}
	s.logger.Warn("serving stored snapshot", "source", s.src.Name(), "error", err)
	return stale, nil
}

// Last returns the stored tree for the wrapped source.
func (s *Snapshot) Last() (any, bool) {
	raw, err := os.ReadFile(s.path())
	if err != nil {
		return nil, false
	}
	data, err := Decode(JSON, raw)
	if err != nil {
		return nil, false
	}
	return data, true
}

func (s *Snapshot) store(data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("source: encode snapshot: %w", err)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("source: create snapshot dir %s: %w", s.dir, err)
	}
	return atomicWrite(s.path(), raw, s.dir)
}

// path names the snapshot file after a hash of the source name so any name
// is filesystem-safe.
func (s *Snapshot) path() string {
	h := sha256.Sum256([]byte(s.src.Name()))
	return filepath.Join(s.dir, hex.EncodeToString(h[:8])+".json")
}

// atomicWrite writes data to path through a temp file in tmpDir and a rename.
func atomicWrite(path string, data []byte, tmpDir string) error {
	tmp, err := os.CreateTemp(tmpDir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	success = true
	return nil
}
