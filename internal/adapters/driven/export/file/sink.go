// Package file implements the export sink on the local filesystem.
// Artifacts are written to a temp file and renamed into place so a
// failed write never leaves a readable partial artifact.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pipedata/curator/internal/core/domain"
	"github.com/pipedata/curator/internal/core/ports/driven"
)

// Ensure Sink implements the interface.
var _ driven.ExportSink = (*Sink)(nil)

// Sink writes export artifacts into a directory.
type Sink struct {
	dir string
}

// NewSink creates a sink rooted at dir. If dir is empty, defaults to
// ~/.curator/exports.
func NewSink(dir string) (*Sink, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, ".curator", "exports")
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating export directory: %w", err)
	}

	return &Sink{dir: dir}, nil
}

// Dir returns the export directory.
func (s *Sink) Dir() string {
	return s.dir
}

// Write persists content under name and returns the artifact path.
func (s *Sink) Write(ctx context.Context, name string, content []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	target := filepath.Join(s.dir, name)

	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("%w: creating temp artifact: %v", domain.ErrStorage, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("%w: writing artifact: %v", domain.ErrStorage, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("%w: closing artifact: %v", domain.ErrStorage, err)
	}

	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("%w: placing artifact: %v", domain.ErrStorage, err)
	}

	return target, nil
}
