// Package snapshot copies artifacts to a scratch directory before they are
// rewritten, so their previous contents can be diffed afterwards.
//
// Snapshot directories are never removed automatically. They are kept for
// manual inspection after a run.
package snapshot

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/otiai10/copy"

	"github.com/MacroPower/versionsync/pkg/syncerrors"
)

// Snapshot is a scratch directory mirroring a subset of a project tree.
type Snapshot struct {
	// Root is the project directory the files were copied from.
	Root string
	// Dir is the scratch directory holding the copies.
	Dir string
	// Saved lists the project-relative paths that were copied.
	Saved []string
}

// New creates a fresh, uniquely named scratch directory under baseDir (or the
// system temporary directory if baseDir is empty).
func New(root, baseDir string) (*Snapshot, error) {
	if baseDir == "" {
		baseDir = os.TempDir()
	}

	dir := filepath.Join(baseDir, "versionsync-"+uuid.NewString())
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("%w: create snapshot directory: %w", syncerrors.ErrWriteFile, err)
	}

	return &Snapshot{Root: root, Dir: dir}, nil
}

// SaveFiles copies each project-relative path into the snapshot directory,
// keeping its relative layout. Paths that do not exist yet are skipped and
// read back as empty.
func (s *Snapshot) SaveFiles(paths ...string) error {
	for _, p := range paths {
		src := filepath.Join(s.Root, p)
		dst := filepath.Join(s.Dir, p)

		if _, err := os.Stat(src); errors.Is(err, fs.ErrNotExist) {
			slog.Warn("skipping snapshot of missing file", slog.String("path", p))

			continue
		}

		if err := copy.Copy(src, dst); err != nil {
			return fmt.Errorf("%w: snapshot %q: %w", syncerrors.ErrWriteFile, p, err)
		}

		s.Saved = append(s.Saved, p)
	}

	slog.Debug("saved snapshot",
		slog.String("dir", s.Dir),
		slog.Int("files", len(s.Saved)),
	)

	return nil
}

// Read returns the snapshotted contents of a project-relative path. A path
// that was not saved reads as empty.
func (s *Snapshot) Read(p string) (string, error) {
	b, err := os.ReadFile(filepath.Join(s.Dir, p))
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	} else if err != nil {
		return "", fmt.Errorf("%w: %w", syncerrors.ErrReadFile, err)
	}

	return string(b), nil
}

// SaveFiles creates a snapshot of paths under targetDir.
func SaveFiles(root, targetDir string, paths ...string) (*Snapshot, error) {
	s := &Snapshot{Root: root, Dir: targetDir}
	if err := os.MkdirAll(targetDir, 0o750); err != nil {
		return nil, fmt.Errorf("%w: create snapshot directory: %w", syncerrors.ErrWriteFile, err)
	}

	if err := s.SaveFiles(paths...); err != nil {
		return nil, err
	}

	return s, nil
}
