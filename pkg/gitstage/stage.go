// Package gitstage adds rewritten artifacts to the git index.
package gitstage

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

// ErrNotRepository indicates the project is not inside a git work tree.
var ErrNotRepository = errors.New("not a git repository")

// Stage adds each project-relative path under root to the index of the git
// repository enclosing root.
func Stage(root string, paths ...string) error {
	absRoot, err := resolve(root)
	if err != nil {
		return err
	}

	repo, err := git.PlainOpenWithOptions(absRoot, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return fmt.Errorf("%w: %s", ErrNotRepository, root)
	} else if err != nil {
		return fmt.Errorf("open repository: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("open worktree: %w", err)
	}

	wtRoot, err := resolve(wt.Filesystem.Root())
	if err != nil {
		return err
	}

	for _, p := range paths {
		rel, err := filepath.Rel(wtRoot, filepath.Join(absRoot, p))
		if err != nil {
			return fmt.Errorf("resolve %q in worktree: %w", p, err)
		}

		if _, err := wt.Add(filepath.ToSlash(rel)); err != nil {
			return fmt.Errorf("stage %q: %w", p, err)
		}

		slog.Debug("staged file", slog.String("path", filepath.ToSlash(rel)))
	}

	return nil
}

func resolve(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("get absolute path: %w", err)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("resolve symlinks: %w", err)
	}

	return resolved, nil
}
