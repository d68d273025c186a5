package manifest

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	vsos "github.com/MacroPower/versionsync/pkg/os"
	"github.com/MacroPower/versionsync/pkg/syncerrors"
)

// TemplateUpdater writes dependency versions into the template package
// manifest consumed by newly generated projects.
type TemplateUpdater interface {
	UpdateTemplatePackage(versions map[string]string) error
}

// FileTemplateUpdater updates the template manifest at Path in process.
type FileTemplateUpdater struct {
	Path string
}

func NewFileTemplateUpdater(path string) *FileTemplateUpdater {
	return &FileTemplateUpdater{Path: path}
}

// UpdateTemplatePackage applies versions to the template manifest's
// dependency sections and rewrites the file.
func (u *FileTemplateUpdater) UpdateTemplatePackage(versions map[string]string) error {
	m, err := Load(u.Path)
	if err != nil {
		return fmt.Errorf("load template manifest: %w", err)
	}

	updated, applied, err := m.ApplyVersions(versions)
	if err != nil {
		return fmt.Errorf("apply versions to %q: %w", u.Path, err)
	}

	slog.Debug("updating template manifest",
		slog.String("path", u.Path),
		slog.Any("applied", applied),
	)

	if err := os.WriteFile(u.Path, updated.Bytes(), 0o644); err != nil { //nolint:gosec // Manifests are world-readable.
		return fmt.Errorf("%w: %w", syncerrors.ErrWriteFile, err)
	}

	return nil
}

// ExecTemplateUpdater delegates the template manifest update to an external
// command. The version map is passed as a JSON object in the final argument.
type ExecTemplateUpdater struct {
	Dir     string
	Command []string
}

func NewExecTemplateUpdater(dir string, command []string) *ExecTemplateUpdater {
	return &ExecTemplateUpdater{Dir: dir, Command: command}
}

func (u *ExecTemplateUpdater) UpdateTemplatePackage(versions map[string]string) error {
	if len(u.Command) == 0 {
		return fmt.Errorf("%w: empty template updater command", syncerrors.ErrInvalidArguments)
	}

	b, err := json.Marshal(versions)
	if err != nil {
		return fmt.Errorf("%w: %w", syncerrors.ErrJSONMarshal, err)
	}

	args := append(append([]string{}, u.Command[1:]...), string(b))

	slog.Debug("running template updater",
		slog.String("command", u.Command[0]),
		slog.String("dir", u.Dir),
	)

	out, err := vsos.Exec(u.Command[0], args, vsos.ExecOptions{Dir: u.Dir})
	if err != nil {
		return fmt.Errorf("update template package: %w", err)
	}

	if out.Stderr != "" {
		slog.Debug("template updater stderr", slog.String("stderr", out.Stderr))
	}

	return nil
}
