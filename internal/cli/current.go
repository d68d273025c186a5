package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MacroPower/versionsync/pkg/config"
	"github.com/MacroPower/versionsync/pkg/manifest"
	"github.com/MacroPower/versionsync/pkg/render"
	"github.com/MacroPower/versionsync/pkg/syncerrors"
)

var ErrVersionDisagreement = errors.New("artifacts disagree on the version")

// NewCurrentCmd returns the current command.
func NewCurrentCmd(arg *RootArgs) *cobra.Command {
	return &cobra.Command{
		Use:          "current",
		Short:        "Show the version recorded in the manifest and properties file",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, cfg, err := loadProject(arg)
			if err != nil {
				return err
			}

			versions, err := currentVersions(root, cfg)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			seen := map[string]bool{}

			for _, v := range versions {
				fmt.Fprintf(tw, "%s\t%s\n", v.path, v.version)

				seen[v.version] = true
			}

			if err := tw.Flush(); err != nil {
				return fmt.Errorf("%w: %w", syncerrors.ErrWrite, err)
			}

			if len(seen) > 1 {
				return ErrVersionDisagreement
			}

			return nil
		},
	}
}

type recordedVersion struct {
	path    string
	version string
}

func currentVersions(root string, cfg *config.Config) ([]recordedVersion, error) {
	versions := []recordedVersion{}

	for _, t := range cfg.Targets {
		full := filepath.Join(root, filepath.FromSlash(t.Path))

		switch t.Format {
		case render.FormatManifest:
			m, err := manifest.Load(full)
			if err != nil {
				return nil, err
			}

			v, err := m.Version()
			if err != nil {
				return nil, fmt.Errorf("%s: %w", t.Path, err)
			}

			versions = append(versions, recordedVersion{path: t.Path, version: v})
		case render.FormatProperties:
			b, err := os.ReadFile(full)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", syncerrors.ErrReadFile, err)
			}

			key := render.NewPropertiesRenderer(t.Key).Key

			v, err := render.ReadProperty(string(b), key)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", t.Path, err)
			}

			versions = append(versions, recordedVersion{path: t.Path, version: v})
		default:
			slog.Debug("skipping target without a readable version", slog.String("path", t.Path))
		}
	}

	return versions, nil
}
