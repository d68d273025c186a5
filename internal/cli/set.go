package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/MacroPower/versionsync/pkg/buildversion"
	"github.com/MacroPower/versionsync/pkg/gitstage"
	"github.com/MacroPower/versionsync/pkg/propagate"
	"github.com/MacroPower/versionsync/pkg/report"
)

const (
	setDesc = `This command writes a version into every versioned artifact of the
project: the source constant files, the package manifests and the build
properties file. Changed files are then checked against a snapshot taken
before the run.

A failed check is reported as a warning and does not change the exit status.
`
	setExample = `  # Bump to a release candidate
  versionsync set --to-version 0.75.0-rc.1 --build-type release

  # Nightly build, overriding dependency versions
  versionsync set --to-version 0.0.0-nightly-20240701-abc1234 --build-type nightly \
    --dependency-versions '{"@react-native/codegen":"0.0.0-nightly-20240701-abc1234"}'
`
)

var (
	ErrSetFailed   = errors.New("set version failed")
	ErrStageFailed = errors.New("staging failed")
)

// NewSetCmd returns the set command.
func NewSetCmd(arg *RootArgs) *cobra.Command {
	args := NewSetArgs(arg)

	cmd := &cobra.Command{
		Use:          "set",
		Short:        "Set the version of every artifact",
		Long:         setDesc,
		Example:      setExample,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var merr error

			buildType, err := buildversion.ParseBuildType(args.GetBuildType())
			if err != nil {
				merr = multierror.Append(merr, fmt.Errorf("build-type: %w", err))
			}

			deps, err := args.GetDependencyVersions()
			if err != nil {
				merr = multierror.Append(merr, fmt.Errorf("dependency-versions: %w", err))
			}

			format, err := report.ParseFormat(args.GetOutput())
			if err != nil {
				merr = multierror.Append(merr, fmt.Errorf("output: %w", err))
			}

			if merr != nil {
				return fmt.Errorf("%w: %w", ErrInvalidArgument, merr)
			}

			root, cfg, err := loadProject(args.RootArgs)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrSetFailed, err)
			}

			p, err := propagate.New(root, cfg)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrSetFailed, err)
			}

			printer := report.NewPrinter(cmd.OutOrStdout(), report.WithDiff(args.GetDiff()))
			if !args.GetQuiet() && format == report.FormatText && report.IsTerminal(cmd.OutOrStdout()) {
				p.Subscribe(printer.Event)
			}

			res, err := p.Propagate(args.GetToVersion(), deps, buildType)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrSetFailed, err)
			}

			if args.GetStage() {
				if err := gitstage.Stage(p.Root(), res.Written...); err != nil {
					return fmt.Errorf("%w: %w", ErrStageFailed, err)
				}
			}

			if args.GetQuiet() {
				return nil
			}

			return printer.Print(res, format)
		},
	}

	cmd.Flags().StringVar(args.toVersion, "to-version", "", "Version to set, e.g. 0.75.0-rc.1")
	must(cmd.MarkFlagRequired("to-version"))

	cmd.Flags().StringVarP(args.buildType, "build-type", "b", "",
		"Build type ("+strings.Join(buildTypeNames(), ", ")+")")
	must(cmd.MarkFlagRequired("build-type"))
	must(cmd.RegisterFlagCompletionFunc("build-type", cobra.FixedCompletions(buildTypeNames(), cobra.ShellCompDirectiveNoFileComp)))

	cmd.Flags().StringVarP(args.dependencyVersions, "dependency-versions", "d", "",
		"JSON object of package name to version overrides")
	cmd.Flags().BoolVar(args.stage, "stage", false, "Stage written files in the git repository")
	cmd.Flags().BoolVar(args.diff, "diff", false, "Show the diff of each verified file")
	cmd.Flags().StringVarP(args.output, "output", "o", "text", "Output format (text, json, yaml)")
	cmd.Flags().BoolVarP(args.quiet, "quiet", "q", false, "Run in quiet mode")

	return cmd
}

// SetArgs holds the arguments for the set command.
type SetArgs struct {
	toVersion          *string
	buildType          *string
	dependencyVersions *string
	output             *string
	stage              *bool
	diff               *bool
	quiet              *bool
	*RootArgs
}

// NewSetArgs creates a new [SetArgs].
func NewSetArgs(args *RootArgs) *SetArgs {
	return &SetArgs{
		toVersion:          new(string),
		buildType:          new(string),
		dependencyVersions: new(string),
		output:             new(string),
		stage:              new(bool),
		diff:               new(bool),
		quiet:              new(bool),
		RootArgs:           args,
	}
}

func (a *SetArgs) GetToVersion() string {
	return *a.toVersion
}

func (a *SetArgs) GetBuildType() string {
	return *a.buildType
}

// GetDependencyVersions decodes the dependency overrides. An empty flag
// yields a nil map, meaning no overrides.
func (a *SetArgs) GetDependencyVersions() (map[string]string, error) {
	raw := strings.TrimSpace(*a.dependencyVersions)
	if raw == "" {
		return nil, nil
	}

	deps := map[string]string{}
	if err := json.Unmarshal([]byte(raw), &deps); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrArgument, err)
	}

	return deps, nil
}

func (a *SetArgs) GetOutput() string {
	return *a.output
}

func (a *SetArgs) GetStage() bool {
	return *a.stage
}

func (a *SetArgs) GetDiff() bool {
	return *a.diff
}

func (a *SetArgs) GetQuiet() bool {
	return *a.quiet
}

func buildTypeNames() []string {
	names := make([]string, 0, len(buildversion.BuildTypes))
	for _, bt := range buildversion.BuildTypes {
		names = append(names, bt.String())
	}

	return names
}
