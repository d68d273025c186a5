package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/MacroPower/versionsync/pkg/config"
	"github.com/MacroPower/versionsync/pkg/log"
	"github.com/MacroPower/versionsync/pkg/paths"
	"github.com/MacroPower/versionsync/pkg/syncerrors"
)

var (
	ErrArgument         = errors.New("argument error")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrLogHandlerFailed = errors.New("log handler failed")
	ErrProjectNotFound  = errors.New("project not found")
)

func NewRootCmd(name, shortDesc, longDesc string) *cobra.Command {
	args := NewRootArgs()

	cmd := &cobra.Command{
		Use:           name,
		Short:         shortDesc,
		Long:          longDesc,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       GetVersionString(),
	}

	cmd.PersistentFlags().StringVar(args.logLevel, "log_level", "warn", "Set the log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(args.logFormat, "log_format", "text", "Set the log format (text, logfmt, json)")

	cmd.PersistentFlags().StringVarP(args.path, "path", "p", "", "Project root (default: closest directory with "+
		paths.ConfigFileName+" or git repository)")
	must(cmd.MarkPersistentFlagDirname("path"))

	cmd.PersistentFlags().StringVarP(args.config, "config", "c", "", "Configuration file (default: <project>/"+
		paths.ConfigFileName+")")
	must(cmd.MarkPersistentFlagFilename("config", "yaml", "yml"))

	cmd.PersistentPreRunE = func(cc *cobra.Command, _ []string) error {
		var merr error

		if _, err := log.ParseLevel(args.GetLogLevel()); err != nil {
			merr = multierror.Append(merr, fmt.Errorf("log_level: %w", err))
		}

		if _, err := log.ParseFormat(args.GetLogFormat()); err != nil {
			merr = multierror.Append(merr, fmt.Errorf("log_format: %w", err))
		}

		if merr != nil {
			return fmt.Errorf("%w: %w", ErrInvalidArgument, merr)
		}

		h, err := log.CreateHandlerWithStrings(
			cc.ErrOrStderr(),
			args.GetLogLevel(),
			args.GetLogFormat(),
		)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrLogHandlerFailed, err)
		}

		slog.SetDefault(slog.New(h))

		slog.Debug("ready to go")

		return nil
	}

	cmd.AddCommand(NewSetCmd(args))
	cmd.AddCommand(NewCurrentCmd(args))
	cmd.AddCommand(NewConfigCmd(args))
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// loadProject resolves the project root and its configuration from args.
func loadProject(args *RootArgs) (string, *config.Config, error) {
	root := args.GetPath()
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", nil, fmt.Errorf("%w: %w", ErrProjectNotFound, err)
		}

		root, err = paths.FindProjectRoot(wd)
		if errors.Is(err, syncerrors.ErrFileNotFound) {
			slog.Debug("no project root found, using working directory", slog.String("path", wd))

			root = wd
		} else if err != nil {
			return "", nil, fmt.Errorf("%w: %w", ErrProjectNotFound, err)
		}
	}

	var (
		cfg *config.Config
		err error
	)

	if args.GetConfig() != "" {
		cfg, err = config.Load(args.GetConfig())
	} else {
		cfg, err = config.LoadProject(root)
	}

	if err != nil {
		return "", nil, err
	}

	slog.Debug("loaded project",
		slog.String("root", root),
		slog.Int("targets", len(cfg.Targets)),
	)

	return root, cfg, nil
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
