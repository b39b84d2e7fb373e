package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/cosmospt/internal/client/config"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags and the resolved client configuration.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"

	Config *config.Config
	reader *bufio.Reader
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

func (o *RootOptions) input(cmd *cobra.Command) *bufio.Reader {
	if o.reader == nil {
		o.reader = bufio.NewReader(cmd.InOrStdin())
	}
	return o.reader
}

// NewRootCommand creates the root command for cosmosctl.
func NewRootCommand() (*cobra.Command, *RootOptions) {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "cosmosctl",
		Short:         "CosmosPT command-line client",
		Long:          "Play CosmosPT quizzes, missions and journeys from the terminal, and operate a CosmosPT deployment.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			cfg, err := loadClientConfig(cmd)
			if err != nil {
				return WrapExitError(ExitCommandError, "load config", err)
			}
			opts.Config = cfg
			return nil
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return WrapExitError(ExitCommandError, "invalid flags", err)
	})

	config.BindFlags(cmd.PersistentFlags())
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewRegisterCommand(opts))
	cmd.AddCommand(NewLoginCommand(opts))
	cmd.AddCommand(NewLogoutCommand(opts))
	cmd.AddCommand(NewProfileCommand(opts))
	cmd.AddCommand(NewCatalogCommand(opts))
	cmd.AddCommand(NewVisitCommand(opts))
	cmd.AddCommand(NewQuizCommand(opts))
	cmd.AddCommand(NewMissionCommand(opts))
	cmd.AddCommand(NewTravelCommand(opts))

	return cmd, opts
}

// Execute runs cosmosctl with args and returns the process exit code.
func Execute(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	cmd, opts := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	if err := cmd.ExecuteContext(ctx); err != nil {
		opts.formatter(cmd).Error(err)
		return GetExitCode(err)
	}
	return ExitSuccess
}

func loadClientConfig(cmd *cobra.Command) (cfg *config.Config, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	fs := cmd.Flags()
	path, err := fs.GetString(config.FlagConfig)
	if err != nil {
		return nil, err
	}

	cfg = config.LoadConfig(path)
	if err := config.ApplyFlags(cfg, fs); err != nil {
		return nil, err
	}
	return cfg, nil
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
