package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/fang"
	"github.com/specialistvlad/powerlora/internal/app"
	"github.com/specialistvlad/powerlora/internal/config"
	"github.com/spf13/cobra"
)

// options holds the persistent flag values and the App they configure.
type options struct {
	configFile string
	output     string
	logW       io.Writer

	app *app.App
}

// NewRootCmd builds the command tree. Results go to the command's output
// writer and logs to logW.
func NewRootCmd(logW io.Writer) *cobra.Command {
	opts := &options{logW: logW}

	root := &cobra.Command{
		Use:   config.AppName,
		Short: "Resolve and chain LoRA lists for WanVideo workflows",
		Long: `powerlora resolves loosely written LoRA names against a model catalog and
evaluates chains of WanVideo Power Lora Loader nodes.

Examples:
  powerlora resolve anime               Resolve one name
  powerlora list                        List the LoRA catalog
  powerlora run grid.hcl                Evaluate a grid of loader nodes
  powerlora inspect prompt.json         Show enabled LoRAs of a saved workflow`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: opts.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "config file (default is ./powerlora.{yaml,toml,json} when present)")
	flags.StringVarP(&opts.output, "output", "o", FormatTable, "output format: 'table', 'json' or 'yaml'")
	flags.String("log-level", "info", "set the logging level: 'debug', 'info', 'warn' or 'error'")
	flags.String("log-format", "text", "log output format: 'text' or 'json'")
	flags.StringSlice("lora-dir", nil, "directory holding LoRA files; repeatable")
	flags.String("manifest", "", "YAML catalog manifest of name/path entries")

	root.AddCommand(
		newResolveCmd(opts),
		newListCmd(opts),
		newRunCmd(opts),
		newInspectCmd(opts),
	)
	return root
}

// setup loads settings and builds the App before any subcommand runs.
func (o *options) setup(cmd *cobra.Command, _ []string) error {
	if err := validFormat(o.output); err != nil {
		return &ExitError{Code: 2, Err: err}
	}

	settings, err := config.LoadSettings(config.LoadOptions{
		ConfigFile: o.configFile,
		SearchDirs: []string{"."},
		Flags:      cmd.Flags(),
	})
	if err != nil {
		return &ExitError{Code: 2, Err: err}
	}

	a, err := app.NewApp(o.logW, settings)
	if err != nil {
		return err
	}
	o.app = a
	return nil
}

// Execute runs the command line through fang.
func Execute(ctx context.Context, args []string, outW, errW io.Writer, version string) error {
	root := NewRootCmd(errW)
	root.SetArgs(args)
	root.SetOut(outW)
	root.SetErr(errW)
	return fang.Execute(ctx, root, fang.WithVersion(version))
}
