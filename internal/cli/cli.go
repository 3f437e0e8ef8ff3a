// Package cli implements the offline target planning commands.
package cli

import (
	"io"
	"os"

	"github.com/Dan9191/commission-tracker/internal/config"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	reporter   *Reporter
	configPath string
	rootCmd    *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	cli := &CLI{reporter: NewReporter(opts.Output)}
	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

// SetArgs overrides os.Args, used by tests
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "targets",
		Short:         "Income target and persistency planning",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&cli.configPath, "config", "", "Path to an engine settings file (YAML, JSON or TOML)")

	cmd.AddCommand(NewCalculateCmd(cli.settings, cli.reporter))
	cmd.AddCommand(NewScenariosCmd(cli.settings, cli.reporter))
	return cmd
}

func (cli *CLI) settings() (config.EngineSettings, error) {
	return config.LoadEngineSettings(cli.configPath)
}
