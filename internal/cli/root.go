package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"journal-backend/internal/config"
)

// Version is overridden at build time with -ldflags.
var Version = "dev"

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	addr       string
	logLevel   string
}

// loadConfig resolves the configuration, letting only flags the user
// actually set override the file and environment.
func (o *rootOptions) loadConfig(cmd *cobra.Command) (config.Config, error) {
	opts := config.LoadOptions{ConfigPath: o.configPath}
	if cmd.Flags().Changed("addr") {
		opts.Flags.Addr = &o.addr
	}
	if cmd.Flags().Changed("log-level") {
		opts.Flags.LogLevel = &o.logLevel
	}
	return config.Load(opts)
}

func NewRootCmd() *cobra.Command {
	ro := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "journal",
		Short:         "Trading journal backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&ro.configPath, "config", "", "Path to YAML config file (default journal.yaml)")
	cmd.PersistentFlags().StringVar(&ro.addr, "addr", "", "Listen address, e.g. :5000")
	cmd.PersistentFlags().StringVar(&ro.logLevel, "log-level", "", "Log level: debug|info|warn|error")

	cmd.AddCommand(
		newServeCmd(ro),
		newConfigCmd(ro),
	)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "journal %s\n", Version)
		},
	})

	return cmd
}

func Execute() {
	if err := run(NewRootCmd(), os.Args[1:], os.Stderr); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string, stderr io.Writer) error {
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return err
	}
	return nil
}
