package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gerrit-ai-review/gerrit-events/internal/config"
	"github.com/gerrit-ai-review/gerrit-events/internal/logger"
)

var (
	cfgFile string
	version string
)

// Execute runs the gerrit-events CLI
func Execute(ver string) error {
	version = ver
	cmd := NewRootCmd()
	cmd.Version = ver
	// The configured logger replaces the default one during the run
	defer func() { logger.Get().Close() }()
	return cmd.Execute()
}

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gerrit-events",
		Short: "Decode Gerrit stream-events",
		Long: `gerrit-events reads newline-delimited Gerrit stream-events JSON
(as produced by "ssh gerrit stream-events") from a file or stdin and maps each
line into typed change, patchset and account records.

Output is structured JSON by default; use --format text for one line per event.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), FormatErrorResponse(viper.GetString("output.format"), err.Error(), "CONFIG_ERROR"))
				return err
			}
			return ConfigureGlobalLogger(cfg)
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml or $HOME/.config/gerrit-events/config.yaml)")
	cmd.PersistentFlags().String("format", "json", "Output format: json or text")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().String("log-file", "", "Write logs to this file instead of stderr")

	// Bind flags to viper
	viper.BindPFlag("output.format", cmd.PersistentFlags().Lookup("format"))
	viper.BindPFlag("logging.verbose", cmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("logging.file", cmd.PersistentFlags().Lookup("log-file"))

	cmd.AddCommand(newParseCmd())
	cmd.AddCommand(newPatchsetCmd())

	return cmd
}
