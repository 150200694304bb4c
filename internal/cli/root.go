package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/smsgate/smsgate/internal/config"

	// Builtin providers register themselves on import.
	_ "github.com/smsgate/smsgate/internal/provider/kavenegar"
	_ "github.com/smsgate/smsgate/internal/provider/smsir"
	_ "github.com/smsgate/smsgate/internal/provider/sns"
)

var (
	buildVersion = "dev"
	buildCommit  = "none"
	buildDate    = "unknown"
)

// SetVersion is called from main to inject build-time version info.
func SetVersion(version, commit, date string) {
	buildVersion = version
	buildCommit = commit
	buildDate = date
}

var rootCmd = &cobra.Command{
	Use:   "smsgate",
	Short: "smsgate — pluggable SMS dispatch",
	Long: `smsgate sends SMS messages (single, bulk, verification-code) through a
provider backend named in the config file. With debug = true, or with no
debug key at all, messages go to the console instead of a live provider.

Send a message:
  smsgate send +15550001111 "hello" --config smsgate.toml`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String("config", "smsgate.toml", "Path to the TOML config file")

	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(bulkCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(providersCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func loadConfig(flags *pflag.FlagSet) (*config.Config, error) {
	path, err := flags.GetString("config")
	if err != nil {
		return nil, err
	}
	return config.Load(path)
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "smsgate %s (commit %s, built %s)\n",
			buildVersion, buildCommit, buildDate)
	},
}
