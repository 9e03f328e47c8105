package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-rpa/internal/config"
	"github.com/mj1618/desktop-rpa/internal/logger"
	"github.com/mj1618/desktop-rpa/internal/output"
	"github.com/mj1618/desktop-rpa/internal/version"
)

// cfg is the loaded configuration, available to all subcommands after
// PersistentPreRunE.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "desktop-rpa",
	Short: "Record and replay desktop actions",
	Long: `A desktop recorder that learns tasks from demonstration: it captures your
clicks and typed text together with descriptors of the UI elements involved,
and replays them later by re-locating each target on the live screen.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("config", "", "Config file path (default ~/.desktop-rpa/config.yaml)")
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		configPath, _ := rootCmd.PersistentFlags().GetString("config")
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded

		level := cfg.Settings.LogLevel
		if verbose, _ := rootCmd.PersistentFlags().GetBool("verbose"); verbose {
			level = "debug"
		}
		// The MCP server owns stdout and stderr; it silences the logger
		// itself in its RunE.
		if err := logger.Init(level, cfg.Settings.LogFile); err != nil {
			return err
		}

		format, _ := rootCmd.PersistentFlags().GetString("format")
		switch format {
		case "yaml":
			output.OutputFormat = output.FormatYAML
		case "json":
			output.OutputFormat = output.FormatJSON
		default:
			return fmt.Errorf("unsupported format: %s (use yaml or json)", format)
		}
		pretty, _ := rootCmd.PersistentFlags().GetBool("pretty")
		output.PrettyOutput = pretty

		return nil
	}
}
