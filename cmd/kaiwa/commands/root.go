package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/kaiwastudio/kaiwa/cmd/kaiwa/internal/config"
)

var (
	// Global flags
	verbose bool

	// Global configuration (loaded at init time)
	globalConfig *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "kaiwa",
	Short: "Voice agent CLI for the Kaiwa Studio platform",
	Long: `kaiwa - a command line voice agent.

Talk to the assistant over a realtime voice transport, trigger camera
and audio captures with spoken commands, and manage the Studio backend
(settings, long-term memory, simulator, calendar).

Configuration is stored in the OS config directory:
  macOS:   ~/Library/Application Support/kaiwa/
  Linux:   ~/.config/kaiwa/
  Windows: %AppData%/kaiwa/

Use 'kaiwa config' to manage contexts and service configurations.

Examples:
  # Create a context and configure the transport
  kaiwa config add-context dev
  kaiwa config use-context dev
  # then edit ~/.config/kaiwa/contexts/dev/vapi.yaml

  # Start a call
  kaiwa call

  # Inspect memory
  kaiwa memory list`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// configLoadErr stores the error from config.Load() for deferred
// reporting, so commands that never touch config still work.
var configLoadErr error

func initConfig() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))

	cfg, err := config.Load()
	if err != nil {
		configLoadErr = err
		return
	}
	globalConfig = cfg
}

// GetConfig returns the global configuration.
func GetConfig() (*config.Config, error) {
	if globalConfig == nil {
		if configLoadErr != nil {
			return nil, fmt.Errorf("config not available: %w", configLoadErr)
		}
		cfg, err := config.Load()
		if err != nil {
			return nil, fmt.Errorf("config not available: %w", err)
		}
		globalConfig = cfg
	}
	return globalConfig, nil
}

// IsVerbose returns whether verbose mode is enabled.
func IsVerbose() bool {
	return verbose
}

// resolveContextDir returns the service-config directory for the given
// context name, falling back to the current context.
func resolveContextDir(name string) (string, error) {
	cfg, err := GetConfig()
	if err != nil {
		return "", err
	}
	return cfg.ResolveContext(name)
}
