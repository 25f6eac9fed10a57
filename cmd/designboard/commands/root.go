package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/panyam/designboard/services"
)

var (
	configPath string
	envFile    string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "designboard",
	Short: "designboard renders and serves system design boards",
	Long: `designboard is the command line host of the design board editor. It replays
scripted editor events, renders the resulting board as SVG, Excalidraw,
Mermaid or DOT, and serves boards over HTTP for local previews.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadEnv(); err != nil {
			return err
		}
		slog.SetDefault(services.NewLogger(os.Stderr, verbose || services.IsDev()))
		return nil
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Editor config file (default: $DESIGNBOARD_CONFIG or designboard.toml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Env file to load (default: .env, or .env.dev when DESIGNBOARD_ENV=dev)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
}

// loadEnv loads the env file. Only an explicitly named file has to exist.
func loadEnv() error {
	path := envFile
	if path == "" {
		path = ".env"
		if services.IsDev() {
			path = ".env.dev"
		}
		if _, err := os.Stat(path); err != nil {
			return nil
		}
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("error loading env file '%s': %w", path, err)
	}
	return nil
}

func loadConfig() (*services.Config, error) {
	return services.LoadConfig(services.ConfigPath(configPath))
}
