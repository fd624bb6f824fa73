// Package main is the entry point for the pokequest CLI
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/pokequest/internal/config"
)

var (
	configPath string
	apiURL     string
	logLevel   string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "pokequest",
	Short: "PokeQuest encounter client",
	Long: `PokeQuest turns finished tasks into wild pokémon encounters.
This client opens an encounter at a location, throws a pokeball or flees,
and can run a local sandbox backend for development.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "backend base URL (overrides config and "+config.EnvAPIURL+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")

	rootCmd.AddCommand(encounterCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(sandboxCmd)
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if apiURL != "" {
		loaded.API.BaseURL = apiURL
	}
	if logLevel != "" {
		loaded.Log.Level = logLevel
	}
	if err := loaded.Validate(); err != nil {
		return err
	}

	cfg = loaded
	slog.SetDefault(newLogger(cfg.Log, cmd.ErrOrStderr()))
	return nil
}
