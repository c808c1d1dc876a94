package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rio-ARC/Oracle-of-Delphi-Chatbot/internal/config"
	"github.com/rio-ARC/Oracle-of-Delphi-Chatbot/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "oracle",
	Short: "Oracle of Delphi, an AI oracle with ritual pacing",
	Long: `The oracle answers questions with prophetic restraint. Every consultation
is paced by a ritual state machine so the answer arrives after a deliberate
contemplation window, however fast the model actually was.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to oracle.yaml (default: ./oracle.yaml if present)")
}

// loadConfig reads the config selected by the --config flag.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

// newLogger builds the application logger from config.
func newLogger(cfg config.Config) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, err
	}
	return logging.New(level), nil
}
