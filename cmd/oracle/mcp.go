package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpAdapter "github.com/rio-ARC/Oracle-of-Delphi-Chatbot/pkg/adapters/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the oracle over the Model Context Protocol",
	Long: `Exposes the oracle as MCP tools over stdio so that agent hosts can consult
it and inspect ritual state.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Printf("Config error: %v\n", err)
			os.Exit(1)
		}
		logger, err := newLogger(cfg)
		if err != nil {
			fmt.Printf("Config error: %v\n", err)
			os.Exit(1)
		}

		engine, cleanup, err := buildOracle(cfg, logger, nil)
		if err != nil {
			fmt.Printf("Error initializing oracle: %v\n", err)
			os.Exit(1)
		}
		defer cleanup()

		logger.Info("mcp server starting", "transport", "stdio")
		if err := mcpAdapter.NewServer(engine).ServeStdio(); err != nil {
			fmt.Printf("MCP server error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
