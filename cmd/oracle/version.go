package main

import (
	"fmt"

	"github.com/spf13/cobra"

	oracle "github.com/rio-ARC/Oracle-of-Delphi-Chatbot"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the oracle version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("oracle v%s\n", oracle.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
