package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rio-ARC/Oracle-of-Delphi-Chatbot/internal/presentation/tui"
	"github.com/rio-ARC/Oracle-of-Delphi-Chatbot/pkg/ritual"
)

var consultCmd = &cobra.Command{
	Use:   "consult <message>",
	Short: "Ask the oracle a single question",
	Long: `Performs a one-shot consultation from the terminal. The oracle observes the
full ritual, including the contemplation pause, before revealing its prophecy.`,
	Args: cobra.MinimumNArgs(1),
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

		sessionID, _ := cmd.Flags().GetString("session")
		message := strings.Join(args, " ")

		tui.PrintBanner()
		fmt.Println("The oracle contemplates…")
		fmt.Println()

		prophecy, snap, err := engine.Consult(cmd.Context(), sessionID, message)
		if err != nil {
			fmt.Printf("The oracle is silent: %v\n", err)
			os.Exit(1)
		}

		render, err := tui.NewRenderer()
		if err != nil {
			// Fall back to plain text if the terminal renderer cannot start.
			fmt.Println(prophecy)
		} else {
			out, rerr := render(prophecy)
			if rerr != nil {
				fmt.Println(prophecy)
			} else {
				fmt.Print(out)
			}
		}

		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			fmt.Printf("\nsession=%s state=%s events=%d accepting=%t\n",
				snap.SessionID, snap.CurrentState, snap.HistoryLength, snap.AcceptingInput)
		} else if snap.CurrentState != ritual.StateComplete {
			fmt.Printf("\n(ritual ended in state %s)\n", snap.CurrentState)
		}
	},
}

func init() {
	rootCmd.AddCommand(consultCmd)
	consultCmd.Flags().StringP("session", "s", "default", "Session identifier")
	consultCmd.Flags().BoolP("verbose", "v", false, "Print ritual details after the prophecy")
}
