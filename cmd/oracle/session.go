package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Inspect sessions on a running server",
}

var sessionLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List active sessions",
	Run: func(cmd *cobra.Command, args []string) {
		body, err := sessionRequest(cmd, http.MethodGet, "/sessions")
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		var out struct {
			Sessions []string `json:"sessions"`
		}
		if err := json.Unmarshal(body, &out); err != nil {
			fmt.Printf("Error: invalid server response: %v\n", err)
			os.Exit(1)
		}
		if len(out.Sessions) == 0 {
			fmt.Println("No active sessions.")
			return
		}
		for _, id := range out.Sessions {
			fmt.Println(id)
		}
	},
}

var sessionInspectCmd = &cobra.Command{
	Use:   "inspect <session-id>",
	Short: "Show the ritual state of a session",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		body, err := sessionRequest(cmd, http.MethodGet, "/sessions/"+args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		var out struct {
			CurrentState   string `json:"current_state"`
			SessionID      string `json:"session_id"`
			AcceptingInput bool   `json:"accepting_input"`
			HistoryLength  int    `json:"history_length"`
		}
		if err := json.Unmarshal(body, &out); err != nil {
			fmt.Printf("Error: invalid server response: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Session:   %s\n", out.SessionID)
		fmt.Printf("State:     %s\n", out.CurrentState)
		fmt.Printf("Accepting: %t\n", out.AcceptingInput)
		fmt.Printf("Events:    %d\n", out.HistoryLength)
	},
}

var sessionRmCmd = &cobra.Command{
	Use:   "rm <session-id>",
	Short: "Remove a session",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if _, err := sessionRequest(cmd, http.MethodDelete, "/sessions/"+args[0]); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Session %q removed.\n", args[0])
	},
}

func sessionRequest(cmd *cobra.Command, method, path string) ([]byte, error) {
	addr, _ := cmd.Flags().GetString("addr")

	req, err := http.NewRequestWithContext(cmd.Context(), method, addr+path, nil)
	if err != nil {
		return nil, err
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("reaching server at %s: %w", addr, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return body, nil
	case http.StatusNotFound:
		return nil, fmt.Errorf("session not found")
	default:
		return nil, fmt.Errorf("server returned %s", resp.Status)
	}
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionLsCmd, sessionInspectCmd, sessionRmCmd)
	sessionCmd.PersistentFlags().String("addr", "http://localhost:8000", "Base URL of a running oracle server")
}
