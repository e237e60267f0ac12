// Package main is the entry point for the grindstone server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "grindstone",
	Short: "Grindstone game server",
	Long:  `Grindstone runs the incremental ARPG loop: enemy spawning, automatic combat, loot, and progression, persisted to Redis.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
