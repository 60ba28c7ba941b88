// Package main provides the entry point for the KitchenOS CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for KitchenOS.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kitchenos",
		Short: "Extract structured recipes from YouTube cooking videos",
		Long: `KitchenOS extracts structured recipes from YouTube cooking videos.

It tries the highest-fidelity source first: a recipe page linked from the
description, then the description text itself, and finally LLM extraction
from the video transcript via a local Ollama instance. Every ingredient
line is normalized into a canonical amount, unit, and item.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewExtractCmd())
	cmd.AddCommand(NewBatchCmd())
	cmd.AddCommand(NewShoppingListCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
