package main

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/log"
)

// NewBatchCmd creates the batch command.
func NewBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch --list <file>",
		Short: "Extract recipes from a list of YouTube URLs",
		Long: `Batch extracts recipes from every YouTube URL in a list file.

The file contains one URL per line. Blank lines and lines starting
with # are ignored. Videos already in the recipe store are skipped, so
re-running a grown list only extracts the new videos.

Examples:
  # Extract everything in a watch-later list
  kitchenos batch --list videos.txt

  # Slow down between videos
  kitchenos batch --list videos.txt --delay 10s`,
		Args: cobra.NoArgs,
		RunE: runBatchCmd,
	}

	addExtractFlags(cmd)
	cmd.Flags().StringP("list", "l", "", "File with one YouTube URL per line (required)")

	return cmd
}

// runBatchCmd executes the batch command.
func runBatchCmd(cmd *cobra.Command, _ []string) error {
	listPath, err := cmd.Flags().GetString("list")
	if err != nil {
		return err
	}
	if listPath == "" {
		return errors.New("batch requires --list with a file of YouTube URLs")
	}

	urls, err := readURLList(listPath)
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return fmt.Errorf("no URLs found in %s", listPath)
	}

	cfg, err := buildConfig(cmd, urls)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewSanitizedLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := signalContext(logger)
	defer cancel()

	return runExtraction(ctx, cfg, logger)
}

// readURLList reads a URL list file, skipping blanks and # comments.
func readURLList(path string) ([]string, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided list path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open list file: %w", err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read list file: %w", err)
	}
	return urls, nil
}
