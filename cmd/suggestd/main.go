// Package main implements the suggestd CLI for running the suggestion
// pipeline over markdown notes.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/suggestd/internal/config"
	"github.com/fyrsmithlabs/suggestd/internal/logging"
	"github.com/fyrsmithlabs/suggestd/internal/note"
	"github.com/fyrsmithlabs/suggestd/internal/pipeline"
)

var (
	configPath      string
	noteID          string
	debug           bool
	initiativesPath string

	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "suggestd",
	Short: "Extract suggestions from markdown notes",
	Long: `suggestd runs the suggestion-extraction pipeline over free-form
markdown notes and prints the resulting suggestions as JSON.`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (YAML)")
	rootCmd.AddCommand(extractCmd)
}

// extractCmd runs the pipeline over one note read from a file or stdin.
var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Run the suggestion pipeline over a note",
	Long: `Run the suggestion pipeline over a markdown note and print the
output contract as JSON.

Examples:
  # Extract from a file
  suggestd extract meeting-notes.md

  # Extract from stdin
  cat note.md | suggestd extract -

  # Include the per-run debug ledger
  suggestd extract --debug note.md

  # Route against existing initiatives
  suggestd extract --initiatives initiatives.json note.md`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVar(&noteID, "note-id", "note", "note id recorded on output")
	extractCmd.Flags().BoolVar(&debug, "debug", false, "include the debug ledger in output")
	extractCmd.Flags().StringVar(&initiativesPath, "initiatives", "", "JSON file with initiative snapshots for routing")
}

func runExtract(cmd *cobra.Command, args []string) error {
	raw, err := readNote(args)
	if err != nil {
		return err
	}

	cfg, err := config.LoadWithFile(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if debug {
		cfg.EnableDebug = true
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	initiatives, err := readInitiatives(initiativesPath)
	if err != nil {
		return err
	}

	p := pipeline.New(pipeline.Options{Config: cfg, Logger: logger})
	res := p.Run(pipeline.NoteInput{
		NoteID:      noteID,
		RawMarkdown: raw,
		Initiatives: initiatives,
	})

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func readNote(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading note: %w", err)
	}
	return string(data), nil
}

func readInitiatives(path string) ([]note.InitiativeSnapshot, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading initiatives: %w", err)
	}
	var out []note.InitiativeSnapshot
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parsing initiatives: %w", err)
	}
	return out, nil
}
