package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lendcore/underwrite/internal/engine"
)

func newEvaluateCmd() *cobra.Command {
	var (
		inputPath  string
		jsonOutput bool
		timeout    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate one loan request from a file",
		Long:  "Reads a borrower profile and loan scenario from a YAML or JSON file and prints the full qualification and underwriting outcome.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, cleanup, err := buildStore(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			eng, err := buildEngine(cfg, store, nil)
			if err != nil {
				return err
			}

			req, err := readRequest(inputPath)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			out, err := eng.Evaluate(ctx, req)
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}
			fmt.Print(out.Report())
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Request file (YAML or JSON)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the full outcome as JSON")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Evaluation timeout")
	cmd.MarkFlagRequired("input")
	return cmd
}

// readRequest parses the request file, trying JSON first and YAML second.
func readRequest(path string) (*engine.Request, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read request: %w", err)
	}

	var req engine.Request
	if jerr := json.Unmarshal(raw, &req); jerr == nil {
		return &req, nil
	}
	if yerr := yaml.Unmarshal(raw, &req); yerr != nil {
		return nil, fmt.Errorf("parse request %s: %w", path, yerr)
	}
	return &req, nil
}
