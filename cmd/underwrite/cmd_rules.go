package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lendcore/underwrite/internal/domain"
)

func newRulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect program rule sets",
	}
	cmd.AddCommand(newRulesListCmd(), newRulesShowCmd())
	return cmd
}

func newRulesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List known loan programs",
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

			ids, err := store.ListPrograms(cmd.Context())
			if err != nil {
				return err
			}
			for _, id := range ids {
				rs, err := store.GetProgramRuleSet(cmd.Context(), id)
				if err != nil {
					return err
				}
				fmt.Printf("%-14s %-32s min credit %d, min down %.1f%%, max DTI %.0f/%.0f\n",
					rs.ProgramID, rs.Name, rs.MinCreditScore, rs.MinDownPaymentPct,
					rs.MaxFrontEndDTI, rs.MaxBackEndDTI)
			}
			return nil
		},
	}
}

func newRulesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <program-id>",
		Short: "Print one program's full rule set as JSON",
		Args:  cobra.ExactArgs(1),
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

			rs, err := store.GetProgramRuleSet(cmd.Context(), domain.ProgramID(args[0]))
			if err != nil {
				return err
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(rs)
		},
	}
}
