package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dealbench/internal/anonymize"
	"dealbench/internal/export"
	"dealbench/internal/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate <deal.json>...",
	Short: "Re-run the quality validator on exported deal documents",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		vocab, err := anonymize.DefaultVocabulary()
		if err != nil {
			return err
		}
		v := validate.New(vocab)

		invalid := 0
		for _, path := range args {
			d, err := export.ReadDeal(path)
			if err != nil {
				return err
			}
			res := v.Validate(d)
			if res.Valid() && len(res.Warnings) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d errors, %d warnings\n",
				path, len(res.Errors), len(res.Warnings))
			for _, e := range res.Errors {
				fmt.Fprintf(cmd.OutOrStdout(), "  error: %s\n", e)
			}
			for _, warn := range res.Warnings {
				fmt.Fprintf(cmd.OutOrStdout(), "  warning: %s\n", warn)
			}
			if !res.Valid() {
				invalid++
			}
		}
		if invalid > 0 {
			return fmt.Errorf("%d of %d documents invalid", invalid, len(args))
		}
		return nil
	},
}
