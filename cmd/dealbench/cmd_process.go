package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"dealbench/internal/export"
	"dealbench/internal/pipeline"
)

var (
	processOut        string
	processAllowList  string
	processWorkers    int
	processDateOffset int
)

var processCmd = &cobra.Command{
	Use:   "process <deal-dir>...",
	Short: "Run the full pipeline over one or more deal directories",
	Long: "Process loads each deal directory (deal.json + artifacts.json), anonymizes\n" +
		"every artifact, segments the deal into checkpoints with ground truth and\n" +
		"tasks, validates, and exports the result under the output directory.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		publicIDs, err := export.LoadAllowList(processAllowList)
		if err != nil {
			return err
		}
		p, err := pipeline.New(pipeline.Options{
			OutputDir:  processOut,
			PublicIDs:  publicIDs,
			DateOffset: processDateOffset,
			Workers:    processWorkers,
		})
		if err != nil {
			return err
		}

		results := p.Run(cmd.Context(), args)

		runID := uuid.NewString()
		sum := p.Summarize(runID, time.Now().UTC().Format(time.RFC3339), results)
		if err := p.WriteSummary(sum); err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "Deal\tArtifacts\tCheckpoints\tTasks\tWarnings\tSplit\tStatus\n")
		fmt.Fprintf(w, "----\t---------\t-----------\t-----\t--------\t-----\t------\n")
		failed := 0
		for _, r := range results {
			status := "exported"
			if r.Err != nil {
				status = "FAILED: " + r.Err.Error()
				failed++
			}
			split := "private"
			if r.Path != "" && p.IsPublic(r.DealID) {
				split = "public"
			}
			name := r.DealID
			if name == "" {
				name = r.Dir
			}
			fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%s\t%s\n",
				name, r.ArtifactCount, r.CheckpointCount, r.TaskCount,
				len(r.Warnings), split, status)
		}
		w.Flush()
		fmt.Fprintf(cmd.OutOrStdout(), "\nRun %s: %d deals, %d failed\n", runID, len(results), failed)

		if failed > 0 {
			return fmt.Errorf("%d of %d deals failed", failed, len(results))
		}
		return nil
	},
}

func init() {
	processCmd.Flags().StringVarP(&processOut, "out", "o", "out", "Output directory")
	processCmd.Flags().StringVar(&processAllowList, "public", "", "YAML allow-list of public deal ids")
	processCmd.Flags().IntVar(&processWorkers, "workers", 4, "Max concurrent deals")
	processCmd.Flags().IntVar(&processDateOffset, "date-offset", 0, "Days to shift every date during anonymization")
}
