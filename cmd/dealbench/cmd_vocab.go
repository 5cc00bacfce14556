package main

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"dealbench/internal/anonymize"
)

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "List the anonymization replacement vocabulary",
	RunE: func(cmd *cobra.Command, args []string) error {
		vocab, err := anonymize.DefaultVocabulary()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "Kind\tTarget\tReplacement\n")
		fmt.Fprintf(w, "----\t------\t-----------\n")
		printTable(w, "company", vocab.Companies)
		printTable(w, "person", vocab.People)
		w.Flush()

		fmt.Fprintf(cmd.OutOrStdout(), "\n%d companies, %d people\n",
			len(vocab.Companies), len(vocab.People))
		return nil
	},
}

func printTable(w *tabwriter.Writer, kind string, table map[string]string) {
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "%s\t%s\t%s\n", kind, k, table[k])
	}
}
