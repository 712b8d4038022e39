package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/contract-cli/internal/search"
)

var (
	searchQuery string
	searchTopK  int
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Semantic search over indexed clauses",
	Long:  "Embeds the query and ranks previously indexed clauses by cosine similarity.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if cmd.Flags().Changed("top-k") {
			cfg.Search.TopK = searchTopK
		}
		if err := cfg.Validate("search"); err != nil {
			return err
		}
		if searchQuery == "" {
			return eris.New("search: --query is required")
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		entries, err := st.ListClauses(ctx)
		if err != nil {
			return eris.Wrap(err, "search: list clauses")
		}
		if len(entries) == 0 {
			fmt.Fprintln(os.Stderr, "No indexed clauses. Run analyze with --index first.")
			return nil
		}

		client, err := initMistral()
		if err != nil {
			return err
		}
		emb := search.NewMistralEmbedder(client)

		ix, err := search.BuildIndex(ctx, emb, entries)
		if err != nil {
			return err
		}

		matches, err := ix.Search(ctx, emb, searchQuery, cfg.Search.TopK)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "SCORE\tCONTRACT\tTYPE\tCLAUSE")
		for _, m := range matches {
			fmt.Fprintf(w, "%.3f\t%s\t%s\t%s\n",
				m.Score, m.Entry.ContractID, m.Entry.Type, snippet(m.Entry.Text, 80))
		}
		return w.Flush()
	},
}

func init() {
	searchCmd.Flags().StringVar(&searchQuery, "query", "", "natural-language search query")
	searchCmd.Flags().IntVar(&searchTopK, "top-k", 5, "number of results to return")
	rootCmd.AddCommand(searchCmd)
}

// snippet truncates s for single-line display.
func snippet(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
