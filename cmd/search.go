package cmd

import (
	"github.com/Worryingcow/Primer-Pairs/internal/primers"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Select primers by randomized search",
	Long: `Select primers by randomized search.

"primer-pairs search" repeatedly draws random subsets of the requested
sizes from the forward and reverse pools, scores each draw's combined
per-position base composition against a uniform ideal, and keeps the
best draw seen within the trial budget. The search is a heuristic: it
is fast for pools of any size but carries no optimality guarantee (see
"primer-pairs solve" for the exact program).

Results are reproducible for a fixed seed, trial budget, and worker
count.`,
	Run: primers.SearchCmd,
}

func init() {
	RootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringP("primers", "p", "", "path to a CSV of primers (indexname, sequence, type)")
	searchCmd.Flags().StringP("excluded", "x", "", "path to a CSV of primer names to leave out (indexname)")
	searchCmd.Flags().IntP("forward", "f", 0, "number of forward primers to select")
	searchCmd.Flags().IntP("reverse", "r", 0, "number of reverse primers to select")
	searchCmd.Flags().IntP("samples", "n", 0, "number of samples to cover with unique primer pairs")
	searchCmd.Flags().IntP("trials", "t", 10000, "number of random subsets to draw and score")
	searchCmd.Flags().Int64("seed", 1, "seed for the random source")
	searchCmd.Flags().Int("workers", 1, "worker goroutines to split the trials across")
	searchCmd.Flags().StringP("out", "o", "", "path to write the JSON result to")
	searchCmd.Flags().String("pairs", "", "path to write the assigned pairs CSV to")
	searchCmd.Flags().String("selected", "", "path to write the selected primers CSV to")

	searchCmd.MarkFlagRequired("primers")

	viper.BindPFlag("trial-budget", searchCmd.Flags().Lookup("trials"))
	viper.BindPFlag("seed", searchCmd.Flags().Lookup("seed"))
	viper.BindPFlag("workers", searchCmd.Flags().Lookup("workers"))
}
