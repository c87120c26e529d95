package cmd

import (
	"github.com/Worryingcow/Primer-Pairs/internal/primers"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// solveCmd represents the solve command
var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Select primers by exact optimization",
	Long: `Select primers by exact optimization.

"primer-pairs solve" formulates the selection as a binary integer
program: an inclusion variable per primer, a deviation variable per
(position, base), an objective minimizing the total deviation from a
uniform base composition, and equality constraints pinning the number
of forward and reverse primers selected. The program is solved exactly
by branch-and-bound over simplex relaxations.

A used-pair table forbids reselecting both members of a previously
used pair together; either member may still be selected alongside a
new partner. Pass --drop-used to instead retire every primer named in
the table.`,
	Run: primers.SolveCmd,
}

func init() {
	RootCmd.AddCommand(solveCmd)

	solveCmd.Flags().StringP("primers", "p", "", "path to a CSV of primers (indexname, sequence, type)")
	solveCmd.Flags().StringP("excluded", "x", "", "path to a CSV of primer names to leave out (indexname)")
	solveCmd.Flags().StringP("used", "u", "", "path to a CSV of used primer pairs (forward, reverse)")
	solveCmd.Flags().Bool("drop-used", false, "retire every primer named in the used-pair table")
	solveCmd.Flags().IntP("forward", "f", 0, "number of forward primers to select")
	solveCmd.Flags().IntP("reverse", "r", 0, "number of reverse primers to select")
	solveCmd.Flags().IntP("samples", "n", 0, "number of samples to cover with unique primer pairs")
	solveCmd.Flags().Float64("tolerance", 1e-10, "simplex tolerance for the relaxations")
	solveCmd.Flags().StringP("out", "o", "", "path to write the JSON result to")
	solveCmd.Flags().String("pairs", "", "path to write the assigned pairs CSV to")
	solveCmd.Flags().String("selected", "", "path to write the selected primers CSV to")

	solveCmd.MarkFlagRequired("primers")

	viper.BindPFlag("solver-tolerance", solveCmd.Flags().Lookup("tolerance"))
}
