package primers

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/gocarina/gocsv"
)

// Output is a struct containing the results of one selection run. It
// is written as JSON when an output path is passed and is the
// contract the CSV exports and the terminal report are built from.
type Output struct {
	// Time, ex: "2024-10-17 14:16:30"
	Time string `json:"time"`

	// Execution is the number of seconds it took to execute
	Execution float64 `json:"execution"`

	// Algorithm is "search" or "solve"
	Algorithm string `json:"algorithm"`

	// SequenceLength is the shared primer length
	SequenceLength int `json:"sequenceLength"`

	// Score is the selection's total deviation from uniform base
	// composition. For solve this is the solved objective value.
	Score float64 `json:"score"`

	// Forward and Reverse are the selected primers
	Forward []Primer `json:"forward"`
	Reverse []Primer `json:"reverse"`

	// Freq is the combined per-position A/T/C/G count table
	Freq [][4]int `json:"freq"`

	// Pairs are the assigned sample pairs
	Pairs []Pair `json:"pairs,omitempty"`

	// Requested and Assigned describe the pair assignment; Assigned
	// falling short of Requested is a capacity warning, not an error
	Requested int `json:"requested"`
	Assigned  int `json:"assigned"`
}

// newOutput assembles the Output for a finished selection.
func newOutput(algorithm string, pools *Pools, sel *Selection, assignment *Assignment, seconds float64) *Output {
	t := time.Now()

	out := &Output{
		Time: fmt.Sprintf(
			"%d/%02d/%02d %02d:%02d:%02d",
			t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(),
		),
		Execution:      seconds,
		Algorithm:      algorithm,
		SequenceLength: pools.Length(),
		Score:          sel.Score,
		Freq:           sel.Freq,
		Pairs:          assignment.Pairs,
		Requested:      assignment.Requested,
		Assigned:       len(assignment.Pairs),
	}
	for _, name := range sel.Forward {
		out.Forward = append(out.Forward, Primer{Name: name, Seq: pools.Seq(Forward, name)})
	}
	for _, name := range sel.Reverse {
		out.Reverse = append(out.Reverse, Primer{Name: name, Seq: pools.Seq(Reverse, name)})
	}

	return out
}

// write writes the outputs named by the flags: the JSON result
// bundle, the assigned pairs CSV, and the selected primers CSV.
func (p inputParser) write(f *Flags, out *Output) error {
	if f.out != "" {
		if err := writeJSON(f.out, out); err != nil {
			return err
		}
	}
	if f.pairsOut != "" {
		if err := writeCSV(f.pairsOut, &out.Pairs); err != nil {
			return err
		}
	}
	if f.primersOut != "" {
		selected := append(append([]Primer{}, out.Forward...), out.Reverse...)
		if err := writeCSV(f.primersOut, &selected); err != nil {
			return err
		}
	}
	return nil
}

// writeJSON writes the Output to the filename requested.
func writeJSON(filename string, out *Output) error {
	contents, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, contents, 0644)
}

// writeCSV marshals records (a pointer to a slice with csv tags) to
// the filename requested.
func writeCSV(filename string, records interface{}) error {
	fh, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer fh.Close()

	return gocsv.Marshal(records, fh)
}

// report prints the nucleotide frequency matrix and the score to w
// and warns on a pair-assignment shortfall.
func report(w io.Writer, out *Output) {
	writeMatrix(w, out.Freq)
	fmt.Fprintf(w, "\ntotal deviation: %.3f\n", out.Score)

	if short := out.Requested - out.Assigned; short > 0 {
		stderr.Printf(
			"warning: only %d of %d requested pairs could be assigned\n",
			out.Assigned, out.Requested,
		)
	}
}

// writeMatrix renders the frequency table with bases as rows,
// positions 1..L as columns, and a sum row, mirroring the matrix the
// selection is scored against.
func writeMatrix(w io.Writer, freq [][4]int) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprint(tw, "base")
	for p := range freq {
		fmt.Fprintf(tw, "\t%d", p+1)
	}
	fmt.Fprint(tw, "\n")

	for b := 0; b < 4; b++ {
		fmt.Fprintf(tw, "%c", Bases[b])
		for p := range freq {
			fmt.Fprintf(tw, "\t%d", freq[p][b])
		}
		fmt.Fprint(tw, "\n")
	}

	fmt.Fprint(tw, "sum")
	for p := range freq {
		total := 0
		for b := 0; b < 4; b++ {
			total += freq[p][b]
		}
		fmt.Fprintf(tw, "\t%d", total)
	}
	fmt.Fprint(tw, "\n")

	tw.Flush()
}
