package primers

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/Worryingcow/Primer-Pairs/config"
	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"
)

var (
	// stderr is for logging to Stderr (without an annoying timestamp)
	stderr = log.New(os.Stderr, "", 0)
)

func init() {
	// table headers arrive hand-typed; trim and lowercase them
	// before matching against column names
	gocsv.SetHeaderNormalizer(func(h string) string {
		return strings.ToLower(strings.TrimSpace(h))
	})
}

// Flags contains parsed cobra flags like "primers", "samples", etc
// that are shared by the search and solve commands.
type Flags struct {
	// the path to the primer table (indexname, sequence, type)
	primers string

	// the path to a table of primer names to drop from the pools
	excluded string

	// the path to a table of previously used (forward, reverse) pairs
	used string

	// whether to also drop every primer named in the used-pair table
	dropUsed bool

	// the requested forward and reverse selection sizes
	numForward int
	numReverse int

	// the number of samples (unique pairs) to cover; when set, the
	// selection sizes are derived from it
	samples int

	// the path the JSON result is written to
	out string

	// the path the assigned pairs CSV is written to
	pairsOut string

	// the path the selected primers CSV is written to
	primersOut string
}

// inputParser contains methods for parsing the input tables named by
// a Flags.
type inputParser struct{}

// NewFlags makes a new flags object manually. for testing.
func NewFlags(
	primers, used, excluded, out, pairsOut, primersOut string,
	numForward, numReverse, samples int,
	dropUsed bool) *Flags {
	return &Flags{
		primers:    primers,
		used:       used,
		excluded:   excluded,
		out:        out,
		pairsOut:   pairsOut,
		primersOut: primersOut,
		numForward: numForward,
		numReverse: numReverse,
		samples:    samples,
		dropUsed:   dropUsed,
	}
}

// parseCmdFlags gathers the table paths and selection sizes from a
// cobra cmd object. returns Flags and a Config for Run.
func parseCmdFlags(cmd *cobra.Command) (*Flags, *config.Config) {
	c := config.New()
	fs := &Flags{}

	var err error
	if fs.primers, err = cmd.Flags().GetString("primers"); fs.primers == "" || err != nil {
		cmd.Help()
		stderr.Fatalln("\nno primer table passed.")
	}

	fs.excluded, _ = cmd.Flags().GetString("excluded")
	fs.used, _ = cmd.Flags().GetString("used")
	fs.dropUsed, _ = cmd.Flags().GetBool("drop-used")
	fs.numForward, _ = cmd.Flags().GetInt("forward")
	fs.numReverse, _ = cmd.Flags().GetInt("reverse")
	fs.samples, _ = cmd.Flags().GetInt("samples")
	fs.out, _ = cmd.Flags().GetString("out")
	fs.pairsOut, _ = cmd.Flags().GetString("pairs")
	fs.primersOut, _ = cmd.Flags().GetString("selected")

	if fs.samples == 0 && (fs.numForward == 0 || fs.numReverse == 0) {
		cmd.Help()
		stderr.Fatalln("\npass --samples or both --forward and --reverse.")
	}

	return fs, c
}

// primerRecord is one row of the primer table.
type primerRecord struct {
	Name string `csv:"indexname"`
	Seq  string `csv:"sequence"`
	Type string `csv:"type"`
}

// usedPairRecord is one row of the used-pair table.
type usedPairRecord struct {
	Forward string `csv:"forward"`
	Reverse string `csv:"reverse"`
}

// excludedRecord is one row of the excluded-name table.
type excludedRecord struct {
	Name string `csv:"indexname"`
}

// readPrimerTable splits the primer table into the forward and
// reverse name->sequence maps on its type column, matched
// case-insensitively. A name repeated within an orientation keeps the
// last row, like the spreadsheets the tables come from.
func (inputParser) readPrimerTable(path string) (forward, reverse map[string]string, err error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer fh.Close()

	var records []*primerRecord
	if err := gocsv.UnmarshalFile(fh, &records); err != nil {
		return nil, nil, fmt.Errorf("%s: %v", path, err)
	}

	forward = make(map[string]string)
	reverse = make(map[string]string)
	for _, r := range records {
		name := strings.TrimSpace(r.Name)
		seq := strings.TrimSpace(r.Seq)
		switch strings.ToLower(strings.TrimSpace(r.Type)) {
		case "forward":
			forward[name] = seq
		case "reverse":
			reverse[name] = seq
		default:
			return nil, nil, fmt.Errorf("%s: primer %s has unknown type %q", path, name, r.Type)
		}
	}

	return forward, reverse, nil
}

// readUsedPairs parses the used-pair table into (forward, reverse)
// name pairs.
func (inputParser) readUsedPairs(path string) ([][2]string, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	var records []*usedPairRecord
	if err := gocsv.UnmarshalFile(fh, &records); err != nil {
		return nil, fmt.Errorf("%s: %v", path, err)
	}

	pairs := make([][2]string, 0, len(records))
	for _, r := range records {
		pairs = append(pairs, [2]string{
			strings.TrimSpace(r.Forward),
			strings.TrimSpace(r.Reverse),
		})
	}
	return pairs, nil
}

// readExcluded parses the excluded-name table into a name set.
func (inputParser) readExcluded(path string) (map[string]bool, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	var records []*excludedRecord
	if err := gocsv.UnmarshalFile(fh, &records); err != nil {
		return nil, fmt.Errorf("%s: %v", path, err)
	}

	names := make(map[string]bool, len(records))
	for _, r := range records {
		names[strings.TrimSpace(r.Name)] = true
	}
	return names, nil
}

// usedNames collects every primer name appearing in the used pairs.
func usedNames(pairs [][2]string) map[string]bool {
	names := make(map[string]bool, 2*len(pairs))
	for _, p := range pairs {
		names[p[0]] = true
		names[p[1]] = true
	}
	return names
}

// Run executes one full selection: read the tables, build the pools,
// size the selection, run the requested selector, assign sample
// pairs, and write whatever outputs the flags name. exact picks
// between Solve and Search.
func Run(f *Flags, c *config.Config, exact bool) (*Output, error) {
	start := time.Now()
	p := inputParser{}

	forward, reverse, err := p.readPrimerTable(f.primers)
	if err != nil {
		return nil, err
	}
	pools, err := NewPools(forward, reverse, c.SequenceLength)
	if err != nil {
		return nil, err
	}

	if f.excluded != "" {
		excluded, err := p.readExcluded(f.excluded)
		if err != nil {
			return nil, err
		}
		if pools, err = pools.ApplyExclusions(excluded); err != nil {
			return nil, err
		}
	}

	var used [][2]string
	if f.used != "" {
		if used, err = p.readUsedPairs(f.used); err != nil {
			return nil, err
		}
		if f.dropUsed {
			if pools, err = pools.ApplyExclusions(usedNames(used)); err != nil {
				return nil, err
			}
			used = nil // nothing left to constrain against
		}
	}

	numForward, numReverse := f.numForward, f.numReverse
	requested := f.samples
	if requested > 0 {
		if err := checkSampleCapacity(pools, used, requested); err != nil {
			return nil, err
		}
		if numForward == 0 || numReverse == 0 {
			if numForward, numReverse, err = FitCounts(
				requested, pools.Size(Forward), pools.Size(Reverse)); err != nil {
				return nil, err
			}
		}
	} else {
		// without a sample count, every selected combination is a pair
		requested = numForward * numReverse
	}

	var sel *Selection
	algorithm := "search"
	if exact {
		algorithm = "solve"
		sel, err = Solve(pools, numForward, numReverse, used, c.SolverTolerance)
	} else {
		sel, err = Search(pools, numForward, numReverse, c.TrialBudget, c.Seed, c.Workers)
	}
	if err != nil {
		return nil, err
	}

	out := newOutput(algorithm, pools, sel, AssignPairs(pools, sel, requested), time.Since(start).Seconds())
	if err := p.write(f, out); err != nil {
		return nil, err
	}
	return out, nil
}

// checkSampleCapacity bounds a sample request by the number of unique
// unused combinations the pools can still form.
func checkSampleCapacity(pools *Pools, used [][2]string, requested int) error {
	capacity := pools.Size(Forward) * pools.Size(Reverse)
	for _, pair := range used {
		if pools.Has(Forward, pair[0]) && pools.Has(Reverse, pair[1]) {
			capacity--
		}
	}
	if requested <= capacity {
		return nil
	}

	tighter := Forward
	if pools.Size(Reverse) < pools.Size(Forward) {
		tighter = Reverse
	}
	return &InsufficientPoolError{tighter, requested, capacity}
}
