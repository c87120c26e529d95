package primers

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// writeTemp writes contents to a file under the test's temp dir.
func writeTemp(t *testing.T, name, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func Test_readPrimerTable(t *testing.T) {
	p := inputParser{}

	t.Run("splits on type and survives messy headers", func(t *testing.T) {
		path := writeTemp(t, "primers.csv",
			" IndexName , Sequence , Type \n"+
				"F1,AAAATTTT,Forward\n"+
				"F2,CCCCGGGG,forward\n"+
				"R1,TTTTAAAA,REVERSE\n"+
				"R2,GGGGCCCC,reverse\n",
		)

		forward, reverse, err := p.readPrimerTable(path)
		if err != nil {
			t.Fatal(err)
		}

		wantF := map[string]string{"F1": "AAAATTTT", "F2": "CCCCGGGG"}
		wantR := map[string]string{"R1": "TTTTAAAA", "R2": "GGGGCCCC"}
		if !reflect.DeepEqual(forward, wantF) {
			t.Errorf("forward = %v, want %v", forward, wantF)
		}
		if !reflect.DeepEqual(reverse, wantR) {
			t.Errorf("reverse = %v, want %v", reverse, wantR)
		}
	})

	t.Run("duplicate names keep the last row", func(t *testing.T) {
		path := writeTemp(t, "primers.csv",
			"indexname,sequence,type\n"+
				"F1,AAAATTTT,forward\n"+
				"F1,CCCCGGGG,forward\n"+
				"R1,TTTTAAAA,reverse\n",
		)

		forward, _, err := p.readPrimerTable(path)
		if err != nil {
			t.Fatal(err)
		}
		if forward["F1"] != "CCCCGGGG" {
			t.Errorf("forward[F1] = %q, want the last row's sequence", forward["F1"])
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		path := writeTemp(t, "primers.csv",
			"indexname,sequence,type\n"+
				"F1,AAAATTTT,sideways\n",
		)

		if _, _, err := p.readPrimerTable(path); err == nil {
			t.Errorf("readPrimerTable() accepted an unknown primer type")
		}
	})
}

func Test_readUsedPairs(t *testing.T) {
	p := inputParser{}
	path := writeTemp(t, "used.csv",
		"Forward,Reverse\n"+
			"F1,R1\n"+
			" F2 , R2 \n",
	)

	pairs, err := p.readUsedPairs(path)
	if err != nil {
		t.Fatal(err)
	}

	want := [][2]string{{"F1", "R1"}, {"F2", "R2"}}
	if !reflect.DeepEqual(pairs, want) {
		t.Errorf("readUsedPairs() = %v, want %v", pairs, want)
	}
}

func Test_readExcluded(t *testing.T) {
	p := inputParser{}
	path := writeTemp(t, "excluded.csv",
		"indexname\n"+
			"F1\n"+
			"R2\n",
	)

	names, err := p.readExcluded(path)
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]bool{"F1": true, "R2": true}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("readExcluded() = %v, want %v", names, want)
	}
}

func Test_checkSampleCapacity(t *testing.T) {
	pools := testPools(t,
		map[string]string{"F1": "AAAA", "F2": "TTTT"},
		map[string]string{"R1": "CCCC", "R2": "GGGG"},
	)

	// 2x2 pools hold 4 combinations; one is used
	used := [][2]string{{"F1", "R1"}}
	if err := checkSampleCapacity(pools, used, 3); err != nil {
		t.Errorf("checkSampleCapacity() = %v, want nil for 3 of 3 remaining", err)
	}

	err := checkSampleCapacity(pools, used, 4)
	var insufficient *InsufficientPoolError
	if !errors.As(err, &insufficient) {
		t.Fatalf("checkSampleCapacity() error = %v, want *InsufficientPoolError", err)
	}
	if insufficient.Requested != 4 || insufficient.Available != 3 {
		t.Errorf("checkSampleCapacity() error detail = %+v", insufficient)
	}

	// used pairs naming absent primers do not consume capacity
	ghost := [][2]string{{"F9", "R9"}}
	if err := checkSampleCapacity(pools, ghost, 4); err != nil {
		t.Errorf("checkSampleCapacity() = %v, want nil", err)
	}
}
