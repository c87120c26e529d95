package primers

import (
	"errors"
	"reflect"
	"testing"
)

// testPools builds Pools or fails the test.
func testPools(t *testing.T, forward, reverse map[string]string) *Pools {
	t.Helper()

	p, err := NewPools(forward, reverse, 0)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func Test_NewPools(t *testing.T) {
	type args struct {
		forward map[string]string
		reverse map[string]string
		length  int
	}
	tests := []struct {
		name    string
		args    args
		wantErr error
	}{
		{
			"valid pools",
			args{
				map[string]string{"F1": "AAAATTTT", "F2": "CCCCGGGG"},
				map[string]string{"R1": "TTTTAAAA", "R2": "GGGGCCCC"},
				8,
			},
			nil,
		},
		{
			"lowercase input is normalized",
			args{
				map[string]string{"F1": "aaaatttt"},
				map[string]string{"R1": "ttttaaaa"},
				0,
			},
			nil,
		},
		{
			"empty forward pool",
			args{
				map[string]string{},
				map[string]string{"R1": "TTTTAAAA"},
				0,
			},
			&EmptyPoolError{},
		},
		{
			"empty reverse pool",
			args{
				map[string]string{"F1": "AAAATTTT"},
				map[string]string{},
				0,
			},
			&EmptyPoolError{},
		},
		{
			"mixed lengths",
			args{
				map[string]string{"F1": "AAAATTTT"},
				map[string]string{"R1": "TTTT"},
				0,
			},
			&PoolMismatchError{},
		},
		{
			"length shorter than configured",
			args{
				map[string]string{"F1": "AAAA"},
				map[string]string{"R1": "TTTT"},
				8,
			},
			&PoolMismatchError{},
		},
		{
			"base outside the alphabet",
			args{
				map[string]string{"F1": "AAAANTTT"},
				map[string]string{"R1": "TTTTAAAA"},
				0,
			},
			&InvalidSequenceError{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewPools(tt.args.forward, tt.args.reverse, tt.args.length)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("NewPools() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("NewPools() = %v, want error %T", got, tt.wantErr)
			}

			switch tt.wantErr.(type) {
			case *EmptyPoolError:
				var e *EmptyPoolError
				if !errors.As(err, &e) {
					t.Errorf("NewPools() error = %T, want *EmptyPoolError", err)
				}
			case *PoolMismatchError:
				var e *PoolMismatchError
				if !errors.As(err, &e) {
					t.Errorf("NewPools() error = %T, want *PoolMismatchError", err)
				}
			case *InvalidSequenceError:
				var e *InvalidSequenceError
				if !errors.As(err, &e) {
					t.Errorf("NewPools() error = %T, want *InvalidSequenceError", err)
				}
			}
		})
	}
}

func Test_Pools_Names(t *testing.T) {
	p := testPools(t,
		map[string]string{"F3": "AAAA", "F1": "TTTT", "F2": "CCCC"},
		map[string]string{"R2": "GGGG", "R1": "ATAT"},
	)

	if got, want := p.Names(Forward), []string{"F1", "F2", "F3"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names(Forward) = %v, want %v", got, want)
	}
	if got, want := p.Names(Reverse), []string{"R1", "R2"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names(Reverse) = %v, want %v", got, want)
	}
	if p.Length() != 4 {
		t.Errorf("Length() = %d, want 4", p.Length())
	}
}

func Test_Pools_ApplyExclusions(t *testing.T) {
	p := testPools(t,
		map[string]string{"F1": "AAAA", "F2": "TTTT"},
		map[string]string{"R1": "CCCC", "R2": "GGGG"},
	)

	filtered, err := p.ApplyExclusions(map[string]bool{"F1": true, "R2": true})
	if err != nil {
		t.Fatal(err)
	}
	if filtered.Size(Forward) != 1 || filtered.Has(Forward, "F1") {
		t.Errorf("F1 should have been excluded: %v", filtered.Names(Forward))
	}
	if filtered.Size(Reverse) != 1 || filtered.Has(Reverse, "R2") {
		t.Errorf("R2 should have been excluded: %v", filtered.Names(Reverse))
	}

	// the original pools are untouched
	if p.Size(Forward) != 2 || p.Size(Reverse) != 2 {
		t.Errorf("exclusions mutated the source pools")
	}

	// no exclusions returns the pools unchanged
	same, err := p.ApplyExclusions(nil)
	if err != nil {
		t.Fatal(err)
	}
	if same != p {
		t.Errorf("ApplyExclusions(nil) should return the same pools")
	}

	// excluding an entire orientation is an EmptyPoolError
	_, err = p.ApplyExclusions(map[string]bool{"R1": true, "R2": true})
	var empty *EmptyPoolError
	if !errors.As(err, &empty) {
		t.Errorf("ApplyExclusions() error = %v, want *EmptyPoolError", err)
	}
}
