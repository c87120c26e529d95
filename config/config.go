// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config is the root-level settings struct and is a mix of settings
// available in primer-pairs.yaml and those available from the
// command line
type Config struct {
	// the shared primer sequence length; 0 means infer it from the
	// first primer in the table
	SequenceLength int `mapstructure:"sequence-length"`

	// the number of random subsets the search command draws and scores
	TrialBudget int `mapstructure:"trial-budget"`

	// the seed for the search command's random source; results are
	// reproducible for a fixed (seed, trial-budget, workers) triple
	Seed int64 `mapstructure:"seed"`

	// the number of worker goroutines the trial budget is split across
	Workers int `mapstructure:"workers"`

	// the simplex tolerance used by the solve command's relaxations
	SolverTolerance float64 `mapstructure:"solver-tolerance"`
}

// New returns a new Config struct populated by Viper settings (either
// from a local primer-pairs.yaml) and/or command line arguments
func New() *Config {
	setDefaults()

	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		log.Fatalf("unable to decode settings into struct, %v", err)
	}

	return &c
}

func setDefaults() {
	viper.SetDefault("sequence-length", 0)
	viper.SetDefault("trial-budget", 10000)
	viper.SetDefault("seed", 1)
	viper.SetDefault("workers", 1)
	viper.SetDefault("solver-tolerance", 1e-10)
}
