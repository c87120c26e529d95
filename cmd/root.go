// Package cmd is for command line interactions with the primer-pairs
// application
package cmd

import (
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use: "primer-pairs",
	Short: `Select index primer sets with balanced base composition.
Choose subsets of forward and reverse primers whose pooled per-position
A/T/C/G counts stay as close to uniform as possible`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().IntP("length", "l", 0, "primer sequence length (0 = infer from the table)")
	viper.BindPFlag("sequence-length", RootCmd.PersistentFlags().Lookup("length"))
}

// initConfig reads an optional primer-pairs.yaml settings file from
// the working directory or the user's home directory.
func initConfig() {
	viper.SetConfigName("primer-pairs")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".primer-pairs"))
	}
	_ = viper.ReadInConfig() // the settings file is optional
}
