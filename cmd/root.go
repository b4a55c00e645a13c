package cmd

import (
	"fmt"
	"github.com/ValentinKolb/fsbox/cmd/kv"
	"github.com/ValentinKolb/fsbox/cmd/util"
	"github.com/spf13/cobra"
	"os"
)

const (
	Version = "1.0.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "fsbox",
		Short: "durable file-backed key-value boxes",
		Long: fmt.Sprintf(`fsbox (v%s)

A durable per-key persistence library and CLI: values and dictionaries
that survive process restarts, backed by an atomic file-backed
key-value store.`, Version),
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of fsbox",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("fsbox v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(kv.KeyValueCommands)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "coder"
	RootCmd.PersistentFlags().String(key, "json", util.WrapString("value coder to use (json, gob)"))
	key = "key-codec"
	RootCmd.PersistentFlags().String(key, "base64", util.WrapString("key codec to use for filenames (base64, percent)"))
	key = "log-level"
	RootCmd.PersistentFlags().String(key, "info", util.WrapString("log level (debug, info, warn, error)"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
