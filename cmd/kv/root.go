package kv

import (
	"github.com/ValentinKolb/fsbox/cmd/util"
	"github.com/ValentinKolb/fsbox/lib/store"
	"github.com/spf13/cobra"
)

var (
	localStore store.IStore

	// KeyValueCommands represents the KV command group
	KeyValueCommands = &cobra.Command{
		Use:               "kv",
		Short:             "Perform key-value store operations",
		PersistentPreRunE: setupStore,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitConfig)

	// Add common store flags to the KV command
	util.SetupStoreFlags(KeyValueCommands)

	// Add subcommands
	KeyValueCommands.AddCommand(setCmd)
	KeyValueCommands.AddCommand(getCmd)
	KeyValueCommands.AddCommand(delCmd)
	KeyValueCommands.AddCommand(hasCmd)
	KeyValueCommands.AddCommand(listCmd)
	KeyValueCommands.AddCommand(incrCmd)
	KeyValueCommands.AddCommand(perfTestCmd)
}

// setupStore opens the file store configured via flags and environment
func setupStore(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	if err := util.ApplyLogLevel(); err != nil {
		return err
	}

	var err error
	localStore, err = util.GetStore()
	return err
}
