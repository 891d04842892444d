// Package main утилита генерации и декорирования подземелий
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootOptions общие флаги всех команд
type rootOptions struct {
	configPath  string
	metricsAddr string
	seed        *int64 // переопределение сида из populate --seed
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "dungeon",
		Short:         "Dungeon populator",
		Long:          `Generates buried dungeon chunks and decorates their rooms with the populator rules enabled per world.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to YAML config (default $DUNGEON_CONFIG)")
	root.PersistentFlags().StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus /metrics on this address")

	root.AddCommand(newPopulateCmd(opts))
	root.AddCommand(newConfigCmd(opts))
	root.AddCommand(newRulesCmd(opts))
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
