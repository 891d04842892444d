package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/annel0/mmo-dungeon/internal/populator"
	"github.com/annel0/mmo-dungeon/internal/worldconfig"
)

func newConfigCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and edit per-world populator configs",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show <world>",
		Short: "Load (and self-heal) a world config and print the enabled rules",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(root, func(cmd *cobra.Command, a *app, args []string) error {
			names, err := a.configs.Of(args[0]).Load(cmd.Context())
			if err != nil {
				return err
			}
			printNames(cmd, a.configs.Of(args[0]), names)
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <world> <rule>...",
		Short: "Replace the enabled rules of a world",
		Args:  cobra.MinimumNArgs(2),
		RunE: withApp(root, func(cmd *cobra.Command, a *app, args []string) error {
			cfg := a.configs.Of(args[0])
			if err := cfg.Save(cmd.Context(), args[1:]); err != nil {
				return err
			}
			names, err := cfg.Enabled(cmd.Context())
			if err != nil {
				return err
			}
			printNames(cmd, cfg, names)
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset <world>",
		Short: "Enable every registered rule for a world",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(root, func(cmd *cobra.Command, a *app, args []string) error {
			cfg := a.configs.Of(args[0])
			if err := cfg.Save(cmd.Context(), a.registry.Names()); err != nil {
				return err
			}
			printNames(cmd, cfg, a.registry.Names())
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <world>",
		Short: "Remove a world config document",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(root, func(cmd *cobra.Command, a *app, args []string) error {
			cfg := a.configs.Of(args[0])
			deleted, err := cfg.Delete(cmd.Context())
			if err != nil {
				return err
			}
			if deleted {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: deleted\n", cfg.Name())
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: no config\n", cfg.Name())
			}
			return nil
		}),
	})

	return cmd
}

func newRulesCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List registered populator rules",
		Args:  cobra.NoArgs,
		RunE: withApp(root, func(cmd *cobra.Command, a *app, _ []string) error {
			for _, name := range a.registry.Names() {
				rule, ok := a.registry.Rule(name)
				if !ok {
					fmt.Fprintf(cmd.OutOrStdout(), "%-18s built-in\n", name)
					continue
				}
				lo, hi := rule.Layers(populator.MaxLayers)
				fmt.Fprintf(cmd.OutOrStdout(), "%-18s layers %d..%d, room chance %.3f%+.3f/layer\n",
					name, lo, hi, rule.RoomChance().Base, rule.RoomChance().Delta)
			}
			return nil
		}),
	}
}

// withApp поднимает app на время команды
func withApp(root *rootOptions, fn func(cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), root)
		if err != nil {
			return err
		}
		defer a.Close()
		return fn(cmd, a, args)
	}
}

func printNames(cmd *cobra.Command, cfg *worldconfig.WorldConfig, names []string) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s (version %d): %s\n",
		cfg.Name(), worldconfig.CurrentVersion, strings.Join(names, ", "))
}
