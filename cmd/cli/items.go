package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/and161185/packtrip/internal/api"
)

func itemsCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{Use: "items", Aliases: []string{"item"}, Short: "Inventory and per-trip packing flags"}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the inventory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return g.call(cmd, func(ctx context.Context, cl *api.Client) error {
				out, err := cl.ListItems(ctx, &api.Empty{})
				if err != nil {
					return err
				}
				if g.asJSON {
					return printJSON(cmd.OutOrStdout(), out)
				}
				renderItems(cmd.OutOrStdout(), out.Items)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show TRIP ITEM",
		Short: "Print one item's packing state in a trip",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.call(cmd, func(ctx context.Context, cl *api.Client) error {
				out, err := cl.FindItem(ctx, &api.ItemRef{TripID: args[0], ItemID: args[1]})
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), out)
			})
		},
	})

	for _, flag := range []string{"pick", "pack", "ready"} {
		var off bool
		c := &cobra.Command{
			Use:   flag + " TRIP ITEM",
			Short: "Set the " + flag + " flag (--off clears it)",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return g.call(cmd, func(ctx context.Context, cl *api.Client) error {
					_, err := cl.SetFlag(ctx, &api.SetFlagRequest{TripID: args[0], ItemID: args[1], Flag: flag, Value: !off})
					return err
				})
			},
		}
		c.Flags().BoolVar(&off, "off", false, "clear instead of set")
		cmd.AddCommand(c)
	}
	return cmd
}
