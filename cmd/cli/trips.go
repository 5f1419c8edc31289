package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/and161185/packtrip/internal/api"
)

func tripsCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{Use: "trips", Aliases: []string{"trip"}, Short: "Create, inspect and move trips"}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List trips",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return g.call(cmd, func(ctx context.Context, cl *api.Client) error {
				out, err := cl.ListTrips(ctx, &api.Empty{})
				if err != nil {
					return err
				}
				if g.asJSON {
					return printJSON(cmd.OutOrStdout(), out)
				}
				renderTrips(cmd.OutOrStdout(), out.Trips)
				return nil
			})
		},
	})

	var (
		req              api.CreateTripRequest
		tempMin, tempMax int
	)
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a trip with a record for every inventory item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("temp-min") {
				req.TempMin = &tempMin
			}
			if cmd.Flags().Changed("temp-max") {
				req.TempMax = &tempMax
			}
			return g.call(cmd, func(ctx context.Context, cl *api.Client) error {
				t, err := cl.CreateTrip(ctx, &req)
				if err != nil {
					return err
				}
				if g.asJSON {
					return printJSON(cmd.OutOrStdout(), t)
				}
				fmt.Fprintln(cmd.OutOrStdout(), t.ID)
				return nil
			})
		},
	}
	f := create.Flags()
	f.StringVar(&req.Name, "name", "", "trip name")
	f.StringVar(&req.DateStart, "start", "", "first day (YYYY-MM-DD)")
	f.StringVar(&req.DateEnd, "end", "", "last day (YYYY-MM-DD)")
	f.StringVar(&req.Location, "location", "", "where")
	f.IntVar(&tempMin, "temp-min", 0, "expected minimum temperature, °C")
	f.IntVar(&tempMax, "temp-max", 0, "expected maximum temperature, °C")
	f.StringVar(&req.Comment, "comment", "", "free text")
	_ = create.MarkFlagRequired("name")
	_ = create.MarkFlagRequired("start")
	_ = create.MarkFlagRequired("end")
	cmd.AddCommand(create)

	cmd.AddCommand(&cobra.Command{
		Use:   "show TRIP",
		Short: "Reconcile and print the packing list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.call(cmd, func(ctx context.Context, cl *api.Client) error {
				v, err := cl.TripView(ctx, &api.TripRef{TripID: args[0]})
				if err != nil {
					return err
				}
				if g.asJSON {
					return printJSON(cmd.OutOrStdout(), v)
				}
				renderView(cmd.OutOrStdout(), v)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "state TRIP STATE",
		Short: "Set the lifecycle state (init, planning, planned, active, review, done)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.call(cmd, func(ctx context.Context, cl *api.Client) error {
				out, err := cl.SetTripState(ctx, &api.SetTripStateRequest{TripID: args[0], State: args[1]})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "updated: %t\n", out.Updated)
				return nil
			})
		},
	})

	for _, dir := range []string{api.DirectionNext, api.DirectionPrev} {
		cmd.AddCommand(&cobra.Command{
			Use:   dir + " TRIP",
			Short: "Move the trip one lifecycle step (" + dir + ")",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return g.call(cmd, func(ctx context.Context, cl *api.Client) error {
					out, err := cl.AdvanceTrip(ctx, &api.AdvanceTripRequest{TripID: args[0], Direction: dir})
					if err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), out.State)
					return nil
				})
			},
		})
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "reconcile TRIP",
		Short: "Add records for inventory items the trip does not have yet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.call(cmd, func(ctx context.Context, cl *api.Client) error {
				out, err := cl.Reconcile(ctx, &api.TripRef{TripID: args[0]})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "inserted: %d\n", out.Inserted)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "weight TRIP",
		Short: "Print the total weight of picked items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.call(cmd, func(ctx context.Context, cl *api.Client) error {
				out, err := cl.TotalPickedWeight(ctx, &api.TripRef{TripID: args[0]})
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatWeight(out.Grams))
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "ack-new TRIP",
		Short: "Clear the new marker on all items of the trip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.call(cmd, func(ctx context.Context, cl *api.Client) error {
				out, err := cl.AcknowledgeNew(ctx, &api.TripRef{TripID: args[0]})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "cleared: %d\n", out.Cleared)
				return nil
			})
		},
	})
	return cmd
}
