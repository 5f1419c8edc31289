package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/and161185/packtrip/internal/api"
)

func formatWeight(grams int64) string {
	if grams < 1000 && grams > -1000 {
		return fmt.Sprintf("%d g", grams)
	}
	return fmt.Sprintf("%.2f kg", float64(grams)/1000)
}

func marks(ti api.TripItem) string {
	var b strings.Builder
	for _, m := range []struct {
		on bool
		c  byte
	}{{ti.Picked, 'P'}, {ti.Packed, 'K'}, {ti.Ready, 'R'}} {
		if m.on {
			b.WriteByte(m.c)
		} else {
			b.WriteByte('.')
		}
	}
	if ti.New {
		b.WriteString(" new")
	}
	return b.String()
}

func renderTrips(w io.Writer, ts []api.Trip) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tDATES\tSTATE")
	for _, t := range ts {
		fmt.Fprintf(tw, "%s\t%s\t%s..%s\t%s\n", t.ID, t.Name, t.DateStart, t.DateEnd, t.State)
	}
	_ = tw.Flush()
}

func renderItems(w io.Writer, items []api.Item) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tWEIGHT")
	for _, it := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", it.ID, it.Name, formatWeight(it.Weight))
	}
	_ = tw.Flush()
}

// renderView prints the packing list grouped by category. Flags are shown as
// P (picked), K (packed) and R (ready).
func renderView(w io.Writer, v *api.TripView) {
	t := v.Trip
	fmt.Fprintf(w, "%s [%s] %s..%s\n", t.Name, t.State, t.DateStart, t.DateEnd)
	p := v.Progress
	fmt.Fprintf(w, "picked %s of %s (%d/%d items), packed %d, ready %d, new %d\n",
		formatWeight(p.PickedWeight), formatWeight(p.TotalWeight), p.PickedItems, p.Items,
		p.PackedItems, p.ReadyItems, p.NewItems)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, c := range v.Categories {
		fmt.Fprintf(tw, "\n%s\t\t%s picked\n", c.Name, formatWeight(c.PickedWeight))
		for _, ti := range c.Items {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", marks(ti), ti.Item.Name, formatWeight(ti.Item.Weight), ti.Item.ID)
		}
	}
	_ = tw.Flush()
}
