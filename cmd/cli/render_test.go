package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/and161185/packtrip/internal/api"
)

func Test_formatWeight(t *testing.T) {
	t.Parallel()

	cases := map[int64]string{0: "0 g", 999: "999 g", 1000: "1.00 kg", 1850: "1.85 kg"}
	for in, want := range cases {
		if got := formatWeight(in); got != want {
			t.Fatalf("formatWeight(%d)=%q, want %q", in, got, want)
		}
	}
}

func Test_marks(t *testing.T) {
	t.Parallel()

	if got := marks(api.TripItem{}); got != "..." {
		t.Fatalf("empty: %q", got)
	}
	if got := marks(api.TripItem{Picked: true, Ready: true, New: true}); got != "P.R new" {
		t.Fatalf("flags: %q", got)
	}
}

func Test_renderView(t *testing.T) {
	t.Parallel()

	v := &api.TripView{
		Trip: api.Trip{Name: "Alps", State: "planning", DateStart: "2026-07-01", DateEnd: "2026-07-05"},
		Categories: []api.Category{
			{Name: "shelter", PickedWeight: 1800, Items: []api.TripItem{
				{Item: api.Item{ID: "i1", Name: "tent", Weight: 1800}, Picked: true},
				{Item: api.Item{ID: "i2", Name: "pegs", Weight: 120}, New: true},
			}},
			{Name: "empty", Items: []api.TripItem{}},
		},
		Progress: api.Progress{TotalWeight: 1920, PickedWeight: 1800, Items: 2, PickedItems: 1, NewItems: 1},
	}
	var buf bytes.Buffer
	renderView(&buf, v)
	out := buf.String()
	for _, want := range []string{"Alps [planning]", "picked 1.80 kg of 1.92 kg (1/2 items)", "shelter", "tent", "P..", "... new", "empty"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func Test_renderTrips(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	renderTrips(&buf, []api.Trip{{ID: "t1", Name: "Coast", DateStart: "2026-08-01", DateEnd: "2026-08-03", State: "init"}})
	if !strings.Contains(buf.String(), "Coast") || !strings.Contains(buf.String(), "2026-08-01..2026-08-03") {
		t.Fatalf("unexpected:\n%s", buf.String())
	}
}
