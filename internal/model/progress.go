package model

import "fmt"

// Flag names a user-toggled packing column.
type Flag int

// Packing flags.
const (
	FlagPick Flag = iota
	FlagPack
	FlagReady
)

func (f Flag) String() string {
	switch f {
	case FlagPick:
		return "pick"
	case FlagPack:
		return "pack"
	case FlagReady:
		return "ready"
	}
	return fmt.Sprintf("Flag(%d)", int(f))
}

// Column returns the trip_items column backing the flag.
func (f Flag) Column() (string, bool) {
	switch f {
	case FlagPick, FlagPack, FlagReady:
		return f.String(), true
	}
	return "", false
}

// ParseFlag maps "pick", "pack" or "ready" to a Flag.
func ParseFlag(v string) (Flag, error) {
	for _, f := range []Flag{FlagPick, FlagPack, FlagReady} {
		if f.String() == v {
			return f, nil
		}
	}
	return FlagPick, fmt.Errorf("unknown flag %q", v)
}

// Progression is the ordered packing stage derived from the flag columns.
type Progression int

// Packing stages.
const (
	Unselected Progression = iota
	Picked
	Packed
	Ready
)

func (p Progression) String() string {
	switch p {
	case Unselected:
		return "unselected"
	case Picked:
		return "picked"
	case Packed:
		return "packed"
	case Ready:
		return "ready"
	}
	return fmt.Sprintf("Progression(%d)", int(p))
}

// ProgressionOf collapses the stored flags into a stage. The highest set flag wins.
func ProgressionOf(picked, packed, ready bool) Progression {
	switch {
	case ready:
		return Ready
	case packed:
		return Packed
	case picked:
		return Picked
	}
	return Unselected
}

// CheckFlag validates a flag write against the pick -> pack -> ready ordering.
// Pack and Ready may only be set on a picked record; Pick may only be cleared
// when neither Pack nor Ready is set.
func CheckFlag(rec PackingRecord, f Flag, value bool) bool {
	switch f {
	case FlagPick:
		return value || (!rec.Packed && !rec.Ready)
	case FlagPack, FlagReady:
		return !value || rec.Picked
	}
	return false
}

// Progress summarizes a trip's packing state.
type Progress struct {
	TotalWeight  int64
	PickedWeight int64
	PackedWeight int64
	ReadyWeight  int64
	Items        int
	PickedItems  int
	PackedItems  int
	ReadyItems   int
	NewItems     int
}

// CategoryPickedWeight sums the weight of picked items in one category.
func CategoryPickedWeight(c TripCategory) int64 {
	var sum int64
	for _, it := range c.Items {
		if it.Picked {
			sum += it.Item.Weight
		}
	}
	return sum
}

// TripPickedWeight sums CategoryPickedWeight over all categories.
func TripPickedWeight(cs []TripCategory) int64 {
	var sum int64
	for _, c := range cs {
		sum += CategoryPickedWeight(c)
	}
	return sum
}

// Summarize recomputes the full progress summary from the category view.
func Summarize(cs []TripCategory) Progress {
	var p Progress
	for _, c := range cs {
		for _, it := range c.Items {
			w := it.Item.Weight
			p.Items++
			p.TotalWeight += w
			if it.Picked {
				p.PickedItems++
				p.PickedWeight += w
			}
			if it.Packed {
				p.PackedItems++
				p.PackedWeight += w
			}
			if it.Ready {
				p.ReadyItems++
				p.ReadyWeight += w
			}
			if it.New {
				p.NewItems++
			}
		}
	}
	return p
}
