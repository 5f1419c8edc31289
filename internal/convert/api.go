// Package convert maps domain types to and from the wire types in package api.
package convert

import (
	"fmt"
	"time"

	u "github.com/gofrs/uuid/v5"

	"github.com/and161185/packtrip/internal/api"
	"github.com/and161185/packtrip/internal/model"
)

// --- helpers ---

// ParseID parses a uuid field, naming it in the error.
func ParseID(field, v string) (u.UUID, error) {
	id, err := u.FromString(v)
	if err != nil {
		return u.Nil, fmt.Errorf("invalid %s: %w", field, err)
	}
	return id, nil
}

func date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(api.DateLayout)
}

func parseDate(field, v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(api.DateLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s: %w", field, err)
	}
	return t, nil
}

// --- Trips ---

// FromAPINewTrip converts a create request into domain input. Empty dates stay
// zero so validation reports them as missing.
func FromAPINewTrip(in *api.CreateTripRequest) (model.NewTrip, error) {
	if in == nil {
		return model.NewTrip{}, fmt.Errorf("nil CreateTripRequest")
	}
	start, err := parseDate("date_start", in.DateStart)
	if err != nil {
		return model.NewTrip{}, err
	}
	end, err := parseDate("date_end", in.DateEnd)
	if err != nil {
		return model.NewTrip{}, err
	}
	return model.NewTrip{
		Name:      in.Name,
		DateStart: start,
		DateEnd:   end,
		Location:  in.Location,
		TempMin:   in.TempMin,
		TempMax:   in.TempMax,
		Comment:   in.Comment,
	}, nil
}

// ToAPITrip converts a domain trip.
func ToAPITrip(t model.Trip) *api.Trip {
	out := &api.Trip{
		ID:        t.ID.String(),
		Name:      t.Name,
		DateStart: date(t.DateStart),
		DateEnd:   date(t.DateEnd),
		State:     t.State.String(),
		Location:  t.Location,
		TempMin:   t.TempMin,
		TempMax:   t.TempMax,
		Comment:   t.Comment,
	}
	if !t.CreatedAt.IsZero() {
		out.CreatedAt = t.CreatedAt.UTC().Format(time.RFC3339)
	}
	return out
}

// ToAPITrips converts a trip list; never returns nil.
func ToAPITrips(ts []model.Trip) []api.Trip {
	out := make([]api.Trip, 0, len(ts))
	for _, t := range ts {
		out = append(out, *ToAPITrip(t))
	}
	return out
}

// FromAPIDirection maps "next"/"prev".
func FromAPIDirection(v string) (model.Direction, error) {
	switch v {
	case api.DirectionNext:
		return model.Forward, nil
	case api.DirectionPrev:
		return model.Backward, nil
	}
	return model.Forward, fmt.Errorf("unknown direction %q", v)
}

// --- Items / packing ---

// ToAPIItem converts an inventory item.
func ToAPIItem(it model.InventoryItem) api.Item {
	return api.Item{
		ID:          it.ID.String(),
		Name:        it.Name,
		Description: it.Description,
		Weight:      it.Weight,
		CategoryID:  it.CategoryID.String(),
	}
}

// ToAPIItems converts a slice of items; never returns nil.
func ToAPIItems(in []model.InventoryItem) []api.Item {
	out := make([]api.Item, 0, len(in))
	for _, it := range in {
		out = append(out, ToAPIItem(it))
	}
	return out
}

// ToAPITripItem converts one joined packing row.
func ToAPITripItem(ti model.TripItem) *api.TripItem {
	return &api.TripItem{
		Item:   ToAPIItem(ti.Item),
		Picked: ti.Picked,
		Packed: ti.Packed,
		Ready:  ti.Ready,
		New:    ti.New,
	}
}

// ToAPICategories converts the category join, adding per-category picked weight.
func ToAPICategories(cs []model.TripCategory) []api.Category {
	out := make([]api.Category, 0, len(cs))
	for _, c := range cs {
		items := make([]api.TripItem, 0, len(c.Items))
		for _, ti := range c.Items {
			items = append(items, *ToAPITripItem(ti))
		}
		out = append(out, api.Category{
			ID:           c.Category.ID.String(),
			Name:         c.Category.Name,
			Description:  c.Category.Description,
			PickedWeight: model.CategoryPickedWeight(c),
			Items:        items,
		})
	}
	return out
}

// ToAPIProgress converts the progress summary.
func ToAPIProgress(p model.Progress) api.Progress {
	return api.Progress{
		TotalWeight:  p.TotalWeight,
		PickedWeight: p.PickedWeight,
		PackedWeight: p.PackedWeight,
		ReadyWeight:  p.ReadyWeight,
		Items:        p.Items,
		PickedItems:  p.PickedItems,
		PackedItems:  p.PackedItems,
		ReadyItems:   p.ReadyItems,
		NewItems:     p.NewItems,
	}
}

// ToAPITripView converts a full trip view.
func ToAPITripView(v model.TripView) *api.TripView {
	return &api.TripView{
		Trip:       *ToAPITrip(v.Trip),
		Categories: ToAPICategories(v.Categories),
		Progress:   ToAPIProgress(v.Progress),
	}
}
