package api

// DateLayout is the wire format of trip dates.
const DateLayout = "2006-01-02"

type Empty struct{}

type TripRef struct {
	TripID string `json:"trip_id"`
}

type CreateTripRequest struct {
	Name      string `json:"name"`
	DateStart string `json:"date_start"`
	DateEnd   string `json:"date_end"`
	Location  string `json:"location,omitempty"`
	TempMin   *int   `json:"temp_min,omitempty"`
	TempMax   *int   `json:"temp_max,omitempty"`
	Comment   string `json:"comment,omitempty"`
}

type Trip struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	DateStart string `json:"date_start"`
	DateEnd   string `json:"date_end"`
	State     string `json:"state"`
	Location  string `json:"location,omitempty"`
	TempMin   *int   `json:"temp_min,omitempty"`
	TempMax   *int   `json:"temp_max,omitempty"`
	Comment   string `json:"comment,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

type ListTripsResponse struct {
	Trips []Trip `json:"trips"`
}

type SetTripStateRequest struct {
	TripID string `json:"trip_id"`
	State  string `json:"state"`
}

type SetTripStateResponse struct {
	Updated bool `json:"updated"`
}

// Directions accepted by AdvanceTrip.
const (
	DirectionNext = "next"
	DirectionPrev = "prev"
)

type AdvanceTripRequest struct {
	TripID    string `json:"trip_id"`
	Direction string `json:"direction"`
}

type AdvanceTripResponse struct {
	State string `json:"state"`
}

type ReconcileResponse struct {
	Inserted int `json:"inserted"`
}

type Item struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Weight      int64  `json:"weight"`
	CategoryID  string `json:"category_id"`
}

type TripItem struct {
	Item   Item `json:"item"`
	Picked bool `json:"picked"`
	Packed bool `json:"packed"`
	Ready  bool `json:"ready"`
	New    bool `json:"new"`
}

type Category struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description,omitempty"`
	PickedWeight int64      `json:"picked_weight"`
	Items        []TripItem `json:"items"`
}

type Progress struct {
	TotalWeight  int64 `json:"total_weight"`
	PickedWeight int64 `json:"picked_weight"`
	PackedWeight int64 `json:"packed_weight"`
	ReadyWeight  int64 `json:"ready_weight"`
	Items        int   `json:"items"`
	PickedItems  int   `json:"picked_items"`
	PackedItems  int   `json:"packed_items"`
	ReadyItems   int   `json:"ready_items"`
	NewItems     int   `json:"new_items"`
}

type TripView struct {
	Trip       Trip       `json:"trip"`
	Categories []Category `json:"categories"`
	Progress   Progress   `json:"progress"`
}

type ItemRef struct {
	TripID string `json:"trip_id"`
	ItemID string `json:"item_id"`
}

type SetFlagRequest struct {
	TripID string `json:"trip_id"`
	ItemID string `json:"item_id"`
	Flag   string `json:"flag"`
	Value  bool   `json:"value"`
}

type WeightResponse struct {
	Grams int64 `json:"grams"`
}

type AcknowledgeNewResponse struct {
	Cleared int64 `json:"cleared"`
}

type ListItemsResponse struct {
	Items []Item `json:"items"`
}
