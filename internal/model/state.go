package model

import (
	"fmt"
	"strings"
)

// TripState is the planning lifecycle position of a trip. Values are ordered.
type TripState int

// Lifecycle states in order.
const (
	StateInit TripState = iota
	StatePlanning
	StatePlanned
	StateActive
	StateReview
	StateDone
)

var stateNames = [...]string{"init", "planning", "planned", "active", "review", "done"}

// AllStates lists every state in lifecycle order.
func AllStates() []TripState {
	return []TripState{StateInit, StatePlanning, StatePlanned, StateActive, StateReview, StateDone}
}

// String returns the persisted name of the state.
func (s TripState) String() string {
	if !s.Valid() {
		return fmt.Sprintf("TripState(%d)", int(s))
	}
	return stateNames[s]
}

// Valid reports whether s is one of the declared states.
func (s TripState) Valid() bool { return s >= StateInit && s <= StateDone }

// ParseTripState maps a persisted or user-supplied name to a state.
func ParseTripState(v string) (TripState, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	for i, n := range stateNames {
		if n == v {
			return TripState(i), nil
		}
	}
	return StateInit, fmt.Errorf("unknown trip state %q", v)
}

// Next returns the successor of s; false at Done.
func Next(s TripState) (TripState, bool) {
	if !s.Valid() || s == StateDone {
		return s, false
	}
	return s + 1, true
}

// Prev returns the predecessor of s; false at Init.
func Prev(s TripState) (TripState, bool) {
	if !s.Valid() || s == StateInit {
		return s, false
	}
	return s - 1, true
}

// Underway decides whether items reconciled into the trip are flagged as new.
// Only a trip that has not left Init is considered brand-new.
func (s TripState) Underway() bool { return s != StateInit }

// Adjacent reports whether to is exactly one lifecycle step away from s.
func (s TripState) Adjacent(to TripState) bool {
	d := int(to) - int(s)
	return d == 1 || d == -1
}

// Direction selects the neighbour used by Advance.
type Direction int

// Advance directions.
const (
	Forward Direction = iota
	Backward
)
