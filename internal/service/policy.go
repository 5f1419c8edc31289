// Package service contains the trip lifecycle, reconciliation and packing progress logic.
package service

import "github.com/and161185/packtrip/internal/model"

// Policy switches between the permissive behavior and stricter rules.
type Policy struct {
	// StrictFlags rejects pack/ready on unpicked records and unpicking packed ones.
	StrictFlags bool
	// StrictTransitions only allows moving one lifecycle step at a time.
	StrictTransitions bool
	// SnapshotViews runs reconcile and the category read in one transaction.
	SnapshotViews bool
}

// Recorder receives counters about engine activity.
type Recorder interface {
	RecordsReconciled(n int)
	FlagSet(f model.Flag, value bool)
	StateChanged(to model.TripState)
}

type nopRecorder struct{}

func (nopRecorder) RecordsReconciled(int)           {}
func (nopRecorder) FlagSet(model.Flag, bool)        {}
func (nopRecorder) StateChanged(to model.TripState) {}
