package telemetry

import "github.com/pthm-cable/warren/components"

// LifetimeStats tracks per-animal statistics over its lifetime.
type LifetimeStats struct {
	Kind      components.Kind
	BirthStep int32
	Children  int
}

// LifetimeTracker manages per-animal lifetime statistics.
type LifetimeTracker struct {
	stats map[uint32]*LifetimeStats
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[uint32]*LifetimeStats),
	}
}

// Register creates lifetime stats for a new animal.
func (lt *LifetimeTracker) Register(id uint32, kind components.Kind, birthStep int32) {
	lt.stats[id] = &LifetimeStats{Kind: kind, BirthStep: birthStep}
}

// Get returns the lifetime stats for an animal, or nil if not found.
func (lt *LifetimeTracker) Get(id uint32) *LifetimeStats {
	return lt.stats[id]
}

// Remove removes an animal's stats and returns them.
func (lt *LifetimeTracker) Remove(id uint32) *LifetimeStats {
	stats := lt.stats[id]
	delete(lt.stats, id)
	return stats
}

// RecordChildren adds n offspring to an animal's tally.
func (lt *LifetimeTracker) RecordChildren(id uint32, n int) {
	if s := lt.stats[id]; s != nil {
		s.Children += n
	}
}

// Len returns the number of tracked animals.
func (lt *LifetimeTracker) Len() int {
	return len(lt.stats)
}

// Clear forgets every animal.
func (lt *LifetimeTracker) Clear() {
	clear(lt.stats)
}
