// Package nvm provides the non-volatile record store the persistence
// gate writes through.
//
// Records are addressed by integer index; index 0 is reserved for the
// firmware build stamp consulted at cold start. The store owes the engine
// nothing beyond read/write durability — wear-leveling and retries are
// its own concern.
package nvm

import "errors"

// ErrRecordRange indicates a record index outside the store's capacity.
var ErrRecordRange = errors.New("nvm record index out of range")

// Store reads and writes parameter records by index.
type Store interface {
	// Read returns the value of record index.
	Read(index int) (float64, error)

	// Write stores value at record index.
	Write(index int, value float64) error
}

// MemStore is an in-memory Store used for tests and simulation.
type MemStore struct {
	records []float64
}

// NewMemStore returns a zeroed in-memory store with capacity records.
func NewMemStore(capacity int) *MemStore {
	return &MemStore{records: make([]float64, capacity)}
}

// Read returns the value of record index.
func (s *MemStore) Read(index int) (float64, error) {
	if index < 0 || index >= len(s.records) {
		return 0, ErrRecordRange
	}
	return s.records[index], nil
}

// Write stores value at record index.
func (s *MemStore) Write(index int, value float64) error {
	if index < 0 || index >= len(s.records) {
		return ErrRecordRange
	}
	s.records[index] = value
	return nil
}
