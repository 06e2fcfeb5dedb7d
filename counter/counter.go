// Package counter supply named counters and their http resource
package counter

import (
	"errors"
)

var (
	// ErrNotFound the counter does not exist
	ErrNotFound = errors.New("counter not found")
	// ErrAlreadyExists the counter has been created
	ErrAlreadyExists = errors.New("counter already exists")
)

// Entry is a snapshot of a counter
type Entry struct {
	Name    string `json:"name"`
	Counter int64  `json:"counter"`
}

// Store owns all the counters.
// A counter is created with value 0 and only increased by 1 with Incr.
type Store interface {
	// Create the counter named `name` with value 0, returns ErrAlreadyExists if it exists
	Create(name string) (int64, error)

	// Get the value of the counter, returns ErrNotFound if it's absent
	Get(name string) (int64, error)

	// Incr increase the counter by 1 and returns the new value, returns ErrNotFound if it's absent
	Incr(name string) (int64, error)

	// Del delete the counter, deleting an absent counter is a no-op
	Del(name string)

	// List the snapshot of all counters
	List() []*Entry

	// Reset remove all counters
	Reset()
}
