// Package repository defines the record and result store interfaces and
// errors.
package repository

// Default sizing for the in-memory stores.
const defaultInitialCapacity = 512

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithInitialCapacity pre-sizes the store's internal maps.
func WithInitialCapacity(n int) Option {
	return func(s *MemStore) {
		if n > 0 {
			s.initial = n
		}
	}
}
