package aeony

import "fmt"

// EntityID identifies an entity for as long as it lives. Ids are recycled
// after the entity is destroyed.
type EntityID uint32

// MaxEntityIDs is the ceiling of the monotonic id counter.
const MaxEntityIDs uint64 = 1 << 32

// IDAllocator hands out entity ids. A monotonic counter is used until it
// reaches the ceiling; after that, released ids are reused last-in first-out.
// Not safe for concurrent use (the frame loop is single-threaded).
type IDAllocator struct {
	next    uint64
	ceiling uint64
	free    []EntityID
}

// DefaultIDs is the allocator used by NewEntityBase.
var DefaultIDs = NewIDAllocator(MaxEntityIDs)

// NewIDAllocator creates an allocator whose counter stops at ceiling.
// A ceiling above MaxEntityIDs is lowered to it.
func NewIDAllocator(ceiling uint64) *IDAllocator {
	if ceiling > MaxEntityIDs {
		ceiling = MaxEntityIDs
	}
	return &IDAllocator{ceiling: ceiling}
}

// Allocate returns an unused id. It fails with ErrResourceExhausted only when
// the counter is at its ceiling and no released id is available.
func (a *IDAllocator) Allocate() (EntityID, error) {
	if a.next < a.ceiling {
		id := EntityID(a.next)
		a.next++
		return id, nil
	}
	if n := len(a.free); n > 0 {
		id := a.free[n-1]
		a.free = a.free[:n-1]
		return id, nil
	}
	return 0, fmt.Errorf("allocate entity id (ceiling %d): %w", a.ceiling, ErrResourceExhausted)
}

// Release returns id to the pool.
func (a *IDAllocator) Release(id EntityID) {
	a.free = append(a.free, id)
}

// Live returns the number of ids handed out and not yet released.
func (a *IDAllocator) Live() int {
	return int(a.next) - len(a.free)
}

// Reset clears the counter and the pool. Only for making tests
// deterministic; never call it while entities are alive.
func (a *IDAllocator) Reset() {
	a.next = 0
	a.free = a.free[:0]
}

// ResetIDs resets DefaultIDs.
func ResetIDs() {
	DefaultIDs.Reset()
}
