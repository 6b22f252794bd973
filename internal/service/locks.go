package service

import "sync"

// equipmentLocks serializes approval decisions per equipment. The availability
// re-check and the status write must happen under the same lock so two
// overlapping approvals cannot both succeed. Isolation is per-equipment, not
// global: rentals of different equipment never contend.
type equipmentLocks struct {
	mu    sync.Mutex
	locks map[int32]*sync.Mutex
}

func newEquipmentLocks() *equipmentLocks {
	return &equipmentLocks{locks: make(map[int32]*sync.Mutex)}
}

func (l *equipmentLocks) get(equipmentID int32) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[equipmentID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[equipmentID] = m
	}
	return m
}

// Lock acquires the per-equipment mutex and returns its unlock function.
func (l *equipmentLocks) Lock(equipmentID int32) func() {
	m := l.get(equipmentID)
	m.Lock()
	return m.Unlock
}
