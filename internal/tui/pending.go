package tui

import (
	"sync"
	"time"
)

const pendingOpExpiry = 5 * time.Second

// Attribute names tracked for in-flight light updates
const (
	FieldIsOn             = "isOn"
	FieldLightLevel       = "lightLevel"
	FieldColorTemperature = "colorTemperature"
)

// Direction represents the direction of a change
type Direction int

const (
	DirExact Direction = iota // Exact match required (for booleans)
	DirUp                     // Value is increasing
	DirDown                   // Value is decreasing
)

// PendingOp is an in-flight attribute change awaiting its event echo
type PendingOp struct {
	Field     string
	Target    interface{}
	Direction Direction
	ExpiresAt time.Time
}

// PendingTracker tracks in-flight updates so the hub's event echoes
// don't flicker the UI back to a stale value.
type PendingTracker struct {
	ops map[string]*PendingOp // keyed by deviceID:field
	mu  sync.Mutex
}

// NewPendingTracker creates a new pending operations tracker
func NewPendingTracker() *PendingTracker {
	return &PendingTracker{
		ops: make(map[string]*PendingOp),
	}
}

// Add registers a pending operation for a device (exact match, for booleans)
func (t *PendingTracker) Add(deviceID, field string, value interface{}) {
	t.AddWithDirection(deviceID, field, value, DirExact)
}

// AddWithDirection registers a pending operation with a direction
func (t *PendingTracker) AddWithDirection(deviceID, field string, target interface{}, dir Direction) {
	t.mu.Lock()
	defer t.mu.Unlock()

	key := deviceID + ":" + field
	t.ops[key] = &PendingOp{
		Field:     field,
		Target:    target,
		Direction: dir,
		ExpiresAt: time.Now().Add(pendingOpExpiry),
	}
}

// ShouldIgnore checks if an incoming event value should be ignored.
// Returns true if the value is "on the way" to our target or matches it.
// Clears the pending op once the target is reached or passed.
func (t *PendingTracker) ShouldIgnore(deviceID, field string, value interface{}) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	key := deviceID + ":" + field
	op, exists := t.ops[key]
	if !exists {
		return false
	}

	if time.Now().After(op.ExpiresAt) {
		delete(t.ops, key)
		return false
	}

	switch op.Direction {
	case DirExact:
		if valuesEqual(op.Target, value) {
			delete(t.ops, key)
			return true
		}
		return false

	case DirUp:
		// Increasing toward target: ignore while value <= target
		cmp := compareValues(value, op.Target)
		if cmp <= 0 {
			if cmp == 0 {
				delete(t.ops, key)
			}
			return true
		}
		// Value overshot the target: external change
		delete(t.ops, key)
		return false

	case DirDown:
		cmp := compareValues(value, op.Target)
		if cmp >= 0 {
			if cmp == 0 {
				delete(t.ops, key)
			}
			return true
		}
		delete(t.ops, key)
		return false
	}

	return false
}

// Cleanup removes expired pending operations
func (t *PendingTracker) Cleanup() {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now()
	for key, op := range t.ops {
		if now.After(op.ExpiresAt) {
			delete(t.ops, key)
		}
	}
}

// compareValues returns -1 if a < b, 0 if a == b, 1 if a > b
func compareValues(a, b interface{}) int {
	af := toFloat64(a)
	bf := toFloat64(b)

	if af < bf {
		return -1
	} else if af > bf {
		return 1
	}
	return 0
}

func toFloat64(v interface{}) float64 {
	switch val := v.(type) {
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case float64:
		return val
	case float32:
		return float64(val)
	}
	return 0
}

func valuesEqual(a, b interface{}) bool {
	switch av := a.(type) {
	case bool:
		if bv, ok := b.(bool); ok {
			return av == bv
		}
	case int, int64, float64:
		return toFloat64(a) == toFloat64(b)
	}
	return false
}
