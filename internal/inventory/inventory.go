// Package inventory defines the collected-block-unit store the
// reconciliation engine reads from and debits into.
package inventory

import (
	"sync"

	"blockquest.dev/internal/blocks"
)

// Inventory is the engine's view of the player's collected block units.
// Counts never go negative; air is never tracked. The engine only reads,
// except for the single atomic Debit performed when a structure is built.
type Inventory interface {
	Count(typeID string) int
	Counts() map[string]int
	Award(typeID string, n int)
	Remove(typeID string, n int)
	// Debit removes cost[t] units of every type t, all or nothing.
	// It reports false, changing nothing, if any count is short.
	Debit(cost map[string]int) bool
}

// Memory is the in-process Inventory. The optional change callback fires
// after every mutation and is what drives coalesced recomputation.
type Memory struct {
	mu       sync.Mutex
	counts   map[string]int
	onChange func()
}

func NewMemory() *Memory {
	return &Memory{counts: map[string]int{}}
}

// SetOnChange registers the single change listener. Must be called before
// the inventory is shared.
func (m *Memory) SetOnChange(fn func()) {
	m.mu.Lock()
	m.onChange = fn
	m.mu.Unlock()
}

func (m *Memory) Count(typeID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[typeID]
}

// Counts returns a snapshot copy.
func (m *Memory) Counts() map[string]int {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int, len(m.counts))
	for k, v := range m.counts {
		out[k] = v
	}
	return out
}

func (m *Memory) Award(typeID string, n int) {
	if typeID == blocks.Air || n <= 0 {
		return
	}
	m.mu.Lock()
	m.counts[typeID] += n
	fn := m.onChange
	m.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Remove subtracts n units, floored at zero.
func (m *Memory) Remove(typeID string, n int) {
	if typeID == blocks.Air || n <= 0 {
		return
	}
	m.mu.Lock()
	c := m.counts[typeID] - n
	if c <= 0 {
		delete(m.counts, typeID)
	} else {
		m.counts[typeID] = c
	}
	fn := m.onChange
	m.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (m *Memory) Debit(cost map[string]int) bool {
	m.mu.Lock()
	for t, n := range cost {
		if t == blocks.Air || n <= 0 {
			continue
		}
		if m.counts[t] < n {
			m.mu.Unlock()
			return false
		}
	}
	for t, n := range cost {
		if t == blocks.Air || n <= 0 {
			continue
		}
		c := m.counts[t] - n
		if c == 0 {
			delete(m.counts, t)
		} else {
			m.counts[t] = c
		}
	}
	fn := m.onChange
	m.mu.Unlock()
	if fn != nil {
		fn()
	}
	return true
}
