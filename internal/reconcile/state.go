// Package reconcile turns a blueprint plus a live inventory into a
// completed/remaining split, a progress value and an idempotent build
// commit. One Engine per builder session.
package reconcile

import (
	"blockquest.dev/internal/blueprint"
)

// State is the per-session reconciliation snapshot handed to rendering and
// UI consumers. Completed and Remaining partition the blueprint's blocks,
// each preserving blueprint order.
type State struct {
	BlueprintID         string
	Completed           []blueprint.Block
	Remaining           []blueprint.Block
	Progress            float64
	IsComplete          bool
	IsPermanentlyPlaced bool
}

func (s *State) clone() *State {
	if s == nil {
		return nil
	}
	out := *s
	out.Completed = append([]blueprint.Block(nil), s.Completed...)
	out.Remaining = append([]blueprint.Block(nil), s.Remaining...)
	return &out
}

// EventType labels the engine's outbound notifications.
type EventType string

const (
	// EventStateChanged carries a fresh state snapshot after recomputation.
	EventStateChanged EventType = "STRUCTURE_STATE_CHANGED"
	// EventCompleted fires on the Active -> Complete transition.
	EventCompleted EventType = "STRUCTURE_COMPLETED"
	// EventBuilt fires once per successful build commit.
	EventBuilt EventType = "STRUCTURE_BUILT"
)

// Event is delivered synchronously to subscribers in registration order.
type Event struct {
	Type  EventType
	State *State
	Built *BuiltInfo
}

// BuiltInfo describes a committed structure.
type BuiltInfo struct {
	BlueprintID string
	Name        string
	Difficulty  blueprint.Difficulty
	Position    blueprint.Vec3i
	Blocks      []blueprint.Block
}

// Placement is the external placement-arbitration collaborator. The engine
// never decides world positions itself: it asks whether its candidate spot
// is occupied and, if so, requests a new one.
type Placement interface {
	Occupied(pos blueprint.Vec3i) bool
	Suggest() blueprint.Vec3i
}

// BuildSink receives an audit record for every successful build.
type BuildSink interface {
	Write(v any) error
}

// BuildRecord is the audit form of a build commit.
type BuildRecord struct {
	SessionID   string                `json:"session_id"`
	BlueprintID string                `json:"blueprint_id"`
	Name        string                `json:"name"`
	Difficulty  blueprint.Difficulty  `json:"difficulty"`
	Cost        map[string]int        `json:"cost"`
	Position    blueprint.Vec3i       `json:"position"`
	Forced      bool                  `json:"forced,omitempty"`
	At          string                `json:"at"`
}
