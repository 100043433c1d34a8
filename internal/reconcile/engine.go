package reconcile

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"blockquest.dev/internal/blocks"
	"blockquest.dev/internal/blueprint"
	"blockquest.dev/internal/inventory"
)

// Config tunes the engine's timing behavior.
type Config struct {
	// DebounceWindow coalesces inventory-change notifications: every
	// notification within the window collapses into one recompute over the
	// latest inventory snapshot.
	DebounceWindow time.Duration
	// RebuildDelay is how long after a build commit the engine waits before
	// switching the session to the next blueprint, so UI observers can
	// react to the completion first.
	RebuildDelay time.Duration
}

func (c *Config) normalize() {
	if c.DebounceWindow <= 0 {
		c.DebounceWindow = 50 * time.Millisecond
	}
	if c.RebuildDelay <= 0 {
		c.RebuildDelay = 500 * time.Millisecond
	}
}

// Engine is the per-session reconciliation state machine:
// Unset -> Active -> Complete -> PermanentlyPlaced. Unset is a nil state;
// Complete is reversible (inventory can shrink); PermanentlyPlaced is not.
type Engine struct {
	cfg       Config
	catalog   *blueprint.Catalog
	inv       inventory.Inventory
	placement Placement
	sink      BuildSink
	log       *log.Logger

	sessionID string

	mu       sync.Mutex
	bp       *blueprint.Blueprint
	state    *State
	subs     []func(Event)
	timer    *time.Timer
	building bool
	closed   bool
}

func New(cat *blueprint.Catalog, inv inventory.Inventory, cfg Config) *Engine {
	cfg.normalize()
	return &Engine{
		cfg:       cfg,
		catalog:   cat,
		inv:       inv,
		sessionID: uuid.NewString(),
	}
}

func (e *Engine) SessionID() string { return e.sessionID }

// SetPlacement injects the placement-arbitration collaborator.
func (e *Engine) SetPlacement(p Placement) { e.placement = p }

// SetLogger injects the diagnostic logger.
func (e *Engine) SetLogger(l *log.Logger) { e.log = l }

// SetBuildSink injects the build audit sink.
func (e *Engine) SetBuildSink(s BuildSink) { e.sink = s }

// Subscribe registers an event observer. Observers run synchronously in
// registration order; register before the session goes live.
func (e *Engine) Subscribe(fn func(Event)) {
	e.mu.Lock()
	e.subs = append(e.subs, fn)
	e.mu.Unlock()
}

// SetBlueprint selects the blueprint this session reconciles against. It
// returns false, leaving any prior state untouched, when the id is unknown
// or the blueprint fails validation. On success the session holds a fresh
// state with everything remaining, and a recompute is scheduled so the
// current inventory is reflected promptly.
func (e *Engine) SetBlueprint(id string) bool {
	bp := e.catalog.Get(id)
	if bp == nil || bp.Validate() != nil {
		return false
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return false
	}
	e.stopTimerLocked()
	e.bp = bp
	e.state = &State{
		BlueprintID: bp.ID,
		Remaining:   append([]blueprint.Block(nil), bp.Blocks...),
	}
	ev := Event{Type: EventStateChanged, State: e.state.clone()}
	subs := e.subsLocked()
	e.scheduleLocked()
	e.mu.Unlock()

	emit(subs, ev)
	return true
}

// GetState returns a snapshot of the session state, or nil before any
// blueprint has been selected.
func (e *Engine) GetState() *State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.clone()
}

func (e *Engine) Progress() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == nil {
		return 0
	}
	return e.state.Progress
}

func (e *Engine) IsComplete() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state != nil && e.state.IsComplete
}

// CanBuild reports whether the inventory covers every non-air block the
// given blueprint requires. Read-only.
func (e *Engine) CanBuild(id string) bool {
	bp := e.catalog.Get(id)
	if bp == nil {
		return false
	}
	counts := e.inv.Counts()
	for t, n := range bp.RequiredCounts() {
		if counts[t] < n {
			return false
		}
	}
	return true
}

// NotifyInventoryChanged requests a recompute. Notifications inside the
// debounce window coalesce into a single recompute on the latest snapshot.
func (e *Engine) NotifyInventoryChanged() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || e.state == nil {
		return
	}
	e.scheduleLocked()
}

// Recompute runs the reconciliation synchronously. Exposed for callers that
// need the result before continuing (and for tests); the notification path
// goes through the debounce timer.
func (e *Engine) Recompute() {
	e.mu.Lock()
	evs := e.recomputeLocked()
	subs := e.subsLocked()
	e.mu.Unlock()
	for _, ev := range evs {
		emit(subs, ev)
	}
}

// Build commits the completed structure: it debits the inventory by the
// blueprint's full cost, marks the session permanently placed, emits
// EventBuilt and schedules the next blueprint. A second call without force
// is a no-op returning false, which is what makes the commit idempotent.
func (e *Engine) Build(force bool) bool {
	e.mu.Lock()
	if e.closed || e.state == nil || !e.state.IsComplete || e.building {
		e.mu.Unlock()
		return false
	}
	if e.state.IsPermanentlyPlaced && !force {
		e.mu.Unlock()
		return false
	}
	bp := e.bp
	cost := bp.RequiredCounts()
	e.building = true
	e.mu.Unlock()

	// Debit outside the lock: the inventory's change callback re-enters the
	// engine. The building flag keeps a concurrent Build out.
	ok := e.inv.Debit(cost)

	e.mu.Lock()
	e.building = false
	if !ok || e.closed || e.state == nil || e.state.BlueprintID != bp.ID {
		e.mu.Unlock()
		return false
	}

	st := e.state.clone()
	st.IsPermanentlyPlaced = true
	e.state = st

	pos := blueprint.Vec3i{}
	if e.placement != nil && e.placement.Occupied(pos) {
		pos = e.placement.Suggest()
	}

	built := &BuiltInfo{
		BlueprintID: bp.ID,
		Name:        bp.Name,
		Difficulty:  bp.Difficulty,
		Position:    pos,
		Blocks:      append([]blueprint.Block(nil), bp.Blocks...),
	}
	evs := []Event{
		{Type: EventStateChanged, State: e.state.clone()},
		{Type: EventBuilt, Built: built},
	}
	subs := e.subsLocked()

	next := e.catalog.NextAfter(bp)
	if next != nil {
		prevID := bp.ID
		nextID := next.ID
		time.AfterFunc(e.cfg.RebuildDelay, func() {
			e.advance(prevID, nextID)
		})
	}
	e.mu.Unlock()

	if e.sink != nil {
		_ = e.sink.Write(BuildRecord{
			SessionID:   e.sessionID,
			BlueprintID: built.BlueprintID,
			Name:        built.Name,
			Difficulty:  built.Difficulty,
			Cost:        cost,
			Position:    pos,
			Forced:      force,
			At:          time.Now().UTC().Format(time.RFC3339),
		})
	}
	for _, ev := range evs {
		emit(subs, ev)
	}
	return true
}

// Close ends the session: pending timers are suppressed and the state is
// discarded.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	e.stopTimerLocked()
	e.state = nil
	e.bp = nil
}

// advance moves the session to the next blueprint after a build, unless the
// session switched away (or closed) in the meantime.
func (e *Engine) advance(prevID, nextID string) {
	e.mu.Lock()
	if e.closed || e.state == nil || e.state.BlueprintID != prevID {
		e.mu.Unlock()
		return
	}
	e.mu.Unlock()
	e.SetBlueprint(nextID)
}

// scheduleLocked arms the coalescing timer if it is not already pending.
func (e *Engine) scheduleLocked() {
	if e.timer != nil || e.state == nil {
		return
	}
	bpID := e.state.BlueprintID
	e.timer = time.AfterFunc(e.cfg.DebounceWindow, func() {
		e.fire(bpID)
	})
}

func (e *Engine) stopTimerLocked() {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}

// fire is the debounce timer body. Results for a blueprint the session has
// moved away from are dropped.
func (e *Engine) fire(bpID string) {
	e.mu.Lock()
	e.timer = nil
	if e.closed || e.state == nil || e.state.BlueprintID != bpID {
		e.mu.Unlock()
		return
	}
	evs := e.recomputeLocked()
	subs := e.subsLocked()
	e.mu.Unlock()
	for _, ev := range evs {
		emit(subs, ev)
	}
}

// recomputeLocked reruns the reconciliation algorithm against the current
// inventory snapshot. On any internal failure the previous state is retained
// unchanged; that invariant is what keeps UI consumers stable, since this
// runs on every inventory event.
func (e *Engine) recomputeLocked() (evs []Event) {
	if e.state == nil || e.bp == nil {
		return nil
	}
	prev := e.state

	defer func() {
		if r := recover(); r != nil {
			if e.log != nil {
				e.log.Printf("reconcile: recompute failed, keeping previous state: %v", r)
			}
			e.state = prev
			evs = nil
		}
	}()

	counts := e.inv.Counts()
	required := e.bp.RequiredCounts()

	// Per type, the first min(inventory, required) blocks in blueprint
	// order count as completed. The in-order fill is the deterministic
	// tie-break that keeps the same cells "filled in" across recomputes.
	satisfiable := make(map[string]int, len(required))
	for t, n := range required {
		have := counts[t]
		if have > n {
			have = n
		}
		satisfiable[t] = have
	}

	next := &State{
		BlueprintID:         prev.BlueprintID,
		Completed:           make([]blueprint.Block, 0, len(e.bp.Blocks)),
		Remaining:           make([]blueprint.Block, 0, len(e.bp.Blocks)),
		IsPermanentlyPlaced: prev.IsPermanentlyPlaced,
	}
	doneNonAir := 0
	totalNonAir := 0
	for _, blk := range e.bp.Blocks {
		if blk.TypeID == blocks.Air {
			// Air is always satisfied and never counts toward progress.
			next.Completed = append(next.Completed, blk)
			continue
		}
		totalNonAir++
		if satisfiable[blk.TypeID] > 0 {
			satisfiable[blk.TypeID]--
			next.Completed = append(next.Completed, blk)
			doneNonAir++
		} else {
			next.Remaining = append(next.Remaining, blk)
		}
	}

	if totalNonAir > 0 {
		next.Progress = float64(doneNonAir) / float64(totalNonAir)
	} else {
		next.Progress = 1
	}
	next.IsComplete = doneNonAir == totalNonAir

	e.state = next
	evs = []Event{{Type: EventStateChanged, State: next.clone()}}
	if next.IsComplete && !prev.IsComplete {
		evs = append(evs, Event{Type: EventCompleted, State: next.clone()})
	}
	return evs
}

func (e *Engine) subsLocked() []func(Event) {
	return append(([]func(Event))(nil), e.subs...)
}

func emit(subs []func(Event), ev Event) {
	for _, fn := range subs {
		fn(ev)
	}
}
