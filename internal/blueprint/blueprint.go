// Package blueprint holds the immutable structure templates players build
// against, and the catalog that owns them.
package blueprint

import (
	"fmt"

	"blockquest.dev/internal/blocks"
)

// Difficulty buckets blueprints for session progression.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

func (d Difficulty) Valid() bool {
	switch d {
	case Easy, Medium, Hard:
		return true
	}
	return false
}

// Origin separates the built-in catalog from player-imported structures.
// Blueprint ids are unique within an origin, not across origins.
type Origin string

const (
	Builtin  Origin = "builtin"
	Imported Origin = "imported"
)

// Vec3i is an integer grid position.
type Vec3i struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// Block is one placed cell of a blueprint. Positions are relative to the
// blueprint origin and normalized so the minimum on each axis is 0.
// Original, when present, records the external identity the cell was
// resolved from.
type Block struct {
	TypeID   string
	Pos      Vec3i
	Original *blocks.Identity
}

// Blueprint is an immutable build template. Construct via FromRaw,
// FromStructure or FromDef; do not mutate after construction.
type Blueprint struct {
	ID          string
	Name        string
	Difficulty  Difficulty
	Description string
	Blocks      []Block
	Dim         Vec3i
	Origin      Origin
}

// Validate enforces the structural invariants: a non-empty block list,
// positive dimensions, every position inside [0,dim) on its axis, and
// well-formed metadata.
func (b *Blueprint) Validate() error {
	if b == nil {
		return fmt.Errorf("nil blueprint")
	}
	if b.ID == "" {
		return fmt.Errorf("blueprint without id")
	}
	if !b.Difficulty.Valid() {
		return fmt.Errorf("blueprint %s: bad difficulty %q", b.ID, b.Difficulty)
	}
	if b.Origin != Builtin && b.Origin != Imported {
		return fmt.Errorf("blueprint %s: bad origin %q", b.ID, b.Origin)
	}
	if len(b.Blocks) == 0 {
		return fmt.Errorf("blueprint %s: no blocks", b.ID)
	}
	if b.Dim.X < 1 || b.Dim.Y < 1 || b.Dim.Z < 1 {
		return fmt.Errorf("blueprint %s: non-positive dimensions %+v", b.ID, b.Dim)
	}
	for i, blk := range b.Blocks {
		if blk.TypeID == "" {
			return fmt.Errorf("blueprint %s: block %d without type", b.ID, i)
		}
		p := blk.Pos
		if p.X < 0 || p.X >= b.Dim.X || p.Y < 0 || p.Y >= b.Dim.Y || p.Z < 0 || p.Z >= b.Dim.Z {
			return fmt.Errorf("blueprint %s: block %d out of bounds %+v", b.ID, i, p)
		}
	}
	return nil
}

// RequiredCounts returns how many units of each non-air type the blueprint
// needs.
func (b *Blueprint) RequiredCounts() map[string]int {
	out := make(map[string]int)
	for _, blk := range b.Blocks {
		if blk.TypeID == blocks.Air {
			continue
		}
		out[blk.TypeID]++
	}
	return out
}

// CountNonAir returns how many blocks participate in progress tracking.
func (b *Blueprint) CountNonAir() int {
	n := 0
	for _, blk := range b.Blocks {
		if blk.TypeID != blocks.Air {
			n++
		}
	}
	return n
}

// normalize shifts every position so the minimum coordinate on each axis is
// zero, and shrinks Dim to the occupied extent when it was not supplied.
func normalize(blks []Block) ([]Block, Vec3i) {
	if len(blks) == 0 {
		return blks, Vec3i{}
	}
	min := blks[0].Pos
	max := blks[0].Pos
	for _, b := range blks[1:] {
		if b.Pos.X < min.X {
			min.X = b.Pos.X
		}
		if b.Pos.Y < min.Y {
			min.Y = b.Pos.Y
		}
		if b.Pos.Z < min.Z {
			min.Z = b.Pos.Z
		}
		if b.Pos.X > max.X {
			max.X = b.Pos.X
		}
		if b.Pos.Y > max.Y {
			max.Y = b.Pos.Y
		}
		if b.Pos.Z > max.Z {
			max.Z = b.Pos.Z
		}
	}
	out := make([]Block, len(blks))
	for i, b := range blks {
		b.Pos = Vec3i{X: b.Pos.X - min.X, Y: b.Pos.Y - min.Y, Z: b.Pos.Z - min.Z}
		out[i] = b
	}
	dim := Vec3i{X: max.X - min.X + 1, Y: max.Y - min.Y + 1, Z: max.Z - min.Z + 1}
	return out, dim
}
