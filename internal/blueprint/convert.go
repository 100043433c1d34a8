package blueprint

import (
	"fmt"

	"blockquest.dev/internal/blocks"
	"blockquest.dev/internal/schematic"
)

// Meta carries the catalog metadata for a blueprint built from decoded
// schematic content.
type Meta struct {
	ID          string
	Name        string
	Difficulty  Difficulty
	Description string
	Origin      Origin
}

// FromRaw resolves every cell of a decoded flat schematic against the
// canonical palette and assembles a blueprint. Air cells are dropped from
// the block list; the dimensions keep the full decoded extent.
func FromRaw(raw schematic.RawSchematic, r *blocks.Resolver, meta Meta) (*Blueprint, error) {
	if raw.Volume() == 0 || raw.Volume() != len(raw.BlockIDs) {
		return nil, fmt.Errorf("blueprint %s: inconsistent raw schematic", meta.ID)
	}
	blks := make([]Block, 0, raw.Volume()/2)
	for y := 0; y < raw.Height; y++ {
		for z := 0; z < raw.Length; z++ {
			for x := 0; x < raw.Width; x++ {
				id, data := raw.At(x, y, z)
				if id == 0 {
					continue
				}
				ident := blocks.NumericIdentity(int(id), int(data), raw.Source)
				typeID := r.Resolve(ident)
				if typeID == blocks.Air {
					continue
				}
				orig := ident
				blks = append(blks, Block{
					TypeID:   typeID,
					Pos:      Vec3i{X: x, Y: y, Z: z},
					Original: &orig,
				})
			}
		}
	}
	bp := &Blueprint{
		ID:          meta.ID,
		Name:        meta.Name,
		Difficulty:  meta.Difficulty,
		Description: meta.Description,
		Blocks:      blks,
		Dim:         Vec3i{X: raw.Width, Y: raw.Height, Z: raw.Length},
		Origin:      meta.Origin,
	}
	if err := bp.Validate(); err != nil {
		return nil, err
	}
	return bp, nil
}

// FromStructure assembles a blueprint from the modern palette-based dialect.
// Positions are normalized so the minimum on each axis is zero.
func FromStructure(pblocks []schematic.PaletteBlock, size [3]int, source string, r *blocks.Resolver, meta Meta) (*Blueprint, error) {
	blks := make([]Block, 0, len(pblocks))
	for _, pb := range pblocks {
		ident := blocks.NameIdentity(pb.Name, source)
		typeID := r.Resolve(ident)
		if typeID == blocks.Air {
			continue
		}
		orig := ident
		blks = append(blks, Block{
			TypeID:   typeID,
			Pos:      Vec3i{X: pb.Pos[0], Y: pb.Pos[1], Z: pb.Pos[2]},
			Original: &orig,
		})
	}
	if len(blks) == 0 {
		return nil, fmt.Errorf("blueprint %s: structure resolved to nothing", meta.ID)
	}
	norm, extent := normalize(blks)
	dim := Vec3i{X: size[0], Y: size[1], Z: size[2]}
	if dim.X < extent.X || dim.Y < extent.Y || dim.Z < extent.Z {
		dim = extent
	}
	bp := &Blueprint{
		ID:          meta.ID,
		Name:        meta.Name,
		Difficulty:  meta.Difficulty,
		Description: meta.Description,
		Blocks:      norm,
		Dim:         dim,
		Origin:      meta.Origin,
	}
	if err := bp.Validate(); err != nil {
		return nil, err
	}
	return bp, nil
}
