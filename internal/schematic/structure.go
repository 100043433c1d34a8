package schematic

import (
	"fmt"

	"github.com/Tnze/go-mc/nbt"
)

// PaletteBlock is one placed block of the modern palette-based dialect,
// already dereferenced to its namespaced name.
type PaletteBlock struct {
	Name string
	Pos  [3]int
}

// structureDoc mirrors the uncompressed tagged document of the modern
// dialect: a palette of block descriptors plus a list of
// {position, palette index} entries.
type structureDoc struct {
	Size    []int32 `nbt:"size"`
	Palette []struct {
		Name string `nbt:"Name"`
	} `nbt:"palette"`
	Blocks []struct {
		Pos   []int32 `nbt:"pos"`
		State int32   `nbt:"state"`
	} `nbt:"blocks"`
}

// DecodeStructure parses the modern palette-based dialect. Unlike Decode it
// may fail: callers that cannot establish the buffer is an uncompressed
// tagged document fall back to Decode on error. Entries with a missing
// palette index or malformed position are skipped.
func DecodeStructure(data []byte, filename string) ([]PaletteBlock, [3]int, error) {
	var doc structureDoc
	if err := nbt.Unmarshal(data, &doc); err != nil {
		return nil, [3]int{}, fmt.Errorf("structure %s: %w", filename, err)
	}
	if len(doc.Palette) == 0 || len(doc.Blocks) == 0 {
		return nil, [3]int{}, fmt.Errorf("structure %s: no palette or blocks", filename)
	}

	var size [3]int
	if len(doc.Size) == 3 {
		size = [3]int{int(doc.Size[0]), int(doc.Size[1]), int(doc.Size[2])}
	}

	out := make([]PaletteBlock, 0, len(doc.Blocks))
	for _, b := range doc.Blocks {
		if b.State < 0 || int(b.State) >= len(doc.Palette) {
			continue
		}
		if len(b.Pos) != 3 {
			continue
		}
		out = append(out, PaletteBlock{
			Name: doc.Palette[b.State].Name,
			Pos:  [3]int{int(b.Pos[0]), int(b.Pos[1]), int(b.Pos[2])},
		})
	}
	if len(out) == 0 {
		return nil, size, fmt.Errorf("structure %s: no resolvable blocks", filename)
	}
	return out, size, nil
}
