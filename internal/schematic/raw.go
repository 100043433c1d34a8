// Package schematic decodes externally authored 3D block-structure files.
// Two dialects exist in the wild: a legacy flat-array layout and a modern
// palette-based tagged-binary layout. Decoding is total: every malformed,
// truncated or unrecognizable buffer resolves to a synthesized placeholder
// rather than an error.
package schematic

// RawSchematic is the internal flat representation of a decoded structure.
// BlockIDs and BlockData are both Width*Height*Length long, indexed
// (y*Length+z)*Width+x.
type RawSchematic struct {
	Width  int
	Height int
	Length int

	BlockIDs  []int32
	BlockData []int32

	// Source is the originating filename, carried for logging only.
	Source string
	// Synthesized is set when the content came from a fallback generator
	// rather than the buffer itself.
	Synthesized bool
}

// Volume returns Width*Height*Length.
func (r RawSchematic) Volume() int {
	return r.Width * r.Height * r.Length
}

// At returns the block id and data value at (x, y, z).
func (r RawSchematic) At(x, y, z int) (id, data int32) {
	i := (y*r.Length+z)*r.Width + x
	return r.BlockIDs[i], r.BlockData[i]
}
