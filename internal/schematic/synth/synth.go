// Package synth provides the deterministic fallback generators the decoder
// uses when a schematic buffer cannot be parsed. All generators are pure
// functions of their inputs: the same seed or dimensions always produce the
// same block list.
package synth

// Legacy numeric block ids emitted by the generators. They flow through the
// identity resolver like ids decoded from a real file.
const (
	IDAir         = 0
	IDStone       = 1
	IDCobblestone = 4
	IDPlank       = 5
	IDGlass       = 20
	IDGold        = 41
	IDIron        = 42
	IDBrick       = 45
	IDChest       = 54
	IDDiamond     = 57
	IDWorkbench   = 58
)

// Preset selects the material set for WalledEnclosure.
type Preset int

const (
	PresetWood Preset = iota
	PresetStone
)

// Generate derives dimensions from the seed and runs the generator selected
// by seed%3. Used for buffers the decoder recognizes but cannot decode.
func Generate(seed int) (w, h, d int, ids []int32) {
	if seed < 0 {
		seed = -seed
	}
	w = 6 + seed%5
	h = 5 + (seed/3)%6
	d = 6 + (seed/7)%5
	switch seed % 3 {
	case 0:
		return w, h, d, HollowShell(w, h, d)
	case 1:
		return w, h, d, TaperingTower(w, h, d)
	default:
		preset := PresetWood
		if seed%2 == 1 {
			preset = PresetStone
		}
		return w, h, d, WalledEnclosure(w, h, d, preset)
	}
}

// HollowShell fills only the outer faces of a w*h*d box: the bottom layer
// with stone, the top layer with planks, the remaining shell cells with
// cobblestone. The interior stays air. The unseeded 5x5x5 form is the
// decoder's placeholder of last resort.
func HollowShell(w, h, d int) []int32 {
	w, h, d = clampDims(w, h, d)
	ids := make([]int32, w*h*d)
	for y := 0; y < h; y++ {
		for z := 0; z < d; z++ {
			for x := 0; x < w; x++ {
				onShell := x == 0 || x == w-1 || y == 0 || y == h-1 || z == 0 || z == d-1
				if !onShell {
					continue
				}
				var id int32
				switch {
				case y == 0:
					id = IDStone
				case y == h-1:
					id = IDPlank
				default:
					id = IDCobblestone
				}
				ids[index(x, y, z, w, d)] = id
			}
		}
	}
	return ids
}

// TaperingTower builds a square tower that narrows with height. Each level is
// the outer ring of a centered levelWidth(y) square; the bottom third is iron,
// the middle third gold, the top third diamond (the final layer always
// diamond). Every third layer gets cross-braces along both ring diagonals.
func TaperingTower(w, h, d int) []int32 {
	w, h, d = clampDims(w, h, d)
	ids := make([]int32, w*h*d)
	base := w
	if d < base {
		base = d
	}
	for y := 0; y < h; y++ {
		lw := base - (y*(base-3))/h
		if lw < 3 {
			lw = 3
		}
		offX := (w - lw) / 2
		offZ := (d - lw) / 2

		id := int32(IDIron)
		switch {
		case y == h-1 || y >= (2*h)/3:
			id = IDDiamond
		case y >= h/3:
			id = IDGold
		}

		brace := y%3 == 0
		for lz := 0; lz < lw; lz++ {
			for lx := 0; lx < lw; lx++ {
				onRing := lx == 0 || lx == lw-1 || lz == 0 || lz == lw-1
				onDiag := brace && (lx == lz || lx == lw-1-lz)
				if !onRing && !onDiag {
					continue
				}
				ids[index(offX+lx, y, offZ+lz, w, d)] = id
			}
		}
	}
	return ids
}

// WalledEnclosure builds a closed room: floor at y=0, roof at y=h-1, walls on
// the four outer faces. Window openings sit at x in {2,w-3} and z in {2,d-3}
// one and two layers below the roof; a two-layer door gap is centered on the
// z=0 face; four furniture markers occupy the interior corners of the first
// interior layer.
func WalledEnclosure(w, h, d int, preset Preset) []int32 {
	w, h, d = clampDims(w, h, d)
	floor, wall, roof := int32(IDPlank), int32(IDPlank), int32(IDPlank)
	if preset == PresetStone {
		floor, wall, roof = IDCobblestone, IDBrick, IDStone
	}
	ids := make([]int32, w*h*d)
	for y := 0; y < h; y++ {
		for z := 0; z < d; z++ {
			for x := 0; x < w; x++ {
				switch {
				case y == 0:
					ids[index(x, y, z, w, d)] = floor
				case y == h-1:
					ids[index(x, y, z, w, d)] = roof
				case x == 0 || x == w-1 || z == 0 || z == d-1:
					if isWindow(x, y, z, w, h, d) || isDoor(x, y, z, w) {
						continue
					}
					ids[index(x, y, z, w, d)] = wall
				}
			}
		}
	}

	// Furniture markers on the first interior layer.
	if w >= 4 && d >= 4 && h >= 3 {
		ids[index(1, 1, 1, w, d)] = IDChest
		ids[index(w-2, 1, 1, w, d)] = IDWorkbench
		ids[index(1, 1, d-2, w, d)] = IDWorkbench
		ids[index(w-2, 1, d-2, w, d)] = IDChest
	}
	return ids
}

func isWindow(x, y, z, w, h, d int) bool {
	if y != h-2 && y != h-3 {
		return false
	}
	if (x == 0 || x == w-1) && (z == 2 || z == d-3) {
		return true
	}
	if (z == 0 || z == d-1) && (x == 2 || x == w-3) {
		return true
	}
	return false
}

func isDoor(x, y, z, w int) bool {
	return z == 0 && x == w/2 && (y == 1 || y == 2)
}

func index(x, y, z, w, d int) int {
	return (y*d+z)*w + x
}

func clampDims(w, h, d int) (int, int, int) {
	if w < 3 {
		w = 3
	}
	if h < 3 {
		h = 3
	}
	if d < 3 {
		d = 3
	}
	return w, h, d
}
