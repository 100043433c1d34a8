package schematic

import (
	"blockquest.dev/internal/schematic/synth"
)

// Format detection markers.
const (
	gzipMagic0 = 0x1F
	gzipMagic1 = 0x8B
	// tagCompound is the tagged-binary compound-root marker.
	tagCompound = 0x0A
)

// seedWindow is how many leading bytes feed the fallback seed for
// compressed buffers.
const seedWindow = 100

// Decode turns a byte buffer into a RawSchematic. It never fails outward:
// unrecognized or broken layouts produce a deterministic synthesized
// structure instead.
func Decode(data []byte, filename string) (out RawSchematic) {
	defer func() {
		if r := recover(); r != nil {
			out = placeholder(filename)
		}
	}()

	if len(data) >= 2 && data[0] == gzipMagic0 && data[1] == gzipMagic1 {
		// Compressed envelope: not decompressed locally. Derive a seed
		// from the leading bytes and synthesize a stand-in structure.
		return synthesize(Seed(data), filename)
	}

	if len(data) > 0 && data[0] == tagCompound {
		// Tagged wrapper around a legacy flat layout: scan for the
		// field names heuristically.
		if raw, ok := scanFlat(data, filename); ok {
			return raw
		}
		return placeholder(filename)
	}

	// Bare legacy flat dialect.
	if raw, ok := scanFlat(data, filename); ok {
		return raw
	}
	return placeholder(filename)
}

// Seed computes the fallback-generator seed for an undecodable buffer:
// a weighted sum over the first 100 bytes, modulo 1000.
func Seed(data []byte) int {
	n := len(data)
	if n > seedWindow {
		n = seedWindow
	}
	sum := 0
	for i := 0; i < n; i++ {
		sum += int(data[i]) * (i % 10)
	}
	return sum % 1000
}

func synthesize(seed int, filename string) RawSchematic {
	w, h, d, ids := synth.Generate(seed)
	return RawSchematic{
		Width:       w,
		Height:      h,
		Length:      d,
		BlockIDs:    ids,
		BlockData:   make([]int32, len(ids)),
		Source:      filename,
		Synthesized: true,
	}
}

// placeholder is the unseeded 5x5x5 hollow shell used for buffers that
// looked parseable but were not.
func placeholder(filename string) RawSchematic {
	const side = 5
	ids := synth.HollowShell(side, side, side)
	return RawSchematic{
		Width:       side,
		Height:      side,
		Length:      side,
		BlockIDs:    ids,
		BlockData:   make([]int32, len(ids)),
		Source:      filename,
		Synthesized: true,
	}
}
