package schematic

import (
	"bytes"
	"encoding/binary"
)

// The legacy flat dialect is recovered by scanning for the literal field
// names rather than walking the tag tree, so truncated and hand-mangled
// files still yield their arrays when the bytes are there.
var (
	tagWidth  = []byte("Width")
	tagHeight = []byte("Height")
	tagLength = []byte("Length")
	tagBlocks = []byte("Blocks")
	tagData   = []byte("Data")
)

// Payload offsets relative to the end of a matched name. Sample files in the
// wild are not byte-stable here; these are configuration constants validated
// against fixtures, not format law.
const (
	dimPayloadOffset   = 0 // big-endian uint16 dimension value
	arrayLenOffset     = 0 // big-endian uint32 array length
	arrayPayloadOffset = 4 // array bytes follow the length
)

// maxVolume caps how large a scanned structure may claim to be before the
// scan is treated as inconsistent.
const maxVolume = 1 << 22

// scanFlat recovers a flat block/data layout from a buffer by locating the
// five known field names. It reports ok=false when a dimension is missing or
// the dimensions disagree with the recovered block array.
func scanFlat(data []byte, filename string) (RawSchematic, bool) {
	w, ok := scanDim(data, tagWidth)
	if !ok {
		return RawSchematic{}, false
	}
	h, ok := scanDim(data, tagHeight)
	if !ok {
		return RawSchematic{}, false
	}
	l, ok := scanDim(data, tagLength)
	if !ok {
		return RawSchematic{}, false
	}
	if w < 1 || h < 1 || l < 1 || w*h*l > maxVolume {
		return RawSchematic{}, false
	}

	blocks, ok := scanArray(data, tagBlocks)
	if !ok || w*h*l != len(blocks) {
		return RawSchematic{}, false
	}

	n := w * h * l
	ids := make([]int32, n)
	for i, b := range blocks {
		ids[i] = int32(b)
	}

	dv := make([]int32, n)
	if extra, ok := scanArray(data, tagData); ok && len(extra) >= n {
		for i := 0; i < n; i++ {
			dv[i] = int32(extra[i])
		}
	}

	return RawSchematic{
		Width:     w,
		Height:    h,
		Length:    l,
		BlockIDs:  ids,
		BlockData: dv,
		Source:    filename,
	}, true
}

func scanDim(data, name []byte) (int, bool) {
	i := bytes.Index(data, name)
	if i < 0 {
		return 0, false
	}
	at := i + len(name) + dimPayloadOffset
	if at+2 > len(data) {
		return 0, false
	}
	return int(binary.BigEndian.Uint16(data[at:])), true
}

func scanArray(data, name []byte) ([]byte, bool) {
	i := bytes.Index(data, name)
	if i < 0 {
		return nil, false
	}
	at := i + len(name) + arrayLenOffset
	if at+4 > len(data) {
		return nil, false
	}
	n := int(binary.BigEndian.Uint32(data[at:]))
	if n < 0 || n > maxVolume {
		return nil, false
	}
	start := at + arrayPayloadOffset
	if start+n > len(data) {
		return nil, false
	}
	return data[start : start+n], true
}
