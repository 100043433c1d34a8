package blocks

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Air is the canonical empty cell. It is always a palette member, is never
// inventory-tracked and never rendered.
const Air = "air"

// Def describes one canonical block type the game knows how to render and
// track. Texture and Fallback are opaque references consumed by the renderer.
type Def struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Texture     string `json:"texture,omitempty"`
	Fallback    string `json:"fallback,omitempty"`
}

// Palette is the process-wide canonical block vocabulary. It is built once
// and treated as a read-only snapshot by resolvers; refreshing the palette
// means constructing a new one.
type Palette struct {
	ids    []string
	index  map[string]int
	defs   map[string]Def
	digest string
}

func NewPalette(defs []Def) (*Palette, error) {
	p := &Palette{
		index: make(map[string]int, len(defs)+1),
		defs:  make(map[string]Def, len(defs)+1),
	}
	for _, d := range defs {
		if d.ID == "" {
			return nil, fmt.Errorf("palette entry with empty id")
		}
		if _, dup := p.index[d.ID]; dup {
			return nil, fmt.Errorf("duplicate palette id %q", d.ID)
		}
		p.index[d.ID] = len(p.ids)
		p.ids = append(p.ids, d.ID)
		p.defs[d.ID] = d
	}
	if _, ok := p.index[Air]; !ok {
		// Air is non-negotiable: splice it in at index 0.
		p.ids = append([]string{Air}, p.ids...)
		p.defs[Air] = Def{ID: Air, DisplayName: "Air"}
		p.index = make(map[string]int, len(p.ids))
		for i, id := range p.ids {
			p.index[id] = i
		}
	}
	p.digest = digestDefs(p.ids, p.defs)
	return p, nil
}

// Default returns the built-in canonical vocabulary.
func Default() *Palette {
	p, err := NewPalette(defaultDefs)
	if err != nil {
		panic(err) // static table, cannot fail
	}
	return p
}

// Load reads a palette definition file (a JSON array of defs).
func Load(path string) (*Palette, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var defs []Def
	if err := json.Unmarshal(raw, &defs); err != nil {
		return nil, fmt.Errorf("palette %s: %w", path, err)
	}
	return NewPalette(defs)
}

func (p *Palette) Has(id string) bool {
	_, ok := p.index[id]
	return ok
}

func (p *Palette) Get(id string) (Def, bool) {
	d, ok := p.defs[id]
	return d, ok
}

// IDs returns the palette ids in order. Callers must not mutate the slice.
func (p *Palette) IDs() []string {
	return p.ids
}

// First returns the first non-air palette entry, used as a late-stage
// resolver fallback.
func (p *Palette) First() string {
	for _, id := range p.ids {
		if id != Air {
			return id
		}
	}
	return Air
}

func (p *Palette) Size() int {
	return len(p.ids)
}

// Digest is a sha256 over the palette contents, sent to clients so they can
// cache catalog data.
func (p *Palette) Digest() string {
	return p.digest
}

func digestDefs(ids []string, defs map[string]Def) string {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	h := sha256.New()
	for _, id := range sorted {
		b, _ := json.Marshal(defs[id])
		h.Write(b)
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

var defaultDefs = []Def{
	{ID: "air", DisplayName: "Air"},
	{ID: "stone", DisplayName: "Stone", Texture: "blocks/stone"},
	{ID: "cobblestone", DisplayName: "Cobblestone", Texture: "blocks/cobblestone"},
	{ID: "stoneplank", DisplayName: "Stone Bricks", Texture: "blocks/stoneplank"},
	{ID: "brick", DisplayName: "Bricks", Texture: "blocks/brick"},
	{ID: "dirt", DisplayName: "Dirt", Texture: "blocks/dirt"},
	{ID: "grass", DisplayName: "Grass", Texture: "blocks/grass"},
	{ID: "sand", DisplayName: "Sand", Texture: "blocks/sand"},
	{ID: "sandstone", DisplayName: "Sandstone", Texture: "blocks/sandstone"},
	{ID: "plank", DisplayName: "Planks", Texture: "blocks/plank"},
	{ID: "log", DisplayName: "Log", Texture: "blocks/log"},
	{ID: "leaves", DisplayName: "Leaves", Texture: "blocks/leaves", Fallback: "noise:leaves"},
	{ID: "glass", DisplayName: "Glass", Texture: "blocks/glass"},
	{ID: "wool", DisplayName: "Wool", Texture: "blocks/wool"},
	{ID: "coal", DisplayName: "Coal Block", Texture: "blocks/coal"},
	{ID: "iron", DisplayName: "Iron Block", Texture: "blocks/iron"},
	{ID: "gold", DisplayName: "Gold Block", Texture: "blocks/gold"},
	{ID: "diamond", DisplayName: "Diamond Block", Texture: "blocks/diamond"},
	{ID: "bedrock", DisplayName: "Bedrock", Texture: "blocks/bedrock"},
	{ID: "chest", DisplayName: "Chest", Texture: "blocks/chest"},
	{ID: "workbench", DisplayName: "Workbench", Texture: "blocks/workbench"},
	{ID: "torch", DisplayName: "Torch", Texture: "blocks/torch", Fallback: "glow:warm"},
}
