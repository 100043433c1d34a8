package blueprint

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"blockquest.dev/internal/blocks"
)

// Catalog owns every blueprint known to the process: the built-in set loaded
// at boot plus structures imported at runtime. Ids are unique within an
// origin; lookups prefer builtin over imported on a cross-origin clash.
type Catalog struct {
	mu       sync.RWMutex
	byOrigin map[Origin]map[string]*Blueprint
	order    []*Blueprint
	digest   string
}

func NewCatalog() *Catalog {
	return &Catalog{
		byOrigin: map[Origin]map[string]*Blueprint{
			Builtin:  {},
			Imported: {},
		},
	}
}

// Add validates and registers a blueprint. Duplicate ids within the same
// origin are rejected.
func (c *Catalog) Add(bp *Blueprint) error {
	if err := bp.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, dup := c.byOrigin[bp.Origin][bp.ID]; dup {
		return fmt.Errorf("blueprint %s already registered in %s", bp.ID, bp.Origin)
	}
	c.byOrigin[bp.Origin][bp.ID] = bp
	c.order = append(c.order, bp)
	c.digest = ""
	return nil
}

// Get looks a blueprint up by id, builtin first.
func (c *Catalog) Get(id string) *Blueprint {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if bp, ok := c.byOrigin[Builtin][id]; ok {
		return bp
	}
	return c.byOrigin[Imported][id]
}

// All returns the blueprints in registration order.
func (c *Catalog) All() []*Blueprint {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]*Blueprint(nil), c.order...)
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}

// NextAfter picks the blueprint a session moves to once cur is permanently
// placed: the first other blueprint sharing difficulty and origin, falling
// back to any other blueprint of the same difficulty.
func (c *Catalog) NextAfter(cur *Blueprint) *Blueprint {
	if cur == nil {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	var sameDifficulty *Blueprint
	for _, bp := range c.order {
		if bp.ID == cur.ID && bp.Origin == cur.Origin {
			continue
		}
		if bp.Difficulty != cur.Difficulty {
			continue
		}
		if bp.Origin == cur.Origin {
			return bp
		}
		if sameDifficulty == nil {
			sameDifficulty = bp
		}
	}
	return sameDifficulty
}

// Digest is a sha256 over the registered blueprint identities, recomputed
// lazily after mutation.
func (c *Catalog) Digest() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.digest == "" {
		keys := make([]string, 0, len(c.order))
		for _, bp := range c.order {
			keys = append(keys, string(bp.Origin)+"/"+bp.ID)
		}
		sort.Strings(keys)
		h := sha256.New()
		for _, k := range keys {
			h.Write([]byte(k))
			h.Write([]byte{'\n'})
		}
		c.digest = hex.EncodeToString(h.Sum(nil))
	}
	return c.digest
}

// Def is the on-disk JSON form of a blueprint.
type Def struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Difficulty  Difficulty `json:"difficulty"`
	Description string     `json:"description,omitempty"`
	Dim         [3]int     `json:"dim"`
	Blocks      []DefBlock `json:"blocks"`
}

type DefBlock struct {
	Pos   [3]int `json:"pos"`
	Block string `json:"block"`
}

// FromDef builds a blueprint from its JSON definition, checking every block
// type against the palette.
func FromDef(def Def, origin Origin, pal *blocks.Palette) (*Blueprint, error) {
	blks := make([]Block, 0, len(def.Blocks))
	for i, db := range def.Blocks {
		if !pal.Has(db.Block) {
			return nil, fmt.Errorf("blueprint %s: block %d has unknown type %q", def.ID, i, db.Block)
		}
		blks = append(blks, Block{
			TypeID: db.Block,
			Pos:    Vec3i{X: db.Pos[0], Y: db.Pos[1], Z: db.Pos[2]},
		})
	}
	bp := &Blueprint{
		ID:          def.ID,
		Name:        def.Name,
		Difficulty:  def.Difficulty,
		Description: def.Description,
		Blocks:      blks,
		Dim:         Vec3i{X: def.Dim[0], Y: def.Dim[1], Z: def.Dim[2]},
		Origin:      origin,
	}
	if err := bp.Validate(); err != nil {
		return nil, err
	}
	return bp, nil
}

// LoadDir registers every *.json blueprint definition under dir as a builtin
// blueprint. Each file is schema-validated before decoding.
func (c *Catalog) LoadDir(dir string, pal *blocks.Palette) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		raw, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return err
		}
		def, err := DecodeDef(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		bp, err := FromDef(def, Builtin, pal)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if err := c.Add(bp); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// DecodeDef schema-validates and decodes one JSON blueprint definition.
func DecodeDef(raw []byte) (Def, error) {
	var def Def
	if err := ValidateDefJSON(raw); err != nil {
		return def, err
	}
	if err := json.Unmarshal(raw, &def); err != nil {
		return def, err
	}
	return def, nil
}
