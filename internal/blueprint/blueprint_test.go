package blueprint

import (
	"testing"

	"blockquest.dev/internal/blocks"
	"blockquest.dev/internal/schematic"
)

func mustResolver(t *testing.T) *blocks.Resolver {
	t.Helper()
	return blocks.NewResolver(blocks.Default(), nil)
}

func TestValidate(t *testing.T) {
	good := &Blueprint{
		ID:         "hut",
		Name:       "Hut",
		Difficulty: Easy,
		Origin:     Builtin,
		Blocks:     []Block{{TypeID: "stone", Pos: Vec3i{X: 0, Y: 0, Z: 0}}},
		Dim:        Vec3i{X: 1, Y: 1, Z: 1},
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("valid blueprint rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Blueprint)
	}{
		{"empty id", func(b *Blueprint) { b.ID = "" }},
		{"bad difficulty", func(b *Blueprint) { b.Difficulty = "brutal" }},
		{"bad origin", func(b *Blueprint) { b.Origin = "dlc" }},
		{"no blocks", func(b *Blueprint) { b.Blocks = nil }},
		{"zero dim", func(b *Blueprint) { b.Dim.Y = 0 }},
		{"block out of bounds", func(b *Blueprint) { b.Blocks[0].Pos.X = 1 }},
		{"block without type", func(b *Blueprint) { b.Blocks[0].TypeID = "" }},
	}
	for _, c := range cases {
		bp := *good
		bp.Blocks = append([]Block(nil), good.Blocks...)
		c.mutate(&bp)
		if err := bp.Validate(); err == nil {
			t.Fatalf("%s: accepted", c.name)
		}
	}
}

func TestFromRaw(t *testing.T) {
	// 2x1x2 with one air cell: air never reaches the block list.
	raw := schematic.RawSchematic{
		Width: 2, Height: 1, Length: 2,
		BlockIDs:  []int32{1, 0, 5, 17},
		BlockData: []int32{0, 0, 0, 0},
		Source:    "t.schematic",
	}
	bp, err := FromRaw(raw, mustResolver(t), Meta{
		ID: "imp", Name: "Imported", Difficulty: Medium, Origin: Imported,
	})
	if err != nil {
		t.Fatalf("FromRaw: %v", err)
	}
	if len(bp.Blocks) != 3 {
		t.Fatalf("%d blocks, want 3", len(bp.Blocks))
	}
	if bp.Dim != (Vec3i{X: 2, Y: 1, Z: 2}) {
		t.Fatalf("dim %+v", bp.Dim)
	}
	want := map[string]int{"stone": 1, "plank": 1, "log": 1}
	got := bp.RequiredCounts()
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("required[%s] = %d, want %d", k, got[k], v)
		}
	}
	if bp.Blocks[0].Original == nil || bp.Blocks[0].Original.ID != 1 {
		t.Fatalf("original identity not retained: %+v", bp.Blocks[0].Original)
	}
}

func TestFromStructureNormalizes(t *testing.T) {
	pblocks := []schematic.PaletteBlock{
		{Name: "minecraft:stone", Pos: [3]int{5, 2, -1}},
		{Name: "minecraft:oak_planks", Pos: [3]int{6, 3, 0}},
	}
	bp, err := FromStructure(pblocks, [3]int{0, 0, 0}, "t.nbt", mustResolver(t), Meta{
		ID: "s", Name: "S", Difficulty: Easy, Origin: Imported,
	})
	if err != nil {
		t.Fatalf("FromStructure: %v", err)
	}
	if bp.Blocks[0].Pos != (Vec3i{X: 0, Y: 0, Z: 0}) {
		t.Fatalf("min position not shifted to origin: %+v", bp.Blocks[0].Pos)
	}
	if bp.Dim != (Vec3i{X: 2, Y: 2, Z: 2}) {
		t.Fatalf("dim %+v, want occupied extent", bp.Dim)
	}
}

func TestCatalogAddGetAndDigest(t *testing.T) {
	c := NewCatalog()
	bp := &Blueprint{
		ID: "hut", Name: "Hut", Difficulty: Easy, Origin: Builtin,
		Blocks: []Block{{TypeID: "stone"}}, Dim: Vec3i{X: 1, Y: 1, Z: 1},
	}
	if err := c.Add(bp); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := c.Add(bp); err == nil {
		t.Fatalf("duplicate id in same origin accepted")
	}

	// Same id in the other origin is fine; builtin wins lookups.
	imp := *bp
	imp.Origin = Imported
	if err := c.Add(&imp); err != nil {
		t.Fatalf("Add imported: %v", err)
	}
	if got := c.Get("hut"); got.Origin != Builtin {
		t.Fatalf("Get preferred %s", got.Origin)
	}
	if c.Len() != 2 {
		t.Fatalf("len %d", c.Len())
	}

	d1 := c.Digest()
	other := *bp
	other.ID = "barn"
	if err := c.Add(&other); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if c.Digest() == d1 {
		t.Fatalf("digest unchanged after add")
	}
}

func TestNextAfter(t *testing.T) {
	mk := func(id string, d Difficulty, o Origin) *Blueprint {
		return &Blueprint{
			ID: id, Name: id, Difficulty: d, Origin: o,
			Blocks: []Block{{TypeID: "stone"}}, Dim: Vec3i{X: 1, Y: 1, Z: 1},
		}
	}
	c := NewCatalog()
	a := mk("a", Easy, Builtin)
	for _, bp := range []*Blueprint{a, mk("b", Easy, Builtin), mk("c", Easy, Imported), mk("d", Hard, Builtin)} {
		if err := c.Add(bp); err != nil {
			t.Fatalf("Add %s: %v", bp.ID, err)
		}
	}

	if next := c.NextAfter(a); next == nil || next.ID != "b" {
		t.Fatalf("next after a = %v, want b (same difficulty and origin)", next)
	}
	if next := c.NextAfter(c.Get("b")); next == nil || next.ID != "a" {
		t.Fatalf("next after b = %v, want a", next)
	}
	if next := c.NextAfter(c.Get("d")); next != nil {
		t.Fatalf("next after d = %v, want none (no other hard blueprint)", next)
	}

	// Cross-origin fallback when the origin is exhausted.
	c2 := NewCatalog()
	x := mk("x", Medium, Builtin)
	y := mk("y", Medium, Imported)
	if err := c2.Add(x); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := c2.Add(y); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if next := c2.NextAfter(x); next == nil || next.ID != "y" {
		t.Fatalf("cross-origin next = %v, want y", next)
	}
	if c2.NextAfter(nil) != nil {
		t.Fatalf("NextAfter(nil) != nil")
	}
}

func TestFromDef(t *testing.T) {
	pal := blocks.Default()
	def := Def{
		ID: "hut", Name: "Hut", Difficulty: Easy,
		Dim:    [3]int{2, 1, 1},
		Blocks: []DefBlock{{Pos: [3]int{0, 0, 0}, Block: "stone"}, {Pos: [3]int{1, 0, 0}, Block: "plank"}},
	}
	bp, err := FromDef(def, Builtin, pal)
	if err != nil {
		t.Fatalf("FromDef: %v", err)
	}
	if len(bp.Blocks) != 2 || bp.Origin != Builtin {
		t.Fatalf("blueprint %+v", bp)
	}

	def.Blocks[1].Block = "unobtainium"
	if _, err := FromDef(def, Builtin, pal); err == nil {
		t.Fatalf("unknown block type accepted")
	}
}

func TestDecodeDefSchema(t *testing.T) {
	good := []byte(`{
		"id": "hut", "name": "Hut", "difficulty": "easy",
		"dim": [1,1,1],
		"blocks": [{"pos": [0,0,0], "block": "stone"}]
	}`)
	if _, err := DecodeDef(good); err != nil {
		t.Fatalf("valid def rejected: %v", err)
	}

	bad := [][]byte{
		[]byte(`{}`),
		[]byte(`{"id":"x","name":"X","difficulty":"brutal","dim":[1,1,1],"blocks":[{"pos":[0,0,0],"block":"stone"}]}`),
		[]byte(`{"id":"x","name":"X","difficulty":"easy","dim":[1,1],"blocks":[{"pos":[0,0,0],"block":"stone"}]}`),
		[]byte(`{"id":"x","name":"X","difficulty":"easy","dim":[1,1,1],"blocks":[]}`),
		[]byte(`not json`),
	}
	for i, raw := range bad {
		if _, err := DecodeDef(raw); err == nil {
			t.Fatalf("bad def %d accepted", i)
		}
	}
}

func TestRegisterBuiltins(t *testing.T) {
	c := NewCatalog()
	if err := RegisterBuiltins(c); err != nil {
		t.Fatalf("RegisterBuiltins: %v", err)
	}
	if c.Len() == 0 {
		t.Fatalf("no builtins registered")
	}
	for _, bp := range c.All() {
		if err := bp.Validate(); err != nil {
			t.Fatalf("builtin %s invalid: %v", bp.ID, err)
		}
		if bp.Origin != Builtin {
			t.Fatalf("builtin %s has origin %s", bp.ID, bp.Origin)
		}
	}
}
