package blocks

import "testing"

func TestResolveNameTable(t *testing.T) {
	r := NewResolver(Default(), nil)

	cases := map[string]string{
		"minecraft:stone":      "stone",
		"minecraft:granite":    "stone",
		"oak_planks":           "plank",
		"minecraft:spruce_log": "log",
		"stone_bricks":         "stoneplank",
		"crafting_table":       "workbench",
		"grass_block":          "grass",
	}
	for name, want := range cases {
		got := r.Resolve(NameIdentity(name, "test.schem"))
		if got != want {
			t.Fatalf("resolve %q = %q, want %q", name, got, want)
		}
	}
}

func TestResolveAirSpecialCase(t *testing.T) {
	r := NewResolver(Default(), nil)
	for _, name := range []string{"air", "minecraft:air", "AIR", "weird:air"} {
		if got := r.Resolve(NameIdentity(name, "")); got != Air {
			t.Fatalf("resolve %q = %q, want air", name, got)
		}
	}
	if got := r.Resolve(NumericIdentity(0, 0, "")); got != Air {
		t.Fatalf("resolve id 0 = %q, want air", got)
	}
}

func TestResolveNumericTable(t *testing.T) {
	r := NewResolver(Default(), nil)

	cases := []struct {
		id, data int
		want     string
	}{
		{1, 0, "stone"},
		{5, 0, "plank"},
		{17, 0, "log"},
		{43, 0, "stoneplank"},
		{43, 3, "cobblestone"}, // data variant override
		{44, 4, "brick"},
		{58, 0, "workbench"},
	}
	for _, c := range cases {
		got := r.Resolve(NumericIdentity(c.id, c.data, "test.schematic"))
		if got != c.want {
			t.Fatalf("resolve %d:%d = %q, want %q", c.id, c.data, got, c.want)
		}
	}
}

func TestResolveUnknownFallsBackToDefault(t *testing.T) {
	r := NewResolver(Default(), nil)
	if got := r.Resolve(NameIdentity("frobnicator_block", "")); got != "stone" {
		t.Fatalf("unknown name resolved to %q, want stone", got)
	}
	if got := r.Resolve(NumericIdentity(9999, 0, "")); got != "stone" {
		t.Fatalf("unknown id resolved to %q, want stone", got)
	}
}

// Totality: every input, however malformed, resolves to a current palette
// member.
func TestResolveTotality(t *testing.T) {
	pal := Default()
	r := NewResolver(pal, nil)

	inputs := []Identity{
		{},
		{Kind: "bogus"},
		{Kind: KindName, Name: ""},
		{Kind: KindName, Name: "   "},
		{Kind: KindName, Name: "ns1:ns2:thing"},
		{Kind: KindID, ID: -1, Data: 0},
		{Kind: KindID, ID: 5, Data: -3},
		{Kind: KindID, ID: 1 << 30},
		NameIdentity("minecraft:command_block", "x"),
		NumericIdentity(137, 12, "x"),
	}
	for _, in := range inputs {
		got := r.Resolve(in)
		if got == "" || !pal.Has(got) {
			t.Fatalf("resolve %v = %q, not a palette member", in, got)
		}
	}
}

func TestResolveCategorySibling(t *testing.T) {
	// A palette without plank: wood-category names substitute the sibling.
	pal, err := NewPalette([]Def{
		{ID: "air"}, {ID: "log"}, {ID: "stone"}, {ID: "dirt"},
	})
	if err != nil {
		t.Fatalf("NewPalette: %v", err)
	}
	r := NewResolver(pal, nil)
	if got := r.Resolve(NameIdentity("oak_planks", "")); got != "log" {
		t.Fatalf("plank substituted by %q, want log", got)
	}
}

func TestResolveGlobalDefaultOrder(t *testing.T) {
	// No metal category members at all: iron falls through to the global
	// default order, whose first available entry is dirt here.
	pal, err := NewPalette([]Def{
		{ID: "air"}, {ID: "dirt"}, {ID: "sand"},
	})
	if err != nil {
		t.Fatalf("NewPalette: %v", err)
	}
	r := NewResolver(pal, nil)
	if got := r.Resolve(NameIdentity("iron_block", "")); got != "dirt" {
		t.Fatalf("iron substituted by %q, want dirt", got)
	}
}

func TestResolveFirstAvailableFallback(t *testing.T) {
	// A palette with nothing from the global default order: the first
	// non-air entry wins.
	pal, err := NewPalette([]Def{
		{ID: "air"}, {ID: "wool"}, {ID: "glass"},
	})
	if err != nil {
		t.Fatalf("NewPalette: %v", err)
	}
	r := NewResolver(pal, nil)
	if got := r.Resolve(NameIdentity("iron_block", "")); got != "wool" {
		t.Fatalf("iron substituted by %q, want wool", got)
	}
}
