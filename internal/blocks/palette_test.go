package blocks

import "testing"

func TestDefaultPalette(t *testing.T) {
	p := Default()
	if !p.Has(Air) {
		t.Fatalf("default palette missing air")
	}
	if p.IDs()[0] != Air {
		t.Fatalf("air not first, got %q", p.IDs()[0])
	}
	for _, id := range []string{"stone", "dirt", "plank", "log", "sand"} {
		if !p.Has(id) {
			t.Fatalf("default palette missing %q", id)
		}
	}
	if p.Digest() == "" {
		t.Fatalf("empty digest")
	}
}

func TestNewPaletteSplicesAir(t *testing.T) {
	p, err := NewPalette([]Def{{ID: "stone"}, {ID: "dirt"}})
	if err != nil {
		t.Fatalf("NewPalette: %v", err)
	}
	if p.IDs()[0] != Air {
		t.Fatalf("air not spliced at index 0, got %v", p.IDs())
	}
	if p.Size() != 3 {
		t.Fatalf("size = %d, want 3", p.Size())
	}
	if p.First() != "stone" {
		t.Fatalf("First = %q, want stone", p.First())
	}
}

func TestNewPaletteRejectsBadDefs(t *testing.T) {
	if _, err := NewPalette([]Def{{ID: ""}}); err == nil {
		t.Fatalf("empty id accepted")
	}
	if _, err := NewPalette([]Def{{ID: "stone"}, {ID: "stone"}}); err == nil {
		t.Fatalf("duplicate id accepted")
	}
}

func TestDigestIsOrderIndependent(t *testing.T) {
	a, err := NewPalette([]Def{{ID: "stone"}, {ID: "dirt"}})
	if err != nil {
		t.Fatalf("NewPalette: %v", err)
	}
	b, err := NewPalette([]Def{{ID: "dirt"}, {ID: "stone"}})
	if err != nil {
		t.Fatalf("NewPalette: %v", err)
	}
	if a.Digest() != b.Digest() {
		t.Fatalf("digest depends on entry order")
	}
	c, err := NewPalette([]Def{{ID: "stone"}, {ID: "dirt", DisplayName: "Dirt"}})
	if err != nil {
		t.Fatalf("NewPalette: %v", err)
	}
	if a.Digest() == c.Digest() {
		t.Fatalf("digest ignores def contents")
	}
}
