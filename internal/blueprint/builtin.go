package blueprint

import "fmt"

// RegisterBuiltins installs the default blueprint set shipped with the game.
// Used when no catalog directory is configured, and by tests.
func RegisterBuiltins(c *Catalog) error {
	for _, bp := range builtinSet() {
		if err := c.Add(bp); err != nil {
			return fmt.Errorf("builtin catalog: %w", err)
		}
	}
	return nil
}

func builtinSet() []*Blueprint {
	return []*Blueprint{
		cabin(),
		watchtower(),
		stoneHouse(),
		keep(),
	}
}

// cabin is a 3x3x3 plank hut with a log frame.
func cabin() *Blueprint {
	var blks []Block
	for z := 0; z < 3; z++ {
		for x := 0; x < 3; x++ {
			blks = append(blks, Block{TypeID: "plank", Pos: Vec3i{X: x, Y: 0, Z: z}})
		}
	}
	for _, p := range [][2]int{{0, 0}, {2, 0}, {0, 2}, {2, 2}} {
		blks = append(blks, Block{TypeID: "log", Pos: Vec3i{X: p[0], Y: 1, Z: p[1]}})
	}
	for z := 0; z < 3; z++ {
		for x := 0; x < 3; x++ {
			blks = append(blks, Block{TypeID: "plank", Pos: Vec3i{X: x, Y: 2, Z: z}})
		}
	}
	return &Blueprint{
		ID:          "cabin",
		Name:        "Log Cabin",
		Difficulty:  Easy,
		Description: "A small plank cabin with a log frame.",
		Blocks:      blks,
		Dim:         Vec3i{X: 3, Y: 3, Z: 3},
		Origin:      Builtin,
	}
}

// watchtower is a 3-wide column of cobblestone with a torch on top.
func watchtower() *Blueprint {
	var blks []Block
	for y := 0; y < 4; y++ {
		for _, p := range [][2]int{{0, 0}, {2, 0}, {0, 2}, {2, 2}} {
			blks = append(blks, Block{TypeID: "cobblestone", Pos: Vec3i{X: p[0], Y: y, Z: p[1]}})
		}
	}
	blks = append(blks, Block{TypeID: "torch", Pos: Vec3i{X: 1, Y: 4, Z: 1}})
	return &Blueprint{
		ID:          "watchtower",
		Name:        "Watchtower",
		Difficulty:  Easy,
		Description: "Four cobblestone pillars and a beacon torch.",
		Blocks:      blks,
		Dim:         Vec3i{X: 3, Y: 5, Z: 3},
		Origin:      Builtin,
	}
}

// stoneHouse is a 4x3x4 stone-brick room with a glass window.
func stoneHouse() *Blueprint {
	var blks []Block
	for z := 0; z < 4; z++ {
		for x := 0; x < 4; x++ {
			blks = append(blks, Block{TypeID: "stone", Pos: Vec3i{X: x, Y: 0, Z: z}})
			if x == 0 || x == 3 || z == 0 || z == 3 {
				t := "stoneplank"
				if x == 1 && z == 0 {
					t = "glass"
				}
				blks = append(blks, Block{TypeID: t, Pos: Vec3i{X: x, Y: 1, Z: z}})
			}
			blks = append(blks, Block{TypeID: "plank", Pos: Vec3i{X: x, Y: 2, Z: z}})
		}
	}
	return &Blueprint{
		ID:          "stone_house",
		Name:        "Stone House",
		Difficulty:  Medium,
		Description: "A stone-brick room with a window and a plank roof.",
		Blocks:      blks,
		Dim:         Vec3i{X: 4, Y: 3, Z: 4},
		Origin:      Builtin,
	}
}

// keep is a 5x6x5 brick shell with iron corners.
func keep() *Blueprint {
	var blks []Block
	for y := 0; y < 6; y++ {
		for z := 0; z < 5; z++ {
			for x := 0; x < 5; x++ {
				shell := x == 0 || x == 4 || z == 0 || z == 4 || y == 0 || y == 5
				if !shell {
					continue
				}
				t := "brick"
				if (x == 0 || x == 4) && (z == 0 || z == 4) {
					t = "iron"
				}
				blks = append(blks, Block{TypeID: t, Pos: Vec3i{X: x, Y: y, Z: z}})
			}
		}
	}
	return &Blueprint{
		ID:          "keep",
		Name:        "Brick Keep",
		Difficulty:  Hard,
		Description: "A fortified brick shell with iron corner columns.",
		Blocks:      blks,
		Dim:         Vec3i{X: 5, Y: 6, Z: 5},
		Origin:      Builtin,
	}
}
