package blocks

// Static mapping tables from external block vocabularies onto the canonical
// palette. These cover the identifiers that show up in schematic files in the
// wild; everything else goes through the fallback chain in resolver.go.

// legacyNames maps namespaced-form names (namespace already stripped,
// lowercase) to canonical ids.
var legacyNames = map[string]string{
	"stone":             "stone",
	"granite":           "stone",
	"polished_granite":  "stone",
	"diorite":           "stone",
	"polished_diorite":  "stone",
	"andesite":          "stone",
	"polished_andesite": "stone",
	"furnace":           "stone",
	"smooth_stone":      "stoneplank",
	"stone_bricks":      "stoneplank",
	"stonebrick":        "stoneplank",
	"stone_slab":        "stoneplank",
	"cobblestone":       "cobblestone",
	"mossy_cobblestone": "cobblestone",
	"cobblestone_wall":  "cobblestone",
	"bricks":            "brick",
	"brick_block":       "brick",
	"nether_bricks":     "brick",
	"dirt":              "dirt",
	"coarse_dirt":       "dirt",
	"podzol":            "dirt",
	"gravel":            "dirt",
	"clay":              "dirt",
	"farmland":          "dirt",
	"grass":             "grass",
	"grass_block":       "grass",
	"mycelium":          "grass",
	"sand":              "sand",
	"red_sand":          "sand",
	"sandstone":         "sandstone",
	"red_sandstone":     "sandstone",
	"smooth_sandstone":  "sandstone",
	"planks":            "plank",
	"oak_planks":        "plank",
	"spruce_planks":     "plank",
	"birch_planks":      "plank",
	"jungle_planks":     "plank",
	"acacia_planks":     "plank",
	"dark_oak_planks":   "plank",
	"bookshelf":         "plank",
	"oak_door":          "plank",
	"oak_fence":         "plank",
	"log":               "log",
	"log2":              "log",
	"oak_log":           "log",
	"spruce_log":        "log",
	"birch_log":         "log",
	"jungle_log":        "log",
	"acacia_log":        "log",
	"dark_oak_log":      "log",
	"oak_wood":          "log",
	"leaves":            "leaves",
	"oak_leaves":        "leaves",
	"spruce_leaves":     "leaves",
	"birch_leaves":      "leaves",
	"glass":             "glass",
	"glass_pane":        "glass",
	"ice":               "glass",
	"wool":              "wool",
	"white_wool":        "wool",
	"snow":              "wool",
	"snow_block":        "wool",
	"coal_ore":          "coal",
	"coal_block":        "coal",
	"iron_ore":          "iron",
	"iron_block":        "iron",
	"gold_ore":          "gold",
	"gold_block":        "gold",
	"diamond_ore":       "diamond",
	"diamond_block":     "diamond",
	"bedrock":           "bedrock",
	"obsidian":          "bedrock",
	"chest":             "chest",
	"crafting_table":    "workbench",
	"workbench":         "workbench",
	"torch":             "torch",
	"glowstone":         "torch",
}

// legacyIDs maps classic numeric block ids to canonical ids. The data value
// is consulted only through legacyIDData (slab material variants and the
// like); for everything else the id alone decides.
var legacyIDs = map[int]string{
	0:   Air,
	1:   "stone",
	2:   "grass",
	3:   "dirt",
	4:   "cobblestone",
	5:   "plank",
	7:   "bedrock",
	12:  "sand",
	13:  "dirt", // gravel
	14:  "gold",
	15:  "iron",
	16:  "coal",
	17:  "log",
	18:  "leaves",
	20:  "glass",
	24:  "sandstone",
	35:  "wool",
	41:  "gold",
	42:  "iron",
	43:  "stoneplank",
	44:  "stoneplank",
	45:  "brick",
	47:  "plank", // bookshelf
	48:  "cobblestone",
	49:  "bedrock", // obsidian
	50:  "torch",
	53:  "plank", // oak stairs
	54:  "chest",
	56:  "diamond",
	57:  "diamond",
	58:  "workbench",
	61:  "stone", // furnace
	62:  "stone",
	64:  "plank", // door
	65:  "plank", // ladder
	67:  "cobblestone",
	78:  "wool", // snow layer
	79:  "glass",
	80:  "wool",
	82:  "dirt", // clay
	85:  "plank", // fence
	89:  "torch", // glowstone
	98:  "stoneplank",
	102: "glass",
	109: "stoneplank",
	126: "plank",
	128: "sandstone",
	162: "log",
}

// legacyIDData overrides legacyIDs where the data value changes the material
// (slab variants, mostly).
var legacyIDData = map[[2]int]string{
	{43, 1}: "sandstone",
	{43, 3}: "cobblestone",
	{43, 4}: "brick",
	{44, 1}: "sandstone",
	{44, 3}: "cobblestone",
	{44, 4}: "brick",
	{17, 1}: "log",
	{17, 2}: "log",
	{35, 0}: "wool",
}

// categories groups canonical ids into substitution families. Within a
// category the order is the substitution preference.
var categories = map[string][]string{
	"wood":       {"plank", "log", "workbench"},
	"stone":      {"stone", "cobblestone", "stoneplank", "brick"},
	"dirt":       {"dirt", "grass"},
	"sand":       {"sand", "sandstone"},
	"decorative": {"glass", "wool", "leaves", "torch"},
	"ore":        {"coal", "diamond"},
	"metal":      {"iron", "gold"},
	"misc":       {"bedrock", "chest"},
}

// categoryOf is the inverse of categories, computed once.
var categoryOf = func() map[string]string {
	m := make(map[string]string)
	for cat, ids := range categories {
		for _, id := range ids {
			m[id] = cat
		}
	}
	return m
}()

// globalDefaults is the last-but-one substitution tier, tried in order when
// no category sibling is available.
var globalDefaults = []string{"stone", "dirt", "plank", "log", "sand"}
