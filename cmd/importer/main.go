// Command importer decodes a schematic file into a blueprint and registers
// it in the imported-blueprint database.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"blockquest.dev/internal/blocks"
	"blockquest.dev/internal/blueprint"
	"blockquest.dev/internal/persistence/blueprintdb"
	"blockquest.dev/internal/schematic"
)

func main() {
	var (
		file       = flag.String("file", "", "schematic file to import (required)")
		name       = flag.String("name", "", "display name (defaults to the filename)")
		difficulty = flag.String("difficulty", "medium", "easy|medium|hard")
		desc       = flag.String("description", "", "catalog description")
		dbPath     = flag.String("db", "./data/blueprints.db", "sqlite db for imported blueprints (empty: print only)")
		dump       = flag.Bool("dump", false, "print the decoded blueprint definition as JSON")
	)
	flag.Parse()

	logger := log.New(os.Stderr, "[importer] ", log.LstdFlags)

	if *file == "" {
		logger.Fatal("-file is required")
	}
	raw, err := os.ReadFile(*file)
	if err != nil {
		logger.Fatalf("read %s: %v", *file, err)
	}

	diff := blueprint.Difficulty(*difficulty)
	if !diff.Valid() {
		logger.Fatalf("bad difficulty %q", *difficulty)
	}
	displayName := *name
	if displayName == "" {
		displayName = filepath.Base(*file)
	}
	meta := blueprint.Meta{
		ID:          uuid.NewString(),
		Name:        displayName,
		Difficulty:  diff,
		Description: *desc,
		Origin:      blueprint.Imported,
	}

	pal := blocks.Default()
	resolver := blocks.NewResolver(pal, logger)
	base := filepath.Base(*file)

	var bp *blueprint.Blueprint
	if pblocks, size, serr := schematic.DecodeStructure(raw, base); serr == nil {
		bp, err = blueprint.FromStructure(pblocks, size, base, resolver, meta)
	} else {
		decoded := schematic.Decode(raw, base)
		if decoded.Synthesized {
			logger.Printf("warning: %s was not decodable, imported a synthesized stand-in", base)
		}
		bp, err = blueprint.FromRaw(decoded, resolver, meta)
	}
	if err != nil {
		logger.Fatalf("convert: %v", err)
	}

	fmt.Printf("%s  %q  %s  %dx%dx%d  %d blocks\n",
		bp.ID, bp.Name, bp.Difficulty, bp.Dim.X, bp.Dim.Y, bp.Dim.Z, len(bp.Blocks))
	for t, n := range bp.RequiredCounts() {
		fmt.Printf("  %-12s x%d\n", t, n)
	}

	if *dump {
		def := blueprint.Def{
			ID:          bp.ID,
			Name:        bp.Name,
			Difficulty:  bp.Difficulty,
			Description: bp.Description,
			Dim:         [3]int{bp.Dim.X, bp.Dim.Y, bp.Dim.Z},
		}
		for _, blk := range bp.Blocks {
			def.Blocks = append(def.Blocks, blueprint.DefBlock{
				Pos:   [3]int{blk.Pos.X, blk.Pos.Y, blk.Pos.Z},
				Block: blk.TypeID,
			})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(def)
	}

	if *dbPath != "" {
		store, err := blueprintdb.Open(*dbPath, logger)
		if err != nil {
			logger.Fatalf("open db: %v", err)
		}
		store.Put(bp, base)
		if err := store.Close(); err != nil {
			logger.Fatalf("close db: %v", err)
		}
		logger.Printf("stored %s in %s", bp.ID, *dbPath)
	}
}
