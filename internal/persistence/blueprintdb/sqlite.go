// Package blueprintdb persists imported blueprints in a sqlite file so they
// survive restarts. Writes go through a single writer goroutine; reads hit
// the database directly.
package blueprintdb

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite"

	"blockquest.dev/internal/blueprint"
)

type Store struct {
	db  *sql.DB
	log *log.Logger

	ch   chan row
	wg   sync.WaitGroup
	once sync.Once

	closed atomic.Bool
}

type row struct {
	ID         string
	Name       string
	Difficulty string
	Source     string
	JSON       []byte
	CreatedAt  string
}

func Open(path string, logger *log.Logger) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &Store{
		db:  db,
		log: logger,
		ch:  make(chan row, 256),
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop()
	}()
	return s, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS blueprints (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		difficulty TEXT NOT NULL,
		source TEXT,
		json TEXT NOT NULL,
		created_at TEXT NOT NULL
	);`)
	return err
}

func (s *Store) Close() error {
	var err error
	s.once.Do(func() {
		s.closed.Store(true)
		close(s.ch)
		s.wg.Wait()
		err = s.db.Close()
	})
	return err
}

// Put queues an imported blueprint for persistence. The write is
// asynchronous; a full queue drops the write and keeps the process alive
// (the in-memory catalog remains authoritative for the session).
func (s *Store) Put(bp *blueprint.Blueprint, source string) {
	if s == nil || s.closed.Load() {
		return
	}
	def := defOf(bp)
	b, err := json.Marshal(def)
	if err != nil {
		return
	}
	r := row{
		ID:         bp.ID,
		Name:       bp.Name,
		Difficulty: string(bp.Difficulty),
		Source:     source,
		JSON:       b,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339Nano),
	}
	select {
	case s.ch <- r:
	default:
		if s.log != nil {
			s.log.Printf("blueprintdb: write queue full, dropping %s", bp.ID)
		}
	}
}

// LoadAll reads every persisted blueprint back as an imported definition.
func (s *Store) LoadAll() ([]blueprint.Def, error) {
	rows, err := s.db.Query(`SELECT json FROM blueprints ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var defs []blueprint.Def
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var def blueprint.Def
		if err := json.Unmarshal(raw, &def); err != nil {
			if s.log != nil {
				s.log.Printf("blueprintdb: skipping corrupt row: %v", err)
			}
			continue
		}
		defs = append(defs, def)
	}
	return defs, rows.Err()
}

func (s *Store) loop() {
	for r := range s.ch {
		_, err := s.db.Exec(
			`INSERT OR REPLACE INTO blueprints (id, name, difficulty, source, json, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			r.ID, r.Name, r.Difficulty, r.Source, string(r.JSON), r.CreatedAt,
		)
		if err != nil && s.log != nil {
			s.log.Printf("blueprintdb: insert %s: %v", r.ID, err)
		}
	}
}

// defOf flattens a blueprint back to its JSON definition form.
func defOf(bp *blueprint.Blueprint) blueprint.Def {
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
	return def
}
