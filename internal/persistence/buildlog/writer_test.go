package buildlog

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
)

func TestWriteAndReadBack(t *testing.T) {
	dir := t.TempDir()
	w := New(dir, "builds")

	type rec struct {
		ID string `json:"id"`
		N  int    `json:"n"`
	}
	for i, id := range []string{"a", "b", "c"} {
		if err := w.Write(rec{ID: id, N: i}); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("%d files, want 1", len(entries))
	}
	name := entries[0].Name()
	if !strings.HasPrefix(name, "builds-") || !strings.HasSuffix(name, ".jsonl.zst") {
		t.Fatalf("file name %q", name)
	}

	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()
	dec, err := zstd.NewReader(f)
	if err != nil {
		t.Fatalf("zstd reader: %v", err)
	}
	defer dec.Close()

	var got []rec
	sc := bufio.NewScanner(dec)
	for sc.Scan() {
		var r rec
		if err := json.Unmarshal(sc.Bytes(), &r); err != nil {
			t.Fatalf("unmarshal line: %v", err)
		}
		got = append(got, r)
	}
	if err := sc.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(got) != 3 || got[0].ID != "a" || got[2].N != 2 {
		t.Fatalf("read back %+v", got)
	}
}

func TestUnmarshalableRecord(t *testing.T) {
	w := New(t.TempDir(), "builds")
	defer w.Close()
	if err := w.Write(make(chan int)); err == nil {
		t.Fatalf("unmarshalable record accepted")
	}
}
