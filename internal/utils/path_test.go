package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveDataFile(t *testing.T) {
	work := t.TempDir()
	config := t.TempDir()
	if err := os.WriteFile(filepath.Join(config, "votersJSON.json"), []byte("[]"), 0644); err != nil {
		t.Fatal(err)
	}
	pr := &PathResolver{workDir: work, configDir: config}

	if got := pr.ResolveDataFile("votersJSON.json"); got != filepath.Join(config, "votersJSON.json") {
		t.Errorf("ResolveDataFile = %q, want config dir hit", got)
	}

	// The working directory wins when both exist.
	if err := os.WriteFile(filepath.Join(work, "votersJSON.json"), []byte("[]"), 0644); err != nil {
		t.Fatal(err)
	}
	if got := pr.ResolveDataFile("votersJSON.json"); got != filepath.Join(work, "votersJSON.json") {
		t.Errorf("ResolveDataFile = %q, want working dir hit", got)
	}

	if got := pr.ResolveDataFile("HTTPS://example.org/votersJSON.json"); got != "HTTPS://example.org/votersJSON.json" {
		t.Errorf("URL should be returned unchanged, got %q", got)
	}
	if got := pr.ResolveDataFile("missing.json"); got != "missing.json" {
		t.Errorf("missing file should be returned unchanged, got %q", got)
	}
}

func TestSaveTOMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.toml")
	in := struct {
		Name string `toml:"name"`
	}{"roll"}
	if err := SaveTOMLFile(in, path); err != nil {
		t.Fatalf("SaveTOMLFile: %v", err)
	}
	var out struct {
		Name string `toml:"name"`
	}
	if err := LoadTOMLFile(path, &out); err != nil {
		t.Fatalf("LoadTOMLFile: %v", err)
	}
	if out.Name != "roll" {
		t.Errorf("Name = %q", out.Name)
	}
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("temp file left behind: %d entries", len(entries))
	}
}

func TestExtractValues(t *testing.T) {
	data := map[string]any{"s": "x", "n": int64(4), "b": true}
	if v, ok := ExtractString(data, "s"); !ok || v != "x" {
		t.Error("ExtractString")
	}
	if v, ok := ExtractInt64(data, "n"); !ok || v != 4 {
		t.Error("ExtractInt64")
	}
	if v, ok := ExtractBool(data, "b"); !ok || !v {
		t.Error("ExtractBool")
	}
	if _, ok := ExtractString(data, "n"); ok {
		t.Error("ExtractString should reject ints")
	}
}
