package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bastiangx/votersearch/pkg/dataset"
	"github.com/bastiangx/votersearch/pkg/voter"
)

func TestWriteSnapshotFile(t *testing.T) {
	records := []voter.Record{
		{ID: "41235", FirstName: "Shivaraj", LastNameLocal: "यादव"},
		{ID: "500", FirstName: "Ram"},
	}
	tests := []dataset.Format{dataset.FormatJSON, dataset.FormatYAML, dataset.FormatMsgpack}
	for _, format := range tests {
		t.Run(format.String(), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "roll."+format.String())
			if err := writeSnapshotFile(path, records, format); err != nil {
				t.Fatalf("writeSnapshotFile: %v", err)
			}
			f, err := os.Open(path)
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()
			got, err := dataset.Decode(f, format)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if len(got) != 2 || got[0].LastNameLocal != "यादव" || got[1].ID != "500" {
				t.Errorf("round trip = %+v", got)
			}
		})
	}
}

func TestWriteSnapshotFileErrors(t *testing.T) {
	missingDir := filepath.Join(t.TempDir(), "missing", "roll.json")
	if err := writeSnapshotFile(missingDir, nil, dataset.FormatJSON); err == nil {
		t.Error("expected error for missing directory")
	}
	if err := writeSnapshotFile(filepath.Join(t.TempDir(), "roll"), nil, dataset.FormatUnknown); err == nil {
		t.Error("expected error for unknown format")
	}
}
