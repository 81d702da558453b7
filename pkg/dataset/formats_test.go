package dataset

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		want Format
	}{
		{"votersJSON.json", FormatJSON},
		{"/data/roll.YAML", FormatYAML},
		{"roll.yml", FormatYAML},
		{"snapshot.msgpack", FormatMsgpack},
		{"snapshot.bin", FormatMsgpack},
		{"roll.csv", FormatUnknown},
		{"noext", FormatUnknown},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := DetectFormat(tc.name); got != tc.want {
				t.Errorf("DetectFormat(%q) = %v, want %v", tc.name, got, tc.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	for name, want := range map[string]Format{"": FormatUnknown, "JSON": FormatJSON, "yml": FormatYAML, "msgpack": FormatMsgpack} {
		got, err := ParseFormat(name)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v; want %v", name, got, err, want)
		}
	}
	if _, err := ParseFormat("csv"); err == nil {
		t.Error("expected error for csv")
	}
}

func TestFormatForMediaType(t *testing.T) {
	if got := FormatForMediaType("application/json; charset=utf-8"); got != FormatJSON {
		t.Errorf("got %v, want json", got)
	}
	if got := FormatForMediaType("text/plain"); got != FormatUnknown {
		t.Errorf("got %v, want unknown", got)
	}
}

func TestValidateFileFormat(t *testing.T) {
	dir := t.TempDir()

	tiny := filepath.Join(dir, "tiny.json")
	if err := os.WriteFile(tiny, []byte("["), 0644); err != nil {
		t.Fatal(err)
	}
	if err := ValidateFileFormat(tiny, FormatJSON); err == nil {
		t.Error("expected size error")
	}
	if err := ValidateFileFormat(dir, FormatJSON); err == nil {
		t.Error("expected directory error")
	}
	if err := ValidateFileFormat(filepath.Join(dir, "missing.json"), FormatJSON); err == nil {
		t.Error("expected stat error")
	}
	if err := ValidateFileFormat(tiny, FormatUnknown); err == nil {
		t.Error("expected unknown format error")
	}
}
