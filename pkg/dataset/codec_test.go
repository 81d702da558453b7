package dataset

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bastiangx/votersearch/pkg/voter"
)

var sampleRoll = []voter.Record{
	{
		ID: "41235", VoterCardID: "MHX1023456",
		FirstName: "Shivaraj", MiddleName: "Anil", LastName: "Yadav",
		FirstNameLocal: "शिवराज", MiddleNameLocal: "अनिल", LastNameLocal: "यादव",
		BoothID: "12", BoothNo: "3", Mobile1: "9800000000",
	},
	{ID: "7", FirstName: "Ram"},
}

func TestDecodeJSON(t *testing.T) {
	input := `[
		{"id": 41235, "vcardid": "MHX1023456", "e_first_name": "Shivaraj", "l_last_name": "यादव", "extra": {"ignored": true}},
		{"id": "7", "e_first_name": null}
	]`
	got, err := Decode(strings.NewReader(input), FormatJSON)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	if got[0].ID != "41235" || got[0].LastNameLocal != "यादव" || got[1].FirstName != "" {
		t.Errorf("unexpected records: %+v", got)
	}
}

func TestDecodeYAML(t *testing.T) {
	input := "- id: 1\n  e_first_name: Ram\n- id: 2\n  l_first_name: राम\n"
	got, err := Decode(strings.NewReader(input), FormatYAML)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(got) != 2 || got[0].FirstName != "Ram" || got[1].FirstNameLocal != "राम" {
		t.Errorf("unexpected records: %+v", got)
	}

	empty, err := Decode(strings.NewReader(""), FormatYAML)
	if err != nil || len(empty) != 0 {
		t.Errorf("empty yaml: records=%v err=%v", empty, err)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format Format
	}{
		{"malformed json", `[{"id": `, FormatJSON},
		{"json object", `{"id": 1}`, FormatJSON},
		{"garbage msgpack", "\xc1", FormatMsgpack},
		{"unknown format", "[]", FormatUnknown},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Decode(strings.NewReader(tc.input), tc.format); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestExportRoundTrip(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML, FormatMsgpack} {
		t.Run(format.String(), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Export(&buf, sampleRoll, format); err != nil {
				t.Fatalf("Export: %v", err)
			}
			got, err := Decode(&buf, format)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if len(got) != len(sampleRoll) {
				t.Fatalf("got %d records, want %d", len(got), len(sampleRoll))
			}
			for i := range got {
				if got[i] != sampleRoll[i] {
					t.Errorf("record %d = %+v, want %+v", i, got[i], sampleRoll[i])
				}
			}
		})
	}
}

func TestExportNil(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(&buf, nil, FormatJSON); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("Export(nil) = %q, want []", buf.String())
	}
	if err := Export(&buf, nil, FormatUnknown); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestDecodeNestedFields(t *testing.T) {
	tests := []struct {
		format Format
		input  string
	}{
		{FormatYAML, "- id: 1\n  l_address:\n    city: Pune\n  e_first_name: Ram\n"},
		{FormatJSON, `[{"id": 1, "l_address": {"city": "Pune"}, "e_first_name": "Ram"}]`},
	}
	for _, tc := range tests {
		t.Run(tc.format.String(), func(t *testing.T) {
			records, err := Decode(strings.NewReader(tc.input), tc.format)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if len(records) != 1 || records[0].ID != "1" || records[0].FirstName != "Ram" {
				t.Errorf("records = %+v", records)
			}
		})
	}
}
