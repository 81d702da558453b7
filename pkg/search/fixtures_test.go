package search

import "github.com/bastiangx/votersearch/pkg/voter"

// testVoters is a small mixed-script roll used across the engine tests.
func testVoters() []voter.Record {
	return []voter.Record{
		{
			ID: "41235", VoterCardID: "MHX1023456",
			FirstName: "Shivaraj", MiddleName: "Anil", LastName: "Yadav",
			FirstNameLocal: "शिवराज", MiddleNameLocal: "अनिल", LastNameLocal: "यादव",
		},
		{
			ID: "500", VoterCardID: "MHX9000001",
			FirstName: " Ram ", LastName: "Patil",
			FirstNameLocal: "राम", LastNameLocal: "पाटील",
		},
		{
			ID: "77", VoterCardID: "",
			FirstName: "Sunita", MiddleName: "Ramesh", LastName: "Jadhav",
		},
		{
			ID: "", VoterCardID: "",
			FirstNameLocal: "सुरेश", LastNameLocal: "शिंदे",
		},
	}
}

func ids(records []voter.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = string(r.ID)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
