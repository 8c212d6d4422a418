package database

import (
	"testing"

	"voyagent/services/location"
)

func TestMergeCodes(t *testing.T) {
	entries := []LocationCode{
		{Name: "reykjavik", Space: location.SkyID, Code: "REYK"},
		{Name: "dallas", Space: location.SkyID, Code: "DALA"},
		{Name: "reykjavik", Space: location.IATA, Code: "REK"},
		{Name: "atlantis", Space: "legacy", Code: "ATL"},
	}
	codes := MergeCodes(location.NewCodes(), entries)

	tests := []struct {
		space location.CodeSpace
		name  string
		want  string
		known bool
	}{
		{location.SkyID, "Reykjavik", "REYK", true},
		{location.SkyID, "dallas", "DALA", true},
		{location.IATA, "reykjavik", "REK", true},
		{location.SkyID, "new york", "NYCA", true},
		{location.IATA, "atlantis", "ATLANTIS", false},
	}
	for _, tt := range tests {
		got, known := codes.Lookup(tt.space, tt.name)
		if got != tt.want || known != tt.known {
			t.Errorf("Lookup(%s, %q) = %q, %v; expected %q, %v", tt.space, tt.name, got, known, tt.want, tt.known)
		}
	}

	if got, _ := location.NewCodes().SkyID("dallas"); got != "DFWA" {
		t.Errorf("merge must not change the built-in tables, got %s", got)
	}
}
