package core

import (
	"testing"
)

func testFolders() map[Category]string {
	return map[Category]string{
		CategoryElectricity: "/invoices/electricity",
		CategoryGas:         "/invoices/gas",
	}
}

func TestRoute_DefaultTable(t *testing.T) {
	r := NewRouter(DefaultPrefixRules(), testFolders())

	tests := []struct {
		pod      string
		category Category
		folder   string
	}{
		{"HU0012345", CategoryElectricity, "/invoices/electricity"},
		{"39998877", CategoryGas, "/invoices/gas"},
		{"hu0012345", CategoryElectricity, "/invoices/electricity"},
		{"XX000", CategoryUnrouted, ""},
		{"", CategoryUnrouted, ""},
	}

	for _, tt := range tests {
		got := r.Route(tt.pod)
		if got.Category != tt.category {
			t.Errorf("Route(%q).Category = %q, want %q", tt.pod, got.Category, tt.category)
		}
		if got.Folder != tt.folder {
			t.Errorf("Route(%q).Folder = %q, want %q", tt.pod, got.Folder, tt.folder)
		}
	}
}

func TestRoute_LongestPrefixWins(t *testing.T) {
	rules := []PrefixRule{
		{Prefix: "39", Category: CategoryGas},
		{Prefix: "3999", Category: CategoryElectricity},
	}
	r := NewRouter(rules, testFolders())

	if got := r.Route("39990000111"); got.Category != CategoryElectricity {
		t.Errorf("Route(39990000111).Category = %q, want the more specific prefix to win", got.Category)
	}
	if got := r.Route("39110000111"); got.Category != CategoryGas {
		t.Errorf("Route(39110000111).Category = %q, want gas", got.Category)
	}
}
