package core

import (
	"testing"
)

func TestSanitizeField(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Halker Kft", "Halker_Kft"},
		{"ACME-Építő Kft.", "ACME-Építő_Kft"},
		{`Company/Name: "Invoice"`, "Company_Name_Invoice"},
		{"  spaces  everywhere ", "spaces_everywhere"},
		{"already_safe-1", "already_safe-1"},
	}

	for _, tt := range tests {
		if got := SanitizeField(tt.in); got != tt.want {
			t.Errorf("SanitizeField(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuild_NoCollision(t *testing.T) {
	b := NewFilenameBuilder()

	got := b.Build("Halker Kft", "HU001234567890", "562003117859", map[string]struct{}{})
	want := "Halker_Kft_HU001234567890_562003117859.pdf"
	if got != want {
		t.Errorf("Build() = %q, want %q", got, want)
	}
}

func TestBuild_CollisionSuffix(t *testing.T) {
	b := NewFilenameBuilder()

	existing := map[string]struct{}{
		"Acme_HU001_INV1.pdf": {},
	}
	got := b.Build("Acme", "HU001", "INV1", existing)
	if got != "Acme_HU001_INV1_2.pdf" {
		t.Errorf("Build() = %q, want %q", got, "Acme_HU001_INV1_2.pdf")
	}

	existing[got] = struct{}{}
	got = b.Build("Acme", "HU001", "INV1", existing)
	if got != "Acme_HU001_INV1_3.pdf" {
		t.Errorf("Build() = %q, want %q", got, "Acme_HU001_INV1_3.pdf")
	}
}

func TestBuild_SuffixSkipsToFirstFreeSlot(t *testing.T) {
	b := NewFilenameBuilder()

	existing := map[string]struct{}{
		"Acme_HU001_INV1.pdf":   {},
		"Acme_HU001_INV1_2.pdf": {},
		"Acme_HU001_INV1_4.pdf": {},
	}
	got := b.Build("Acme", "HU001", "INV1", existing)
	if got != "Acme_HU001_INV1_3.pdf" {
		t.Errorf("Build() = %q, want the smallest free suffix %q", got, "Acme_HU001_INV1_3.pdf")
	}
}
