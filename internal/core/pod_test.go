package core

import (
	"testing"
)

func TestDeliveryPoint_LabeledPOD(t *testing.T) {
	e := NewDeliveryPointExtractor()

	tests := []struct {
		name string
		text string
		pod  string
	}{
		{"english label", "Customer: Halker Kft\nPOD: HU001234567890\nAmount: 125000 HUF", "HU001234567890"},
		{"hungarian label", "Mérőpont azonosító: HU000210F7659U155N", "HU000210F7659U155N"},
		{"accentless label", "Meropont azonosito: 39N11207769700005K", "39N11207769700005K"},
		{"label with ja suffix", "A mérőpont azonosítója: HU0012345678", "HU0012345678"},
		{"value on next line", "Mérőpont azonosító:\nHU001234567890", "HU001234567890"},
		{"gas pod", "POD: 39998877001122", "39998877001122"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.text)
			if got.Status != StatusFound {
				t.Fatalf("Status = %s, want found", got.Status)
			}
			if got.POD != tt.pod {
				t.Errorf("POD = %q, want %q", got.POD, tt.pod)
			}
		})
	}
}

func TestDeliveryPoint_BareFallback(t *testing.T) {
	e := NewDeliveryPointExtractor()

	got := e.Extract("Fogyasztási hely\nHU001234567890\nBudapest")
	if got.Status != StatusFound {
		t.Fatalf("Status = %s, want found", got.Status)
	}
	if got.POD != "HU001234567890" {
		t.Errorf("POD = %q, want %q", got.POD, "HU001234567890")
	}
}

func TestDeliveryPoint_NormalizesToken(t *testing.T) {
	e := NewDeliveryPointExtractor()

	got := e.Extract("POD: hu--0012--3456--7890")
	if got.Status != StatusFound {
		t.Fatalf("Status = %s, want found", got.Status)
	}
	if got.POD != "HU-0012-3456-7890" {
		t.Errorf("POD = %q, want %q", got.POD, "HU-0012-3456-7890")
	}
}

func TestDeliveryPoint_MultipleDistinctPODsAreAmbiguous(t *testing.T) {
	e := NewDeliveryPointExtractor()

	got := e.Extract("POD: HU001234567890\nPOD: HU009876543210")
	if got.Status != StatusAmbiguous {
		t.Errorf("Status = %s, want ambiguous", got.Status)
	}
	if got.POD != "" {
		t.Errorf("POD = %q, want empty on ambiguity", got.POD)
	}
}

func TestDeliveryPoint_RepeatedSamePODIsFound(t *testing.T) {
	e := NewDeliveryPointExtractor()

	got := e.Extract("POD: HU001234567890\nsome table\nPOD: HU001234567890")
	if got.Status != StatusFound {
		t.Fatalf("Status = %s, want found", got.Status)
	}
	if got.POD != "HU001234567890" {
		t.Errorf("POD = %q, want %q", got.POD, "HU001234567890")
	}
}

func TestDeliveryPoint_NotFound(t *testing.T) {
	e := NewDeliveryPointExtractor()

	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"no identifiers", "Tisztelt Ügyfelünk!\nMellékeljük a számlát."},
		{"postal code", "Cím: HU-1117 Budapest"},
		{"currency", "Összeg: 125000 HUF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.text)
			if got.Status != StatusNotFound {
				t.Errorf("Status = %s, want not_found (pod %q)", got.Status, got.POD)
			}
		})
	}
}

func TestDeliveryPoint_LabeledTierBeatsBareMatches(t *testing.T) {
	e := NewDeliveryPointExtractor()

	// A labeled POD plus a stray bare token elsewhere: the labeled tier
	// decides and the bare tier is never consulted.
	got := e.Extract("Mérőpont azonosító: HU001234567890\nreference 39555566667777")
	if got.Status != StatusFound {
		t.Fatalf("Status = %s, want found", got.Status)
	}
	if got.POD != "HU001234567890" {
		t.Errorf("POD = %q, want %q", got.POD, "HU001234567890")
	}
}

func TestDeliveryPoint_PRM(t *testing.T) {
	e := NewDeliveryPointExtractor()

	got := e.Extract("Mérőpont azonosító: HU001234567890\nPRM: HU9988776655")
	if got.Status != StatusFound {
		t.Fatalf("Status = %s, want found", got.Status)
	}
	if got.PRM != "HU9988776655" {
		t.Errorf("PRM = %q, want %q", got.PRM, "HU9988776655")
	}
}
