package core

import (
	"testing"
)

func TestNormalize_PlainText(t *testing.T) {
	n := NewNormalizer()

	got := n.Normalize("Tisztelt Halker Kft!\r\nEzúton küldjük a számláját.\r\n")
	want := "Tisztelt Halker Kft!\nEzúton küldjük a számláját."
	if got != want {
		t.Errorf("Normalize() = %q, want %q", got, want)
	}
}

func TestNormalize_StripsHTML(t *testing.T) {
	n := NewNormalizer()

	raw := `<html><head><style>p{color:red}</style><script>var x=1;</script></head>` +
		`<body><p>Tisztelt Halker Kft!</p><p>Ezúton küldjük a <b>562003117859</b> számú elektronikus számláját.</p></body></html>`

	got := n.Normalize(raw)
	want := "Tisztelt Halker Kft!\nEzúton küldjük a 562003117859 számú elektronikus számláját."
	if got != want {
		t.Errorf("Normalize() = %q, want %q", got, want)
	}
}

func TestNormalize_DecodesEntitiesAndRepairsCharacters(t *testing.T) {
	n := NewNormalizer()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"entities", "Smith &amp; Sons&nbsp;Kft", "Smith & Sons Kft"},
		{"smart quotes", "„Acme” ‘Kft’", `"Acme" 'Kft'`},
		{"dashes", "2024–2025 — invoice", "2024-2025 - invoice"},
		{"whitespace runs", "a  \t b\n\n\n\n\nc", "a b\n\nc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := n.Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalize_EmptyInput(t *testing.T) {
	n := NewNormalizer()

	if got := n.Normalize(""); got != "" {
		t.Errorf("Normalize(\"\") = %q, want empty", got)
	}
	if got := n.Normalize("<p></p>"); got != "" {
		t.Errorf("Normalize(markup only) = %q, want empty", got)
	}
}
