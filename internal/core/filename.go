package core

import (
	"fmt"
	"strings"
	"unicode"
)

const pdfExtension = ".pdf"

// SanitizeField makes an extracted field safe for use in a filename. Runs of
// characters other than letters, digits, underscore and hyphen collapse into
// a single underscore. Letters keep their accents; Hungarian company names
// stay readable.
func SanitizeField(s string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-':
			b.WriteRune(r)
			lastUnderscore = false
		case r == '_':
			if !lastUnderscore {
				b.WriteRune('_')
				lastUnderscore = true
			}
		default:
			if !lastUnderscore {
				b.WriteRune('_')
				lastUnderscore = true
			}
		}
	}
	return strings.Trim(b.String(), "_")
}

// FilenameBuilder composes the canonical output filename
// {Company}_{POD}_{InvoiceNumber}.pdf and resolves collisions against the
// names already present in the destination folder.
type FilenameBuilder struct{}

// NewFilenameBuilder creates a new FilenameBuilder
func NewFilenameBuilder() *FilenameBuilder {
	return &FilenameBuilder{}
}

// Build returns a name that is not in existingNames. On collision the
// smallest suffix _2, _3, ... is inserted before the extension. The caller
// must still write exclusively (create-new) because another run may race
// between the listing and the write.
func (b *FilenameBuilder) Build(company string, pod string, invoiceNumber string, existingNames map[string]struct{}) string {
	base := fmt.Sprintf("%s_%s_%s",
		SanitizeField(company),
		SanitizeField(pod),
		SanitizeField(invoiceNumber))

	name := base + pdfExtension
	if _, taken := existingNames[name]; !taken {
		return name
	}

	for n := 2; ; n++ {
		name = fmt.Sprintf("%s_%d%s", base, n, pdfExtension)
		if _, taken := existingNames[name]; !taken {
			return name
		}
	}
}
