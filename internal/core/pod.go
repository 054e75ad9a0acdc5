package core

import (
	"regexp"
	"strings"
)

// Label variants seen on the invoices, with and without accents:
// "Mérőpont azonosító:", "Mero pont azonosito", "POD azonosító", "POD:".
const podLabel = `(?:m[ée]r[őo]?\s*pont\s+azonos[ií]t[óo](?:ja)?|pod(?:\s+azonos[ií]t[óo])?)`

var (
	rePodLabeled = regexp.MustCompile(`(?i)` + podLabel + `\s*:?\s*((?:HU|39)[A-Z0-9-]{5,40})`)
	rePodBare    = regexp.MustCompile(`(?i)\b((?:HU|39)[A-Z0-9-]{6,40})\b`)

	rePrmLabeled = regexp.MustCompile(`(?i)(?:prm|m[ée]r[ée]si\s+pont(?:\s+azonos[ií]t[óo])?)\s*:?\s*([A-Z0-9-]{5,40})`)
)

// DeliveryPointExtractor recovers the POD identifier (and an optional PRM)
// from PDF-derived text. PDF extraction interleaves columns and lines
// unpredictably, so matching is line-oriented: every line is scanned
// together with its successor, and a match on any line is accepted.
type DeliveryPointExtractor struct{}

// NewDeliveryPointExtractor creates a new DeliveryPointExtractor
func NewDeliveryPointExtractor() *DeliveryPointExtractor {
	return &DeliveryPointExtractor{}
}

// Extract locates the POD token. Rule tiers are tried in order: labeled
// matches first, then bare HU.../39... tokens anywhere. Within the first
// tier that matches at all, more than one distinct value is Ambiguous,
// never a silent first pick.
func (e *DeliveryPointExtractor) Extract(pdfText string) DeliveryPointResult {
	if pdfText == "" {
		return DeliveryPointResult{Status: StatusNotFound}
	}
	lines := strings.Split(pdfText, "\n")

	tiers := []*regexp.Regexp{rePodLabeled, rePodBare}
	for _, re := range tiers {
		values := scanLines(lines, re, validPOD)
		switch len(values) {
		case 0:
			continue
		case 1:
			return DeliveryPointResult{
				POD:    values[0],
				PRM:    e.extractPRM(lines),
				Status: StatusFound,
			}
		default:
			return DeliveryPointResult{Status: StatusAmbiguous}
		}
	}
	return DeliveryPointResult{Status: StatusNotFound}
}

// extractPRM returns the secondary identifier when exactly one is present.
func (e *DeliveryPointExtractor) extractPRM(lines []string) string {
	values := scanLines(lines, rePrmLabeled, func(s string) bool {
		return countDigits(s) >= 3
	})
	if len(values) == 1 {
		return values[0]
	}
	return ""
}

// scanLines runs the pattern over each line joined with the next one, so a
// label at the end of one layout line still finds its value on the next.
// Returned values are normalized and distinct, in order of appearance.
func scanLines(lines []string, re *regexp.Regexp, valid func(string) bool) []string {
	var out []string
	seen := make(map[string]struct{})
	for i, line := range lines {
		window := line
		if i+1 < len(lines) {
			window = line + " " + lines[i+1]
		}
		for _, sub := range re.FindAllStringSubmatch(window, -1) {
			value := normalizePOD(sub[1])
			if value == "" || (valid != nil && !valid(value)) {
				continue
			}
			if _, ok := seen[value]; ok {
				continue
			}
			seen[value] = struct{}{}
			out = append(out, value)
		}
	}
	return out
}

var hyphenRuns = regexp.MustCompile(`-{2,}`)

// normalizePOD makes tokens comparable: uppercase, no spaces, single
// hyphens, no leading or trailing hyphen.
func normalizePOD(s string) string {
	s = strings.ToUpper(s)
	s = strings.Join(strings.Fields(s), "")
	s = hyphenRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// validPOD is the format check applied after normalization. The prefix must
// be the two-letter country style (HU) or the numeric utility style (39),
// and the token needs enough digits to rule out ordinary words and postal
// codes like HU-1117.
func validPOD(s string) bool {
	if len(s) < 8 || len(s) > 42 {
		return false
	}
	if !strings.HasPrefix(s, "HU") && !strings.HasPrefix(s, "39") {
		return false
	}
	return countDigits(s) >= 5
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
