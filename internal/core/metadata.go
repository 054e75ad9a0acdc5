package core

import (
	"regexp"
	"strings"
)

// FieldMatcher is one rule in an ordered chain that recovers a single field
// from normalized body text. Rules are tried in order; the first rule that
// produces any candidate decides the field.
type FieldMatcher interface {
	// Name identifies the rule in logs
	Name() string

	// Candidates returns the distinct values the rule matched in the body
	Candidates(body string) []string
}

// regexMatcher matches one capture group and optionally validates it.
type regexMatcher struct {
	name     string
	re       *regexp.Regexp
	validate func(string) bool
}

func (m *regexMatcher) Name() string { return m.name }

func (m *regexMatcher) Candidates(body string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, sub := range m.re.FindAllStringSubmatch(body, -1) {
		cand := strings.TrimSpace(sub[1])
		if cand == "" {
			continue
		}
		if m.validate != nil && !m.validate(cand) {
			continue
		}
		key := strings.ToLower(cand)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, cand)
	}
	return out
}

var (
	// "Company: Halker Kft" style labels, value runs to the next
	// separator so inline "Company: X, Invoice: Y" bodies work
	reCompanyLabel = regexp.MustCompile(`(?im)\b(?:company|c[ée]gn[ée]v|partner)\s*:\s*([^,;\n]+)`)

	// the Hungarian greeting the vendor uses: "Tisztelt <Company>!"
	reGreeting = regexp.MustCompile(`(?is)\btisztelt\s+(.+?)\s*!`)

	// "Invoice: 562003117859", "Invoice number: ...", "Számlaszám: ..."
	reInvoiceLabel = regexp.MustCompile(`(?im)\b(?:invoice|sz[áa]mlasz[áa]m|sz[áa]mla\s+sorsz[áa]ma)\s*(?:no\.?|number|#)?\s*:\s*([A-Za-z0-9/-]{6,32})`)

	// the standard sentence of the vendor's notification emails:
	// "küldjük a <digits> számú elektronikus számláját"
	reInvoiceSentence = regexp.MustCompile(`(?i)k[üu]ldj[üu]k\s+a\s+(\d{9,30})\s+sz[áa]m[úu]\s+elektronikus\s+sz[áa]ml[áa]j[áa]t`)
)

// validInvoiceNumber rejects tokens that are too short or too digit-poor to
// be an invoice number, so dates and phone fragments never slip through.
func validInvoiceNumber(s string) bool {
	if len(s) < 9 || len(s) > 32 {
		return false
	}
	digits := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 9
}

// validCompanyName drops candidates that are clearly not a name.
func validCompanyName(s string) bool {
	if len(s) < 2 || len(s) > 120 {
		return false
	}
	for _, r := range s {
		if r != ' ' && r != '.' && r != '-' {
			return true
		}
	}
	return false
}

// MetadataExtractor recovers the company name and invoice number from a
// normalized email body with ordered pattern rules.
type MetadataExtractor struct {
	companyRules []FieldMatcher
	invoiceRules []FieldMatcher
}

// NewMetadataExtractor creates an extractor with the built-in rule chains.
func NewMetadataExtractor() *MetadataExtractor {
	return &MetadataExtractor{
		companyRules: []FieldMatcher{
			&regexMatcher{name: "company_label", re: reCompanyLabel, validate: validCompanyName},
			&regexMatcher{name: "greeting", re: reGreeting, validate: validCompanyName},
		},
		invoiceRules: []FieldMatcher{
			&regexMatcher{name: "invoice_label", re: reInvoiceLabel, validate: validInvoiceNumber},
			&regexMatcher{name: "invoice_sentence", re: reInvoiceSentence, validate: validInvoiceNumber},
		},
	}
}

// Extract applies the rule chains to the body. A rule that yields several
// conflicting candidates makes the whole result ambiguous; the field is left
// empty rather than silently picking one.
func (e *MetadataExtractor) Extract(body string) ExtractedMetadata {
	company, companyAmbiguous := matchField(e.companyRules, body)
	invoice, invoiceAmbiguous := matchField(e.invoiceRules, body)

	meta := ExtractedMetadata{Company: company, InvoiceNumber: invoice}
	switch {
	case companyAmbiguous || invoiceAmbiguous:
		meta.Status = StatusAmbiguous
		if companyAmbiguous {
			meta.Company = ""
		}
		if invoiceAmbiguous {
			meta.InvoiceNumber = ""
		}
	case company != "" && invoice != "":
		meta.Status = StatusFound
	default:
		meta.Status = StatusNotFound
	}
	return meta
}

// matchField walks the rule chain; the first rule with candidates wins.
func matchField(rules []FieldMatcher, body string) (value string, ambiguous bool) {
	for _, rule := range rules {
		cands := rule.Candidates(body)
		switch len(cands) {
		case 0:
			continue
		case 1:
			return cands[0], false
		default:
			return "", true
		}
	}
	return "", false
}
