package config

import (
	"fmt"
	"time"

	"github.com/szabol/invoice-sorter/internal/core"
)

// IMAPConfig represents the connection settings for the IMAP mail source
type IMAPConfig struct {
	Server             string
	Username           string
	Password           string
	Mailbox            string
	InsecureSkipVerify bool
}

// MboxConfig represents the settings for the mbox-file mail source
type MboxConfig struct {
	Path string
}

// PDFConfig represents the settings for PDF text extraction
type PDFConfig struct {
	PreferPage int
}

// GetIMAP returns the IMAP configuration
func (c *Config) GetIMAP() IMAPConfig {
	return IMAPConfig{
		Server:             c.GetString("imap.server"),
		Username:           c.GetString("imap.username"),
		Password:           c.GetString("imap.password"),
		Mailbox:            c.GetString("imap.mailbox"),
		InsecureSkipVerify: c.GetBool("imap.insecure_skip_verify"),
	}
}

// GetMbox returns the mbox configuration
func (c *Config) GetMbox() MboxConfig {
	return MboxConfig{
		Path: c.GetString("mbox.path"),
	}
}

// GetPDF returns the PDF extraction configuration
func (c *Config) GetPDF() PDFConfig {
	return PDFConfig{
		PreferPage: c.GetInt("pdf.prefer_page"),
	}
}

// GetFilter returns the message filter. A zero year or month falls back to
// the current month, matching a periodic run over fresh invoices.
func (c *Config) GetFilter() core.FilterSpec {
	now := time.Now()
	year := c.GetInt("filter.year")
	month := time.Month(c.GetInt("filter.month"))
	if year == 0 {
		year = now.Year()
	}
	if month < time.January || month > time.December {
		month = now.Month()
	}
	return core.FilterSpec{
		Sender: c.GetString("filter.sender"),
		Year:   year,
		Month:  month,
	}
}

// GetPrefixRules returns the routing prefix table. Viper lowercases map
// keys, so prefixes are uppercased here; the router compares uppercase.
func (c *Config) GetPrefixRules() ([]core.PrefixRule, error) {
	raw := c.GetStringMapString("routing.prefixes")
	if len(raw) == 0 {
		return core.DefaultPrefixRules(), nil
	}

	rules := make([]core.PrefixRule, 0, len(raw))
	for prefix, category := range raw {
		cat, err := parseCategory(category)
		if err != nil {
			return nil, fmt.Errorf("routing prefix %q: %w", prefix, err)
		}
		rules = append(rules, core.PrefixRule{Prefix: prefix, Category: cat})
	}
	return rules, nil
}

// GetFolders returns the destination folder per category
func (c *Config) GetFolders() map[core.Category]string {
	return map[core.Category]string{
		core.CategoryElectricity: c.GetString("folders.electricity"),
		core.CategoryGas:         c.GetString("folders.gas"),
	}
}

// GetExceptionKeywords returns the exception company/sender keyword list
func (c *Config) GetExceptionKeywords() []string {
	return c.GetStringSlice("exceptions.keywords")
}

func parseCategory(s string) (core.Category, error) {
	switch core.Category(s) {
	case core.CategoryElectricity:
		return core.CategoryElectricity, nil
	case core.CategoryGas:
		return core.CategoryGas, nil
	default:
		return core.CategoryUnrouted, fmt.Errorf("unknown category %q", s)
	}
}
