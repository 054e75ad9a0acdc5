package core

import (
	"strings"

	"go.uber.org/zap"
)

// ExceptionPolicy withholds configured companies and senders from automatic
// processing so a human reviews them instead.
type ExceptionPolicy struct {
	keywords []string
	logger   *zap.Logger
}

// NewExceptionPolicy creates a policy from the configured keyword list.
func NewExceptionPolicy(keywords []string, logger *zap.Logger) *ExceptionPolicy {
	normalized := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			normalized = append(normalized, kw)
		}
	}

	if len(normalized) > 0 && logger != nil {
		logger.Info("Initialized exception policy", zap.Strings("keywords", normalized))
	}

	return &ExceptionPolicy{
		keywords: normalized,
		logger:   logger,
	}
}

// IsException reports whether the company name or the sender address matches
// any configured keyword. Matching is a case-insensitive substring check.
func (p *ExceptionPolicy) IsException(company string, sender string) bool {
	if len(p.keywords) == 0 {
		return false
	}

	company = strings.ToLower(company)
	sender = strings.ToLower(sender)

	for _, kw := range p.keywords {
		if company != "" && strings.Contains(company, kw) {
			if p.logger != nil {
				p.logger.Debug("Company matched exception keyword",
					zap.String("company", company),
					zap.String("keyword", kw))
			}
			return true
		}
		if sender != "" && strings.Contains(sender, kw) {
			if p.logger != nil {
				p.logger.Debug("Sender matched exception keyword",
					zap.String("sender", sender),
					zap.String("keyword", kw))
			}
			return true
		}
	}

	return false
}
