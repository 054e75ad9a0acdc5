package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/szabol/invoice-sorter/internal/adapters/imapsource"
	"github.com/szabol/invoice-sorter/internal/adapters/mboxsource"
	"github.com/szabol/invoice-sorter/internal/config"
	"github.com/szabol/invoice-sorter/internal/core"
)

// SourceFactory creates mail sources based on configuration
type SourceFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewSourceFactory creates a new source factory
func NewSourceFactory(cfg *config.Config, logger *zap.Logger) *SourceFactory {
	return &SourceFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateMailSource creates a mail source based on the configuration
func (f *SourceFactory) CreateMailSource() (core.MailSource, error) {
	sourceType := f.cfg.GetString("source.type")

	switch sourceType {
	case "imap":
		imapCfg := f.cfg.GetIMAP()
		return imapsource.New(
			imapCfg.Server,
			imapCfg.Username,
			imapCfg.Password,
			imapCfg.Mailbox,
			imapCfg.InsecureSkipVerify,
			f.logger,
		), nil
	case "mbox":
		mboxCfg := f.cfg.GetMbox()
		if mboxCfg.Path == "" {
			return nil, fmt.Errorf("mbox source requires mbox.path")
		}
		return mboxsource.New(mboxCfg.Path, f.logger), nil
	default:
		return nil, fmt.Errorf("unsupported source type: %s", sourceType)
	}
}
