package factory

import (
	"go.uber.org/zap"

	"github.com/szabol/invoice-sorter/internal/adapters/pdftext"
	"github.com/szabol/invoice-sorter/internal/config"
	"github.com/szabol/invoice-sorter/internal/core"
)

// PdfFactory creates PDF text providers based on configuration
type PdfFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewPdfFactory creates a new PDF factory
func NewPdfFactory(cfg *config.Config, logger *zap.Logger) *PdfFactory {
	return &PdfFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreatePdfTextProvider creates a PDF text provider
func (f *PdfFactory) CreatePdfTextProvider() core.PdfTextProvider {
	pdfCfg := f.cfg.GetPDF()
	return pdftext.New(pdfCfg.PreferPage, f.logger)
}
