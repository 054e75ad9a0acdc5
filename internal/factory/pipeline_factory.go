package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/szabol/invoice-sorter/internal/config"
	"github.com/szabol/invoice-sorter/internal/core"
	"github.com/szabol/invoice-sorter/internal/ports"
)

// PipelineFactory assembles the orchestrator from configuration and the
// injected collaborators.
type PipelineFactory struct {
	cfg     *config.Config
	logger  *zap.Logger
	source  core.MailSource
	pdfText core.PdfTextProvider
	sink    core.FileSink
}

// NewPipelineFactory creates a new pipeline factory
func NewPipelineFactory(
	cfg *config.Config,
	logger *zap.Logger,
	source core.MailSource,
	pdfText core.PdfTextProvider,
	sink core.FileSink,
) *PipelineFactory {
	return &PipelineFactory{
		cfg:     cfg,
		logger:  logger,
		source:  source,
		pdfText: pdfText,
		sink:    sink,
	}
}

// CreateBatchRunner creates the configured pipeline
func (f *PipelineFactory) CreateBatchRunner() (ports.BatchRunner, error) {
	rules, err := f.cfg.GetPrefixRules()
	if err != nil {
		return nil, fmt.Errorf("invalid routing table: %w", err)
	}

	filter := f.cfg.GetFilter()
	if filter.Sender == "" {
		f.logger.Warn("No sender filter configured; every message in the month will be scanned")
	}

	return core.NewPipeline(
		f.source,
		f.pdfText,
		f.sink,
		core.NewExceptionPolicy(f.cfg.GetExceptionKeywords(), f.logger),
		core.NewRouter(rules, f.cfg.GetFolders()),
		filter,
		f.logger,
	), nil
}
