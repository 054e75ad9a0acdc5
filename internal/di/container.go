package di

import (
	"go.uber.org/dig"

	"github.com/szabol/invoice-sorter/internal/config"
	"github.com/szabol/invoice-sorter/internal/core"
	"github.com/szabol/invoice-sorter/internal/factory"
	"github.com/szabol/invoice-sorter/internal/logging"
	"github.com/szabol/invoice-sorter/internal/ports"
)

// BuildContainer creates and configures a dependency injection container
// for the batch binary.
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewSourceFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewPdfFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewSinkFactory); err != nil {
		return nil, err
	}

	// Register mail source
	if err := container.Provide(func(f *factory.SourceFactory) (core.MailSource, error) {
		return f.CreateMailSource()
	}); err != nil {
		return nil, err
	}

	// Register PDF text provider
	if err := container.Provide(func(f *factory.PdfFactory) core.PdfTextProvider {
		return f.CreatePdfTextProvider()
	}); err != nil {
		return nil, err
	}

	// Register file sink
	if err := container.Provide(func(f *factory.SinkFactory) core.FileSink {
		return f.CreateFileSink()
	}); err != nil {
		return nil, err
	}

	// Register pipeline
	if err := container.Provide(factory.NewPipelineFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.PipelineFactory) (ports.BatchRunner, error) {
		return f.CreateBatchRunner()
	}); err != nil {
		return nil, err
	}

	return container, nil
}
