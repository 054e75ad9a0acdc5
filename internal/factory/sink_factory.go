package factory

import (
	"go.uber.org/zap"

	"github.com/szabol/invoice-sorter/internal/adapters/fsink"
	"github.com/szabol/invoice-sorter/internal/core"
)

// SinkFactory creates file sinks
type SinkFactory struct {
	logger *zap.Logger
}

// NewSinkFactory creates a new sink factory
func NewSinkFactory(logger *zap.Logger) *SinkFactory {
	return &SinkFactory{logger: logger}
}

// CreateFileSink creates a filesystem sink
func (f *SinkFactory) CreateFileSink() core.FileSink {
	return fsink.New(f.logger)
}
