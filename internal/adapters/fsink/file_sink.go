// Package fsink implements the FileSink port on the local filesystem.
package fsink

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// ErrNameTaken is returned when the target filename already exists. The
// collision suffix logic upstream picks a fresh name and retries on the
// next run.
var ErrNameTaken = errors.New("target filename already exists")

// Sink writes routed invoices into destination folders.
type Sink struct {
	logger *zap.Logger
}

// New creates a new filesystem sink
func New(logger *zap.Logger) *Sink {
	return &Sink{logger: logger}
}

// ListExistingNames returns the names already present in the folder. A
// folder that does not exist yet is simply empty.
func (s *Sink) ListExistingNames(folder string) (map[string]struct{}, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]struct{}{}, nil
		}
		return nil, fmt.Errorf("failed to list %s: %w", folder, err)
	}

	names := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		names[e.Name()] = struct{}{}
	}
	return names, nil
}

// WriteFile creates the file exclusively: if another run wrote the same
// name between the listing and this call, the write fails instead of
// overwriting an invoice.
func (s *Sink) WriteFile(folder string, filename string, blob []byte) error {
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return fmt.Errorf("failed to create folder %s: %w", folder, err)
	}

	path := filepath.Join(folder, filename)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("%w: %s", ErrNameTaken, path)
		}
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if _, err := f.Write(blob); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}

	s.logger.Info("Wrote invoice",
		zap.String("path", path),
		zap.Int("bytes", len(blob)))
	return nil
}
