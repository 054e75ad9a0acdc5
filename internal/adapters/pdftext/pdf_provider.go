// Package pdftext implements the PdfTextProvider port with ledongthuc/pdf.
package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// Provider extracts plain text from PDF blobs. The preferred page is
// emitted first: the vendor prints the POD on page 2 of most invoices, so
// putting it up front lets the delivery-point matcher settle on the right
// line early.
type Provider struct {
	preferPage int
	logger     *zap.Logger
}

// New creates a new Provider. preferPage is 1-based; zero disables the
// reordering.
func New(preferPage int, logger *zap.Logger) *Provider {
	return &Provider{
		preferPage: preferPage,
		logger:     logger,
	}
}

// ExtractText returns the text of all pages, preferred page first.
func (p *Provider) ExtractText(ctx context.Context, blob []byte) (text string, err error) {
	// The pdf package panics on some malformed files; an invoice we cannot
	// read is a per-message skip, not a crash.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf parsing failed: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(blob), int64(len(blob)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	total := reader.NumPage()
	var sb strings.Builder

	if p.preferPage >= 1 && p.preferPage <= total {
		p.appendPage(&sb, reader, p.preferPage)
	}
	for i := 1; i <= total; i++ {
		if i == p.preferPage {
			continue
		}
		p.appendPage(&sb, reader, i)
	}

	return sb.String(), nil
}

// appendPage writes one page's text row by row, preserving the line
// structure the delivery-point matcher scans.
func (p *Provider) appendPage(sb *strings.Builder, reader *pdf.Reader, pageNum int) {
	page := reader.Page(pageNum)
	if page.V.IsNull() {
		return
	}

	rows, err := page.GetTextByRow()
	if err != nil {
		p.logger.Debug("Failed to read pdf page",
			zap.Int("page", pageNum), zap.Error(err))
		return
	}

	for _, row := range rows {
		for _, word := range row.Content {
			sb.WriteString(word.S)
			sb.WriteString(" ")
		}
		sb.WriteString("\n")
	}
}
