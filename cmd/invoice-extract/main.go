// invoice-extract runs the extraction stages one at a time against a local
// file, for checking what the patterns see before letting the batch job
// touch the mailbox.
package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/szabol/invoice-sorter/internal/adapters/mailparse"
	"github.com/szabol/invoice-sorter/internal/core"
	"github.com/szabol/invoice-sorter/internal/di"
)

func main() {
	flags := di.ParseFlags()

	container, err := di.BuildCLIContainer(flags)
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

func run(
	logger *zap.Logger,
	flags *di.CLIFlags,
	normalizer *core.Normalizer,
	metadata *core.MetadataExtractor,
	delivery *core.DeliveryPointExtractor,
	router *core.Router,
	pdfText core.PdfTextProvider,
) error {
	defer logger.Sync()

	switch {
	case flags.EmlFile != "":
		return extractEmail(flags.EmlFile, normalizer, metadata)
	case flags.PdfFile != "":
		return extractPdf(flags.PdfFile, delivery, router, pdfText)
	default:
		return fmt.Errorf("one of -eml or -pdf is required")
	}
}

func extractEmail(path string, normalizer *core.Normalizer, metadata *core.MetadataExtractor) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	parsed, err := mailparse.Parse(f)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	fmt.Printf("\n=== Message ===\n")
	fmt.Printf("From: %s\n", parsed.Sender)
	fmt.Printf("Subject: %s\n", parsed.Subject)
	fmt.Printf("Attachments: %d\n", len(parsed.Attachments))

	body := normalizer.Normalize(parsed.Body)
	meta := metadata.Extract(body)

	fmt.Printf("\n=== Extracted Metadata ===\n")
	fmt.Printf("Status: %s\n", meta.Status)
	fmt.Printf("Company: %s\n", meta.Company)
	fmt.Printf("Invoice number: %s\n", meta.InvoiceNumber)
	return nil
}

func extractPdf(path string, delivery *core.DeliveryPointExtractor, router *core.Router, pdfText core.PdfTextProvider) error {
	blob, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	text, err := pdfText.ExtractText(context.Background(), blob)
	if err != nil {
		return fmt.Errorf("failed to extract text: %w", err)
	}

	result := delivery.Extract(text)

	fmt.Printf("\n=== Delivery Point ===\n")
	fmt.Printf("Status: %s\n", result.Status)
	fmt.Printf("POD: %s\n", result.POD)
	fmt.Printf("PRM: %s\n", result.PRM)

	if result.Status == core.StatusFound {
		decision := router.Route(result.POD)
		fmt.Printf("\n=== Routing ===\n")
		if decision.Category == core.CategoryUnrouted {
			fmt.Printf("Category: unrouted (no prefix matched)\n")
		} else {
			fmt.Printf("Category: %s\n", decision.Category)
			fmt.Printf("Folder: %s\n", decision.Folder)
		}
	}
	return nil
}
