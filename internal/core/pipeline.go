package core

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// FilterSpec selects which messages one batch sweep looks at.
type FilterSpec struct {
	Sender string
	Year   int
	Month  time.Month
}

// Pipeline is the per-message orchestrator: it normalizes the body, extracts
// metadata, applies the exception gate, pulls the POD out of the PDF
// attachments, routes, writes and finally updates the mailbox state. The
// mark-complete call is strictly the last step so an interrupted message is
// never marked complete without a written file.
type Pipeline struct {
	source     MailSource
	pdfText    PdfTextProvider
	sink       FileSink
	normalizer *Normalizer
	metadata   *MetadataExtractor
	delivery   *DeliveryPointExtractor
	exceptions *ExceptionPolicy
	router     *Router
	filenames  *FilenameBuilder
	filter     FilterSpec
	logger     *zap.Logger
}

// NewPipeline creates the orchestrator with all collaborators injected.
func NewPipeline(
	source MailSource,
	pdfText PdfTextProvider,
	sink FileSink,
	exceptions *ExceptionPolicy,
	router *Router,
	filter FilterSpec,
	logger *zap.Logger,
) *Pipeline {
	return &Pipeline{
		source:     source,
		pdfText:    pdfText,
		sink:       sink,
		normalizer: NewNormalizer(),
		metadata:   NewMetadataExtractor(),
		delivery:   NewDeliveryPointExtractor(),
		exceptions: exceptions,
		router:     router,
		filenames:  NewFilenameBuilder(),
		filter:     filter,
		logger:     logger,
	}
}

// Run sweeps one batch of messages. One message's failure never aborts the
// rest of the batch; the error return only covers listing the mailbox.
func (p *Pipeline) Run(ctx context.Context) (*RunStats, error) {
	messages, err := p.source.ListMessages(ctx, p.filter.Sender, p.filter.Year, p.filter.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	stats := &RunStats{}
	for _, msg := range messages {
		if ctx.Err() != nil {
			p.logger.Warn("Sweep interrupted", zap.Int("scanned", stats.Scanned))
			break
		}

		stats.Scanned++
		stats.Attachments += len(msg.Attachments)

		res := p.ProcessMessage(ctx, msg)
		switch res.Disposition {
		case DispositionCompleted:
			stats.Completed++
		case DispositionFlagged:
			stats.Flagged++
		default:
			stats.Skipped++
		}

		p.logger.Info("Message processed",
			zap.String("message_id", res.MessageID),
			zap.String("disposition", res.Disposition.String()),
			zap.String("reason", res.Reason),
			zap.String("pod", res.POD),
			zap.String("filename", res.Filename))
	}

	p.logger.Info("Sweep finished",
		zap.Int("scanned", stats.Scanned),
		zap.Int("attachments", stats.Attachments),
		zap.Int("completed", stats.Completed),
		zap.Int("skipped", stats.Skipped),
		zap.Int("flagged", stats.Flagged))
	return stats, nil
}

// ProcessMessage runs the state machine for one message and returns its
// terminal disposition. Unexpected faults are caught at this boundary and
// converted to a skip; they never propagate into the batch loop.
func (p *Pipeline) ProcessMessage(ctx context.Context, msg *RawMessage) (res MessageResult) {
	res = MessageResult{MessageID: msg.ID}

	defer func() {
		if r := recover(); r != nil {
			res.Disposition = DispositionSkipped
			res.Reason = fmt.Sprintf("internal fault: %v", r)
			p.logger.Error("Recovered from fault while processing message",
				zap.String("message_id", msg.ID),
				zap.Any("fault", r))
		}
	}()

	body := p.normalizer.Normalize(msg.Body)
	meta := p.metadata.Extract(body)

	if meta.Status != StatusFound {
		res.Disposition = DispositionSkipped
		res.Reason = "metadata " + meta.Status.String()
		return res
	}

	// The exception gate skips the PDF and routing stages entirely: the
	// message goes back to a human as unread.
	if p.exceptions.IsException(meta.Company, msg.Sender) {
		if err := p.source.MarkUnread(ctx, msg.ID); err != nil {
			p.logger.Error("Failed to mark exception message unread",
				zap.String("message_id", msg.ID), zap.Error(err))
		}
		res.Disposition = DispositionFlagged
		res.Reason = "exception company"
		return res
	}

	pod, attachment, reason := p.extractPOD(ctx, msg)
	if pod == "" {
		res.Disposition = DispositionSkipped
		res.Reason = reason
		return res
	}
	res.POD = pod

	decision := p.router.Route(pod)
	if decision.Category == CategoryUnrouted {
		// Logged with the raw POD so the invoice can be filed by hand.
		p.logger.Warn("POD matched no routing prefix",
			zap.String("message_id", msg.ID),
			zap.String("pod", pod))
		res.Disposition = DispositionSkipped
		res.Reason = "unrouted pod"
		return res
	}

	existing, err := p.sink.ListExistingNames(decision.Folder)
	if err != nil {
		res.Disposition = DispositionSkipped
		res.Reason = fmt.Sprintf("failed to list destination folder: %v", err)
		return res
	}

	filename := p.filenames.Build(meta.Company, pod, meta.InvoiceNumber, existing)
	if err := p.sink.WriteFile(decision.Folder, filename, attachment.Data); err != nil {
		res.Disposition = DispositionSkipped
		res.Reason = fmt.Sprintf("failed to write file: %v", err)
		return res
	}
	res.Filename = filename
	res.Folder = decision.Folder

	// Write before mark: the file exists from here on, so marking the
	// message complete is safe even if this call itself fails.
	if err := p.source.MarkComplete(ctx, msg.ID); err != nil {
		p.logger.Error("File written but marking complete failed",
			zap.String("message_id", msg.ID),
			zap.String("filename", filename),
			zap.Error(err))
	}

	res.Disposition = DispositionCompleted
	res.Reason = "routed to " + string(decision.Category)
	return res
}

// extractPOD pulls a POD out of every PDF attachment. Exactly one distinct
// value across attachments wins; differing values are treated as ambiguous
// and skipped rather than guessing which attachment is the invoice.
func (p *Pipeline) extractPOD(ctx context.Context, msg *RawMessage) (pod string, att *Attachment, reason string) {
	var (
		found        []string
		firstByPOD   = make(map[string]*Attachment)
		sawAmbiguous bool
		sawPDF       bool
	)

	for _, a := range msg.Attachments {
		if !a.IsPDF() {
			continue
		}
		sawPDF = true

		text, err := p.pdfText.ExtractText(ctx, a.Data)
		if err != nil {
			p.logger.Warn("PDF text extraction failed",
				zap.String("message_id", msg.ID),
				zap.String("attachment", a.Filename),
				zap.Error(err))
			continue
		}

		result := p.delivery.Extract(text)
		switch result.Status {
		case StatusFound:
			if _, ok := firstByPOD[result.POD]; !ok {
				firstByPOD[result.POD] = a
				found = append(found, result.POD)
			}
		case StatusAmbiguous:
			sawAmbiguous = true
		}
	}

	switch {
	case !sawPDF:
		return "", nil, "no pdf attachment"
	case len(found) == 1:
		return found[0], firstByPOD[found[0]], ""
	case len(found) > 1:
		return "", nil, "pod differs across attachments"
	case sawAmbiguous:
		return "", nil, "pod ambiguous"
	default:
		return "", nil, "pod not found"
	}
}
