package core

import (
	"time"
)

// ExtractStatus describes the outcome of a field extraction attempt.
type ExtractStatus int

const (
	// StatusNotFound means no rule produced a candidate
	StatusNotFound ExtractStatus = iota
	// StatusFound means exactly one candidate was accepted
	StatusFound
	// StatusAmbiguous means a rule produced conflicting candidates
	StatusAmbiguous
)

func (s ExtractStatus) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusAmbiguous:
		return "ambiguous"
	default:
		return "not_found"
	}
}

// Attachment is a single attachment blob taken from a mail message
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// IsPDF reports whether the attachment looks like a PDF invoice.
func (a *Attachment) IsPDF() bool {
	name := a.Filename
	if len(name) < 4 {
		return a.ContentType == "application/pdf"
	}
	ext := name[len(name)-4:]
	if ext == ".pdf" || ext == ".PDF" || ext == ".Pdf" {
		return true
	}
	return a.ContentType == "application/pdf"
}

// RawMessage is an immutable snapshot of a mail message as delivered by a
// MailSource. The pipeline only reads it.
type RawMessage struct {
	ID          string
	Sender      string
	Subject     string
	Body        string
	Received    time.Time
	Attachments []*Attachment
}

// ExtractedMetadata holds the company name and invoice number recovered from
// a normalized email body.
type ExtractedMetadata struct {
	Company       string
	InvoiceNumber string
	Status        ExtractStatus
}

// DeliveryPointResult holds the POD (and optional PRM) recovered from the
// text of one PDF attachment.
type DeliveryPointResult struct {
	POD    string
	PRM    string
	Status ExtractStatus
}

// Category is the utility type an invoice is routed to.
type Category string

const (
	CategoryUnrouted    Category = ""
	CategoryElectricity Category = "electricity"
	CategoryGas         Category = "gas"
)

// RoutingDecision maps a POD to a destination category and folder. An
// unrouted decision has an empty folder and must never be written.
type RoutingDecision struct {
	Category Category
	Folder   string
}

// Disposition is the terminal outcome of processing one message.
type Disposition int

const (
	// DispositionSkipped leaves the message untouched for the next run or
	// manual review
	DispositionSkipped Disposition = iota
	// DispositionCompleted means the invoice was written and the message
	// marked complete
	DispositionCompleted
	// DispositionFlagged means an exception company matched and the message
	// was marked unread for a human
	DispositionFlagged
)

func (d Disposition) String() string {
	switch d {
	case DispositionCompleted:
		return "completed"
	case DispositionFlagged:
		return "flagged"
	default:
		return "skipped"
	}
}

// MessageResult records what the pipeline did with one message.
type MessageResult struct {
	MessageID   string
	Disposition Disposition
	Reason      string
	POD         string
	Filename    string
	Folder      string
}

// RunStats are the counters reported after one batch sweep.
type RunStats struct {
	Scanned     int
	Attachments int
	Completed   int
	Skipped     int
	Flagged     int
}
