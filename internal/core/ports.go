package core

import (
	"context"
	"time"
)

// MailSource defines the interface for listing candidate messages and
// updating their state in the backing mailbox. Implementations must not
// return messages that were already marked complete.
type MailSource interface {
	// ListMessages returns the messages from the given sender received in
	// the given year and month
	ListMessages(ctx context.Context, sender string, year int, month time.Month) ([]*RawMessage, error)

	// MarkComplete marks a message as read and processed
	MarkComplete(ctx context.Context, messageID string) error

	// MarkUnread marks a message as unread so a human picks it up
	MarkUnread(ctx context.Context, messageID string) error
}

// PdfTextProvider defines the interface for turning a PDF blob into plain text.
type PdfTextProvider interface {
	// ExtractText returns the text content of the PDF
	ExtractText(ctx context.Context, blob []byte) (string, error)
}

// FileSink defines the interface for placing routed invoices into a
// destination folder.
type FileSink interface {
	// ListExistingNames returns the filenames already present in the folder
	ListExistingNames(folder string) (map[string]struct{}, error)

	// WriteFile writes the blob under the given name. It must fail if the
	// name already exists so collision suffixes stay race-free.
	WriteFile(folder string, filename string, blob []byte) error
}
