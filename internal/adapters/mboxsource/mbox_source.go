// Package mboxsource implements the MailSource port over a local mbox
// file. It exists for offline runs against an exported mailbox and for
// exercising the pipeline without an IMAP server; state changes are only
// recorded in memory.
package mboxsource

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/emersion/go-mbox"
	"go.uber.org/zap"

	"github.com/szabol/invoice-sorter/internal/adapters/mailparse"
	"github.com/szabol/invoice-sorter/internal/core"
)

// Source reads messages from an mbox file. Message IDs are the zero-based
// position in the file.
type Source struct {
	path   string
	logger *zap.Logger

	completed map[string]struct{}
	unread    map[string]struct{}
}

// New creates a new mbox source
func New(path string, logger *zap.Logger) *Source {
	return &Source{
		path:      path,
		logger:    logger,
		completed: make(map[string]struct{}),
		unread:    make(map[string]struct{}),
	}
}

// ListMessages scans the whole file and returns the messages matching the
// sender substring and the year/month of the Date header.
func (s *Source) ListMessages(ctx context.Context, sender string, year int, month time.Month) ([]*core.RawMessage, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open mbox %s: %w", s.path, err)
	}
	defer f.Close()

	mr := mbox.NewReader(f)
	var out []*core.RawMessage
	for index := 0; ; index++ {
		msgReader, err := mr.NextMessage()
		if err != nil {
			// The reader returns io.EOF at the end; anything else means
			// the rest of the file is unreadable.
			break
		}

		parsed, err := mailparse.Parse(msgReader)
		if err != nil {
			s.logger.Warn("Skipping unparsable mbox message",
				zap.Int("index", index), zap.Error(err))
			continue
		}

		if sender != "" && !strings.Contains(strings.ToLower(parsed.Sender), strings.ToLower(sender)) {
			continue
		}
		if parsed.Received.Year() != year || parsed.Received.Month() != month {
			continue
		}

		id := strconv.Itoa(index)
		if _, done := s.completed[id]; done {
			continue
		}

		raw := &core.RawMessage{
			ID:       id,
			Sender:   parsed.Sender,
			Subject:  parsed.Subject,
			Body:     parsed.Body,
			Received: parsed.Received,
		}
		for _, a := range parsed.Attachments {
			raw.Attachments = append(raw.Attachments, &core.Attachment{
				Filename:    a.Filename,
				ContentType: a.ContentType,
				Data:        a.Data,
			})
		}
		out = append(out, raw)
	}

	s.logger.Info("Read mbox file",
		zap.String("path", s.path),
		zap.Int("matched", len(out)))
	return out, nil
}

// MarkComplete records the message as processed for the rest of this run.
// The mbox file itself is never modified.
func (s *Source) MarkComplete(ctx context.Context, messageID string) error {
	s.completed[messageID] = struct{}{}
	delete(s.unread, messageID)
	s.logger.Debug("Marked complete (in-memory)", zap.String("message_id", messageID))
	return nil
}

// MarkUnread records the message as needing manual review.
func (s *Source) MarkUnread(ctx context.Context, messageID string) error {
	s.unread[messageID] = struct{}{}
	s.logger.Debug("Marked unread (in-memory)", zap.String("message_id", messageID))
	return nil
}

// Unread reports whether a message was flagged for manual review.
func (s *Source) Unread(messageID string) bool {
	_, ok := s.unread[messageID]
	return ok
}
