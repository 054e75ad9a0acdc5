// Package imapsource implements the MailSource port against an IMAP mailbox.
package imapsource

import (
	"context"
	"crypto/tls"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"go.uber.org/zap"

	"github.com/szabol/invoice-sorter/internal/adapters/mailparse"
	"github.com/szabol/invoice-sorter/internal/core"
)

// Source is an IMAP-backed MailSource. Message IDs are mailbox UIDs.
type Source struct {
	server             string
	username           string
	password           string
	mailbox            string
	insecureSkipVerify bool
	logger             *zap.Logger

	client *client.Client
}

// New creates a new IMAP source. The connection is established lazily on
// the first call.
func New(server, username, password, mailbox string, insecureSkipVerify bool, logger *zap.Logger) *Source {
	return &Source{
		server:             server,
		username:           username,
		password:           password,
		mailbox:            mailbox,
		insecureSkipVerify: insecureSkipVerify,
		logger:             logger,
	}
}

func (s *Source) connect() error {
	if s.client != nil {
		return nil
	}

	c, err := client.DialTLS(s.server, &tls.Config{InsecureSkipVerify: s.insecureSkipVerify})
	if err != nil {
		return fmt.Errorf("failed to dial %s: %w", s.server, err)
	}
	if err := c.Login(s.username, s.password); err != nil {
		c.Logout()
		return fmt.Errorf("failed to login as %s: %w", s.username, err)
	}
	if _, err := c.Select(s.mailbox, false); err != nil {
		c.Logout()
		return fmt.Errorf("failed to select mailbox %q: %w", s.mailbox, err)
	}

	s.logger.Info("Connected to IMAP server",
		zap.String("server", s.server),
		zap.String("mailbox", s.mailbox))
	s.client = c
	return nil
}

// ListMessages searches for unprocessed messages from the sender in the
// given month and fetches their full bodies. Messages already flagged \Seen
// are excluded, which makes a re-run over a completed message a no-op.
func (s *Source) ListMessages(ctx context.Context, sender string, year int, month time.Month) ([]*core.RawMessage, error) {
	if err := s.connect(); err != nil {
		return nil, err
	}

	since := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	before := since.AddDate(0, 1, 0)

	criteria := imap.NewSearchCriteria()
	criteria.Since = since
	criteria.Before = before
	criteria.WithoutFlags = []string{imap.SeenFlag}
	if sender != "" {
		criteria.Header.Add("From", sender)
	}

	uids, err := s.client.UidSearch(criteria)
	if err != nil {
		return nil, fmt.Errorf("imap search failed: %w", err)
	}
	if len(uids) == 0 {
		return nil, nil
	}

	seqset := new(imap.SeqSet)
	seqset.AddNum(uids...)

	section := &imap.BodySectionName{Peek: true}
	items := []imap.FetchItem{imap.FetchUid, imap.FetchInternalDate, section.FetchItem()}

	messages := make(chan *imap.Message, 16)
	done := make(chan error, 1)
	go func() {
		done <- s.client.UidFetch(seqset, items, messages)
	}()

	var out []*core.RawMessage
	for msg := range messages {
		raw, err := s.toRawMessage(msg, section, sender, year, month)
		if err != nil {
			s.logger.Warn("Skipping unparsable message",
				zap.Uint32("uid", msg.Uid), zap.Error(err))
			continue
		}
		if raw != nil {
			out = append(out, raw)
		}
	}
	if err := <-done; err != nil {
		return nil, fmt.Errorf("imap fetch failed: %w", err)
	}

	s.logger.Info("Fetched candidate messages",
		zap.Int("matched", len(out)),
		zap.Int("searched", len(uids)))
	return out, nil
}

// toRawMessage parses one fetched message and re-checks the filters
// client-side: IMAP servers match headers loosely and interpret SINCE and
// BEFORE in their own timezone.
func (s *Source) toRawMessage(msg *imap.Message, section *imap.BodySectionName, sender string, year int, month time.Month) (*core.RawMessage, error) {
	body := msg.GetBody(section)
	if body == nil {
		return nil, fmt.Errorf("server returned no body section")
	}

	parsed, err := mailparse.Parse(body)
	if err != nil {
		return nil, err
	}

	received := parsed.Received
	if received.IsZero() {
		received = msg.InternalDate
	}
	if sender != "" && !strings.Contains(strings.ToLower(parsed.Sender), strings.ToLower(sender)) {
		return nil, nil
	}
	if received.Year() != year || received.Month() != month {
		return nil, nil
	}

	raw := &core.RawMessage{
		ID:       strconv.FormatUint(uint64(msg.Uid), 10),
		Sender:   parsed.Sender,
		Subject:  parsed.Subject,
		Body:     parsed.Body,
		Received: received,
	}
	for _, a := range parsed.Attachments {
		raw.Attachments = append(raw.Attachments, &core.Attachment{
			Filename:    a.Filename,
			ContentType: a.ContentType,
			Data:        a.Data,
		})
	}
	return raw, nil
}

// MarkComplete marks the message seen and flagged, the IMAP equivalent of
// the mail client's "completed" flag.
func (s *Source) MarkComplete(ctx context.Context, messageID string) error {
	return s.store(messageID, imap.AddFlags, []interface{}{imap.SeenFlag, imap.FlaggedFlag})
}

// MarkUnread clears the seen flag so the message shows up for a human.
func (s *Source) MarkUnread(ctx context.Context, messageID string) error {
	return s.store(messageID, imap.RemoveFlags, []interface{}{imap.SeenFlag})
}

func (s *Source) store(messageID string, op imap.FlagsOp, flags []interface{}) error {
	if err := s.connect(); err != nil {
		return err
	}

	uid, err := strconv.ParseUint(messageID, 10, 32)
	if err != nil {
		return fmt.Errorf("invalid message id %q: %w", messageID, err)
	}

	seqset := new(imap.SeqSet)
	seqset.AddNum(uint32(uid))
	item := imap.FormatFlagsOp(op, true)
	if err := s.client.UidStore(seqset, item, flags, nil); err != nil {
		return fmt.Errorf("imap store failed for uid %d: %w", uid, err)
	}
	return nil
}

// Close logs out of the server.
func (s *Source) Close() error {
	if s.client == nil {
		return nil
	}
	err := s.client.Logout()
	s.client = nil
	return err
}
