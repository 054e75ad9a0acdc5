package mboxsource

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

const sampleMbox = `From eszamla@vendor.example Mon Oct  6 09:30:00 2025
From: Vendor Billing <eszamla@vendor.example>
To: invoices@customer.example
Subject: Elektronikus szamla
Date: Mon, 06 Oct 2025 09:30:00 +0200
MIME-Version: 1.0
Content-Type: multipart/mixed; boundary="b1"

--b1
Content-Type: text/plain; charset=utf-8

Company: Halker Kft, Invoice: 562003117859

--b1
Content-Type: application/pdf; name="invoice.pdf"
Content-Disposition: attachment; filename="invoice.pdf"
Content-Transfer-Encoding: base64

JVBERi0xLjQ=

--b1--

From newsletter@other.example Tue Oct  7 08:00:00 2025
From: Newsletter <newsletter@other.example>
To: invoices@customer.example
Subject: Weekly digest
Date: Tue, 07 Oct 2025 08:00:00 +0200
Content-Type: text/plain; charset=utf-8

Nothing to see here.
`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "inbox.mbox")
	if err := os.WriteFile(path, []byte(sampleMbox), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestListMessages_FiltersSenderAndMonth(t *testing.T) {
	s := New(writeSample(t), zap.NewNop())

	msgs, err := s.ListMessages(context.Background(), "eszamla@vendor.example", 2025, time.October)
	if err != nil {
		t.Fatalf("ListMessages() error = %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want 1", len(msgs))
	}

	msg := msgs[0]
	if msg.Sender != "eszamla@vendor.example" {
		t.Errorf("Sender = %q", msg.Sender)
	}
	if !strings.Contains(msg.Body, "Company: Halker Kft, Invoice: 562003117859") {
		t.Errorf("Body = %q, missing the invoice line", msg.Body)
	}
	if len(msg.Attachments) != 1 {
		t.Fatalf("got %d attachments, want 1", len(msg.Attachments))
	}
	att := msg.Attachments[0]
	if att.Filename != "invoice.pdf" || !att.IsPDF() {
		t.Errorf("attachment = %q (%s), want a PDF", att.Filename, att.ContentType)
	}
	if string(att.Data) != "%PDF-1.4" {
		t.Errorf("attachment data = %q, want decoded base64", att.Data)
	}
}

func TestListMessages_WrongMonthIsEmpty(t *testing.T) {
	s := New(writeSample(t), zap.NewNop())

	msgs, err := s.ListMessages(context.Background(), "eszamla@vendor.example", 2025, time.September)
	if err != nil {
		t.Fatalf("ListMessages() error = %v", err)
	}
	if len(msgs) != 0 {
		t.Errorf("got %d messages, want 0", len(msgs))
	}
}

func TestMarkComplete_ExcludesFromNextListing(t *testing.T) {
	s := New(writeSample(t), zap.NewNop())

	msgs, err := s.ListMessages(context.Background(), "eszamla@vendor.example", 2025, time.October)
	if err != nil || len(msgs) != 1 {
		t.Fatalf("ListMessages() = %d messages, err %v", len(msgs), err)
	}

	if err := s.MarkComplete(context.Background(), msgs[0].ID); err != nil {
		t.Fatalf("MarkComplete() error = %v", err)
	}

	msgs, err = s.ListMessages(context.Background(), "eszamla@vendor.example", 2025, time.October)
	if err != nil {
		t.Fatalf("second ListMessages() error = %v", err)
	}
	if len(msgs) != 0 {
		t.Errorf("completed message listed again, got %d", len(msgs))
	}
}

func TestMarkUnread(t *testing.T) {
	s := New(writeSample(t), zap.NewNop())

	if err := s.MarkUnread(context.Background(), "0"); err != nil {
		t.Fatalf("MarkUnread() error = %v", err)
	}
	if !s.Unread("0") {
		t.Error("Unread(0) = false after MarkUnread")
	}
}
