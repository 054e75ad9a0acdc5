// Package mailparse turns a raw RFC 5322 message into the body text and
// attachment blobs the pipeline works on.
package mailparse

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-message"
	"github.com/emersion/go-message/charset"
	"github.com/emersion/go-message/mail"
)

func init() {
	// Vendor emails arrive in ISO-8859-2 as often as UTF-8.
	message.CharsetReader = charset.Reader
}

// Parsed is the flattened view of one message.
type Parsed struct {
	Sender      string
	Subject     string
	Body        string
	Received    time.Time
	Attachments []*Attachment
}

// Attachment is one decoded attachment part.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Parse reads a full message. The body prefers the text/plain part and
// falls back to text/html; the normalizer downstream handles either.
func Parse(r io.Reader) (*Parsed, error) {
	mr, err := mail.CreateReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open message: %w", err)
	}

	p := &Parsed{}
	if from, err := mr.Header.AddressList("From"); err == nil && len(from) > 0 {
		p.Sender = from[0].Address
	}
	if subject, err := mr.Header.Subject(); err == nil {
		p.Subject = subject
	}
	if date, err := mr.Header.Date(); err == nil {
		p.Received = date
	}

	var plain, html strings.Builder
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A broken part should not lose the rest of the message.
			if message.IsUnknownCharset(err) {
				continue
			}
			break
		}

		switch h := part.Header.(type) {
		case *mail.InlineHeader:
			ctype, _, err := h.ContentType()
			if err != nil {
				continue
			}
			data, err := io.ReadAll(part.Body)
			if err != nil {
				continue
			}
			switch ctype {
			case "text/plain":
				plain.Write(data)
				plain.WriteString("\n")
			case "text/html":
				html.Write(data)
				html.WriteString("\n")
			}
		case *mail.AttachmentHeader:
			filename, err := h.Filename()
			if err != nil {
				filename = ""
			}
			ctype, _, _ := h.ContentType()
			data, err := io.ReadAll(part.Body)
			if err != nil {
				continue
			}
			p.Attachments = append(p.Attachments, &Attachment{
				Filename:    filename,
				ContentType: ctype,
				Data:        data,
			})
		}
	}

	// Prefer the plain-text body; fall back to HTML when it is empty.
	if strings.TrimSpace(plain.String()) != "" {
		p.Body = plain.String()
	} else {
		p.Body = html.String()
	}
	return p, nil
}
