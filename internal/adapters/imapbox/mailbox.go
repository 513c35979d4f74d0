// Package imapbox reads setpoint-adjustment replies from the sender
// account's inbox over IMAP.
package imapbox

import (
	"context"
	"fmt"
	"io"
	"strings"

	"ratewatch/internal/config"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"github.com/emersion/go-message/mail"
	"github.com/sirupsen/logrus"
)

// Mailbox fetches unread messages from the configured recipient address and
// marks them read after processing. Only the From header gates acceptance;
// there is no further sender authentication.
type Mailbox struct {
	cfg config.Email
	log logrus.FieldLogger
}

func NewMailbox(cfg config.Email, log logrus.FieldLogger) *Mailbox {
	return &Mailbox{cfg: cfg, log: log}
}

// ReadUnread returns the reply content (quoted text stripped) of each unread
// message from the recipient. The IMAP round trip is not time-bounded; the
// cycle is invoked per scheduling trigger, not as a long-lived server.
func (b *Mailbox) ReadUnread(ctx context.Context) ([]string, error) {
	addr := fmt.Sprintf("%s:%d", b.cfg.IMAPServer, b.cfg.IMAPPort)

	var c *client.Client
	var err error
	if b.cfg.UseSSL {
		c, err = client.DialTLS(addr, nil)
	} else {
		c, err = client.Dial(addr)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	defer c.Logout()

	if err = c.Login(b.cfg.SenderEmail, b.cfg.SenderPassword); err != nil {
		return nil, fmt.Errorf("imap login failed for %s: %w", b.cfg.SenderEmail, err)
	}
	if _, err = c.Select("INBOX", false); err != nil {
		return nil, fmt.Errorf("failed to select INBOX: %w", err)
	}

	criteria := imap.NewSearchCriteria()
	criteria.WithoutFlags = []string{imap.SeenFlag}
	criteria.Header.Add("From", b.cfg.RecipientEmail)

	ids, err := c.Search(criteria)
	if err != nil {
		return nil, fmt.Errorf("imap search failed: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	seqset := new(imap.SeqSet)
	seqset.AddNum(ids...)

	section := &imap.BodySectionName{Peek: true}
	messages := make(chan *imap.Message, len(ids))
	done := make(chan error, 1)
	go func() {
		done <- c.Fetch(seqset, []imap.FetchItem{section.FetchItem()}, messages)
	}()

	var replies []string
	for msg := range messages {
		body := msg.GetBody(section)
		if body == nil {
			continue
		}
		text, perr := plainTextPart(body)
		if perr != nil {
			b.log.Warnf("Skipping unreadable message %d: %v", msg.SeqNum, perr)
			continue
		}
		if reply := ExtractReply(text); reply != "" {
			replies = append(replies, reply)
		}
	}
	if err = <-done; err != nil {
		return nil, fmt.Errorf("imap fetch failed: %w", err)
	}

	// Processed messages must not be picked up again next cycle.
	markSeen := imap.FormatFlagsOp(imap.AddFlags, true)
	if err = c.Store(seqset, markSeen, []interface{}{imap.SeenFlag}, nil); err != nil {
		return nil, fmt.Errorf("failed to mark messages read: %w", err)
	}

	return replies, nil
}

// plainTextPart returns the first text/plain part of a raw message.
func plainTextPart(r io.Reader) (string, error) {
	mr, err := mail.CreateReader(r)
	if err != nil {
		return "", err
	}
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			return "", nil
		}
		if err != nil {
			return "", err
		}
		header, ok := part.Header.(*mail.InlineHeader)
		if !ok {
			continue
		}
		contentType, _, _ := header.ContentType()
		if contentType == "" || contentType == "text/plain" {
			body, err := io.ReadAll(part.Body)
			if err != nil {
				return "", err
			}
			return string(body), nil
		}
	}
}

// ExtractReply strips quoted prior-message text from a reply body: quoted
// lines are dropped and everything from a reply-attribution marker on is
// cut off.
func ExtractReply(body string) string {
	var kept []string
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, ">") {
			continue
		}
		if isAttributionMarker(trimmed) {
			break
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

func isAttributionMarker(line string) bool {
	if strings.HasPrefix(line, "On ") && strings.HasSuffix(line, "wrote:") {
		return true
	}
	return strings.Contains(line, "Original Message")
}
