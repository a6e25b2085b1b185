// Package factcheck classifies inbound fact-check reply mail. Receiving and
// parsing the mail happens upstream; this package decides whether a reply is
// a genuine response or an automated absence answer, and which edition it
// belongs to.
package factcheck

import (
	"net/mail"
	"net/textproto"
	"strconv"
	"strings"
)

// A Message is the slice of a mail message this package needs. Adapters over
// concrete mail representations implement it; there is no catch-all
// forwarding of other message methods.
type Message interface {
	Recipients() []string
	Header(name string) (value string, ok bool)
	Subject() string
}

// header values which mark a message as machine-generated
var autoReplyHeaders = [][2]string{
	{"Auto-Submitted", "auto-replied"},
	{"Auto-Submitted", "auto-generated"},
	{"Precedence", "bulk"},
	{"Precedence", "auto_reply"},
	{"Precedence", "junk"},
	{"Return-Path", ""},
	{"X-Precedence", "bulk"},
	{"X-Precedence", "auto_reply"},
	{"X-Precedence", "junk"},
	{"X-Autoreply", "yes"},
}

// OutOfOffice reports whether the reply is an automated absence answer rather
// than a genuine fact-check response. It checks the subject prefix and the
// usual auto-reply headers.
func OutOfOffice(m Message) bool {

	if strings.HasPrefix(strings.ToLower(m.Subject()), "out of office") {
		return true
	}

	// these two count regardless of their value
	if _, ok := m.Header("X-Autorespond"); ok {
		return true
	}
	if _, ok := m.Header("X-Auto-Response-Suppress"); ok {
		return true
	}

	for _, header := range autoReplyHeaders {
		if value, ok := m.Header(header[0]); ok && value == header[1] {
			return true
		}
	}

	return false
}

// EditionID extracts the edition id from a reply's fact-check recipient
// address. Fact-check requests go out with a reply address of the form
// local+<editionID>@domain, so the reply carries the edition it belongs to.
func EditionID(m Message) (int, bool) {
	for _, recipient := range m.Recipients() {
		var local, _, ok = strings.Cut(recipient, "@")
		if !ok {
			continue
		}
		_, idPart, ok := strings.Cut(local, "+")
		if !ok {
			continue
		}
		if id, err := strconv.Atoi(idPart); err == nil && id > 0 {
			return id, true
		}
	}
	return 0, false
}

// MailMessage adapts a parsed net/mail message.
type MailMessage struct {
	*mail.Message
}

// Recipients returns the To, Cc and Bcc addresses.
func (m MailMessage) Recipients() []string {
	var recipients = []string{}
	for _, field := range []string{"To", "Cc", "Bcc"} {
		addresses, err := m.Message.Header.AddressList(field)
		if err != nil {
			continue
		}
		for _, address := range addresses {
			recipients = append(recipients, address.Address)
		}
	}
	return recipients
}

// Header returns the first value of the named header. An empty value with a
// present header returns ok.
func (m MailMessage) Header(name string) (string, bool) {
	var values, ok = textproto.MIMEHeader(m.Message.Header)[textproto.CanonicalMIMEHeaderKey(name)]
	if !ok || len(values) == 0 {
		return "", ok
	}
	return values[0], true
}

func (m MailMessage) Subject() string {
	return m.Message.Header.Get("Subject")
}
