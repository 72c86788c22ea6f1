// Package compose builds RFC-2822 reply messages in the raw base64url form the
// Gmail drafts API expects.
package compose

import (
	"encoding/base64"
	"strings"
)

const replyPrefix = "Re: "

// Reply describes a threaded reply to be serialized.
type Reply struct {
	To        string
	Subject   string
	InReplyTo string // original Message-ID; threading headers are omitted when empty
	Body      string
	HTML      bool
}

// ReplySubject prefixes the original subject with "Re: " unless it already
// carries that exact prefix. The check is case-sensitive and runs once, so a
// subject of "RE: x" still gains a prefix and "Re: Re: x" is left alone.
func ReplySubject(original string) string {
	if strings.HasPrefix(original, replyPrefix) {
		return original
	}
	return replyPrefix + original
}

// Recipient extracts the bare address from a From header value. A header like
// `Jane Doe <jane@example.com>` yields `jane@example.com`; anything without an
// angle-bracketed address is returned verbatim.
func Recipient(from string) string {
	open := strings.Index(from, "<")
	if open < 0 {
		return from
	}
	end := strings.Index(from[open:], ">")
	if end < 0 {
		return from
	}
	return from[open+1 : open+end]
}

// Message serializes the reply: a fixed-order header block (To, Subject, then
// In-Reply-To and References when the original Message-ID is known, then
// Content-Type), exactly one blank line, then the body verbatim. Lines are
// joined with CRLF.
func Message(r Reply) string {
	lines := []string{
		"To: " + r.To,
		"Subject: " + r.Subject,
	}
	if r.InReplyTo != "" {
		lines = append(lines,
			"In-Reply-To: "+r.InReplyTo,
			"References: "+r.InReplyTo,
		)
	}
	contentType := "text/plain; charset=utf-8"
	if r.HTML {
		contentType = "text/html; charset=utf-8"
	}
	lines = append(lines, "Content-Type: "+contentType, "", r.Body)
	return strings.Join(lines, "\r\n")
}

// EncodeRaw encodes a serialized message as unpadded base64url (RFC 4648 §5).
func EncodeRaw(message string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(message))
}
