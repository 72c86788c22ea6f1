package compose

import (
	"encoding/base64"
	"io"
	"strings"
	"testing"

	"github.com/emersion/go-message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplySubject(t *testing.T) {
	assert.Equal(t, "Re: Hello", ReplySubject("Hello"))
	assert.Equal(t, "Re: Hello", ReplySubject("Re: Hello"))
	// single case-sensitive check, no normalization
	assert.Equal(t, "Re: RE: Hello", ReplySubject("RE: Hello"))
	assert.Equal(t, "Re: Re: Re: Hello", ReplySubject("Re: Re: Hello"))
	assert.Equal(t, "Re: ", ReplySubject(""))
}

func TestRecipient(t *testing.T) {
	assert.Equal(t, "jane@example.com", Recipient("Jane Doe <jane@example.com>"))
	assert.Equal(t, "jane@example.com", Recipient("<jane@example.com>"))
	assert.Equal(t, "jane@example.com", Recipient("jane@example.com"))
	assert.Equal(t, "Jane <broken", Recipient("Jane <broken"))
	assert.Equal(t, "", Recipient(""))
}

func TestMessageHeaderOrderAndSeparator(t *testing.T) {
	msg := Message(Reply{
		To:        "jane@example.com",
		Subject:   "Re: Hello",
		InReplyTo: "<orig@mail.example.com>",
		Body:      "Thanks!\n\nSee you soon.",
	})

	want := "To: jane@example.com\r\n" +
		"Subject: Re: Hello\r\n" +
		"In-Reply-To: <orig@mail.example.com>\r\n" +
		"References: <orig@mail.example.com>\r\n" +
		"Content-Type: text/plain; charset=utf-8\r\n" +
		"\r\n" +
		"Thanks!\n\nSee you soon."
	assert.Equal(t, want, msg)

	// exactly one blank-line separator
	assert.Equal(t, 1, strings.Count(msg, "\r\n\r\n"))
}

func TestMessageOmitsThreadingWithoutMessageID(t *testing.T) {
	msg := Message(Reply{To: "a@b.c", Subject: "Re: x", Body: "hi"})
	assert.NotContains(t, msg, "In-Reply-To")
	assert.NotContains(t, msg, "References")
}

func TestMessageHTMLContentType(t *testing.T) {
	msg := Message(Reply{To: "a@b.c", Subject: "Re: x", Body: "<p>hi</p>", HTML: true})
	assert.Contains(t, msg, "Content-Type: text/html; charset=utf-8\r\n")
}

// Decoding the encoded draft payload and parsing it as a mail message must
// reproduce the headers and body exactly.
func TestEncodeRawRoundTrip(t *testing.T) {
	reply := Reply{
		To:        "jane@example.com",
		Subject:   "Re: Quarterly numbers",
		InReplyTo: "<CADsK8=abc@mail.gmail.com>",
		Body:      "Looks good to me.",
	}
	raw := EncodeRaw(Message(reply))

	// unpadded base64url
	assert.NotContains(t, raw, "=")
	assert.NotContains(t, raw, "+")
	assert.NotContains(t, raw, "/")

	decoded, err := base64.RawURLEncoding.DecodeString(raw)
	require.NoError(t, err)

	m, err := message.Read(strings.NewReader(string(decoded)))
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", m.Header.Get("To"))
	assert.Equal(t, "Re: Quarterly numbers", m.Header.Get("Subject"))
	assert.Equal(t, "<CADsK8=abc@mail.gmail.com>", m.Header.Get("In-Reply-To"))
	assert.Equal(t, "<CADsK8=abc@mail.gmail.com>", m.Header.Get("References"))

	body, err := io.ReadAll(m.Body)
	require.NoError(t, err)
	assert.Equal(t, reply.Body, string(body))
}
