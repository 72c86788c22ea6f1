package gmail

import (
	"context"

	"github.com/bescka/fac-mcp/pkg/compose"
)

// CreateReplyDraft fetches the original message, composes a threaded reply to
// its sender, and submits it as a draft on the original thread. The original's
// From, Subject, and Message-ID headers all default to "" when absent; a
// missing Message-ID just drops the threading headers. A *NotFoundError from
// the provider passes through untouched. Every call creates a new draft.
func CreateReplyDraft(ctx context.Context, p Provider, emailID, replyBody string, html bool) (*Draft, error) {
	orig, err := p.GetMessage(ctx, emailID, "From", "Subject", "Message-ID")
	if err != nil {
		return nil, err
	}

	raw := compose.EncodeRaw(compose.Message(compose.Reply{
		To:        compose.Recipient(orig.Header("From")),
		Subject:   compose.ReplySubject(orig.Header("Subject")),
		InReplyTo: orig.Header("Message-ID"),
		Body:      replyBody,
		HTML:      html,
	}))

	return p.CreateDraft(ctx, raw, orig.ThreadID)
}
