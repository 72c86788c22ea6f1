// Package gmail implements the mail operations behind the MCP tools: listing
// unread summaries and creating threaded reply drafts against the Gmail API.
package gmail

import (
	"context"
	"errors"
	"fmt"

	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
)

const unreadQuery = "in:inbox is:unread"

// Provider is the narrow mail capability the core operations run against.
// *Client implements it; tests substitute fakes.
type Provider interface {
	// ListUnread returns refs for every message matching the unread filter,
	// in the provider's listing order.
	ListUnread(ctx context.Context) ([]MessageRef, error)

	// GetMessage fetches one message with the named headers and its snippet.
	// Returns *NotFoundError when id does not resolve.
	GetMessage(ctx context.Context, id string, headers ...string) (*Message, error)

	// CreateDraft submits a raw base64url-encoded message as a draft on the
	// given thread.
	CreateDraft(ctx context.Context, raw, threadID string) (*Draft, error)
}

// NotFoundError reports a message id that does not resolve to an existing
// message.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("message %s not found", e.ID)
}

// Client is the Gmail-backed Provider.
type Client struct {
	svc  *gmailapi.Service
	user string
}

// NewClient wraps an authenticated Gmail service for the current user.
func NewClient(svc *gmailapi.Service) *Client {
	return &Client{svc: svc, user: "me"}
}

func (c *Client) ListUnread(ctx context.Context) ([]MessageRef, error) {
	res, err := c.svc.Users.Messages.List(c.user).Q(unreadQuery).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list unread messages: %w", err)
	}

	refs := make([]MessageRef, 0, len(res.Messages))
	for _, m := range res.Messages {
		refs = append(refs, MessageRef{ID: m.Id, ThreadID: m.ThreadId})
	}
	return refs, nil
}

func (c *Client) GetMessage(ctx context.Context, id string, headers ...string) (*Message, error) {
	call := c.svc.Users.Messages.Get(c.user, id).Format("metadata")
	if len(headers) > 0 {
		call = call.MetadataHeaders(headers...)
	}

	gm, err := call.Context(ctx).Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == 404 {
			return nil, &NotFoundError{ID: id}
		}
		return nil, fmt.Errorf("failed to get message %s: %w", id, err)
	}

	msg := &Message{
		ID:       gm.Id,
		ThreadID: gm.ThreadId,
		Snippet:  gm.Snippet,
		Headers:  make(map[string]string),
	}
	if gm.Payload != nil {
		for _, h := range gm.Payload.Headers {
			if _, seen := msg.Headers[h.Name]; !seen {
				msg.Headers[h.Name] = h.Value
			}
		}
	}
	return msg, nil
}

func (c *Client) CreateDraft(ctx context.Context, raw, threadID string) (*Draft, error) {
	draft := &gmailapi.Draft{
		Message: &gmailapi.Message{
			Raw:      raw,
			ThreadId: threadID,
		},
	}

	created, err := c.svc.Users.Drafts.Create(c.user, draft).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create draft: %w", err)
	}

	out := &Draft{ID: created.Id, ThreadID: threadID}
	if created.Message != nil && created.Message.ThreadId != "" {
		out.ThreadID = created.Message.ThreadId
	}
	return out, nil
}
