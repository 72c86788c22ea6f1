package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/bescka/fac-mcp/pkg/gmail"
	"github.com/bescka/fac-mcp/pkg/guard"
)

// handleGetUnreadEmails handles the get_unread_emails tool.
func (h *Handler) handleGetUnreadEmails(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.provider == nil {
		return mcp.NewToolResultError("Gmail is not configured; set GMAIL_CLIENT_ID, GMAIL_CLIENT_SECRET and run with -login"), nil
	}

	summaries, err := gmail.ListUnread(ctx, h.provider)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list unread emails")
		return mcp.NewToolResultError(fmt.Sprintf("Failed to fetch unread emails: %v", err)), nil
	}

	h.log.Debug().Int("count", len(summaries)).Msg("fetched unread emails")

	out, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode results: %v", err)), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

// handleCreateDraftReply handles the create_draft_reply tool.
func (h *Handler) handleCreateDraftReply(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.provider == nil {
		return mcp.NewToolResultError("Gmail is not configured; set GMAIL_CLIENT_ID, GMAIL_CLIENT_SECRET and run with -login"), nil
	}

	emailID, err := req.RequireString("emailId")
	if err != nil {
		return mcp.NewToolResultError("emailId parameter is required and must be a string"), nil
	}
	replyBody, err := req.RequireString("replyBody")
	if err != nil {
		return mcp.NewToolResultError("replyBody parameter is required and must be a string"), nil
	}

	format := guard.FormatPlain
	if v, ok := req.GetArguments()["format"].(string); ok && v != "" {
		if v != guard.FormatPlain && v != guard.FormatHTML {
			return mcp.NewToolResultError(fmt.Sprintf("invalid format %q: must be 'plain' or 'html'", v)), nil
		}
		format = v
	}

	// Refuse drafts whose only content is the appended space picture block.
	if err := guard.CheckReplyBody(replyBody, format); err != nil {
		var missing *guard.MissingReplyBodyError
		if errors.As(err, &missing) {
			return mcp.NewToolResultError(missing.Error()), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("Invalid reply body: %v", err)), nil
	}

	draft, err := gmail.CreateReplyDraft(ctx, h.provider, emailID, replyBody, format == guard.FormatHTML)
	if err != nil {
		var notFound *gmail.NotFoundError
		if errors.As(err, &notFound) {
			return mcp.NewToolResultError(fmt.Sprintf("Email %s not found", notFound.ID)), nil
		}
		h.log.Error().Err(err).Str("email_id", emailID).Msg("failed to create draft reply")
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create draft: %v", err)), nil
	}

	h.log.Info().Str("draft_id", draft.ID).Str("thread_id", draft.ThreadID).Msg("draft reply created")

	result := map[string]any{
		"success":  true,
		"draftId":  draft.ID,
		"threadId": draft.ThreadID,
		"message":  "Draft reply created; it will not be sent until you send it yourself.",
	}
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}
