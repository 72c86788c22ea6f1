package handler

import (
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/bescka/fac-mcp/pkg/apod"
)

func getUnreadEmailsTool() mcp.Tool {
	return mcp.NewTool("get_unread_emails",
		mcp.WithDescription("List unread emails in the inbox. Returns sender, subject, "+
			"a short body snippet, and the email and thread IDs needed to reply."),
	)
}

func createDraftReplyTool() mcp.Tool {
	return mcp.NewTool("create_draft_reply",
		mcp.WithDescription("Create a Gmail draft replying to an existing email. The draft "+
			"is threaded onto the original conversation and left unsent for review."),
		mcp.WithString("emailId",
			mcp.Required(),
			mcp.Description("ID of the email being replied to (from get_unread_emails)"),
		),
		mcp.WithString("replyBody",
			mcp.Required(),
			mcp.Description("Body of the reply. Must contain the actual reply text; an "+
				"appended space picture block alone is not a valid reply."),
		),
		mcp.WithString("format",
			mcp.Description("Body format: 'plain' (default) or 'html'"),
			mcp.Enum("plain", "html"),
		),
	)
}

func spacePictureTool() mcp.Tool {
	return mcp.NewTool("get_space_picture_of_the_day",
		mcp.WithDescription("Fetch NASA's Astronomy Picture of the Day as a ready-to-append "+
			"email block with title, explanation, image link, and attribution. If the requested "+
			"day has no picture yet, earlier days are tried automatically."),
		mcp.WithString("date",
			mcp.Description("Date in YYYY-MM-DD form; defaults to the current UTC day"),
		),
		mcp.WithNumber("maxDaysBack",
			mcp.Description("How many earlier days to try when a date has no picture (0-30, "+
				"default "+strconv.Itoa(apod.DefaultMaxDaysBack)+")"),
		),
	)
}
