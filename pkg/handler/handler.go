package handler

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/bescka/fac-mcp/pkg/apod"
	"github.com/bescka/fac-mcp/pkg/config"
	"github.com/bescka/fac-mcp/pkg/gmail"
)

// Handler wires the MCP tools to the Gmail provider and the APOD fetcher.
type Handler struct {
	config   *config.Config
	provider gmail.Provider
	apod     *apod.Fetcher
	log      zerolog.Logger
}

// NewHandler creates a new handler instance. The provider may be nil when
// Gmail credentials are not configured; Gmail tools then return an error
// result instead of registering lazily.
func NewHandler(cfg *config.Config, provider gmail.Provider, fetcher *apod.Fetcher, log zerolog.Logger) *Handler {
	return &Handler{
		config:   cfg,
		provider: provider,
		apod:     fetcher,
		log:      log,
	}
}

// Register adds the tool definitions and their handlers to the server. The
// space picture tool is only exposed when enabled in configuration.
func (h *Handler) Register(s *server.MCPServer) {
	s.AddTool(getUnreadEmailsTool(), h.handleGetUnreadEmails)
	s.AddTool(createDraftReplyTool(), h.handleCreateDraftReply)
	if h.config.EnableSpacePicture {
		s.AddTool(spacePictureTool(), h.handleSpacePicture)
	} else {
		h.log.Info().Msg("space picture tool disabled by configuration")
	}
}

// CallTool invokes a tool by name outside of an MCP session. Used by the
// terminal mode for manual testing.
func (h *Handler) CallTool(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	switch name {
	case "get_unread_emails":
		return h.handleGetUnreadEmails(ctx, req)
	case "create_draft_reply":
		return h.handleCreateDraftReply(ctx, req)
	case "get_space_picture_of_the_day":
		if !h.config.EnableSpacePicture {
			return nil, fmt.Errorf("space picture tool is disabled")
		}
		return h.handleSpacePicture(ctx, req)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}
