package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/bescka/fac-mcp/pkg/apod"
	"github.com/bescka/fac-mcp/pkg/auth"
	"github.com/bescka/fac-mcp/pkg/config"
	"github.com/bescka/fac-mcp/pkg/gmail"
	"github.com/bescka/fac-mcp/pkg/handler"
)

const (
	serverName    = "gmail-mcp-server"
	serverVersion = "1.0.0"
)

func main() {
	// Parse command line flags
	var (
		login     = flag.Bool("login", false, "Run the Google OAuth2 consent flow and store the refresh token")
		unread    = flag.Bool("unread", false, "List unread emails and exit")
		picture   = flag.String("picture", "", "Fetch the space picture for a date (YYYY-MM-DD, or 'today') and exit")
		toolName  = flag.String("tool", "", "Call a specific tool")
		toolArgs  = flag.String("args", "{}", "Tool arguments as JSON")
		debugMode = flag.Bool("debug", false, "Enable debug logging")
	)
	flag.Parse()

	log := newLogger(*debugMode)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	ctx := context.Background()

	if *login {
		if err := auth.Login(ctx, cfg); err != nil {
			log.Fatal().Err(err).Msg("login failed")
		}
		return
	}

	h, err := buildHandler(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize")
	}

	// Terminal mode operations
	if *unread || *picture != "" || *toolName != "" {
		if err := runTerminalMode(ctx, h, *unread, *picture, *toolName, *toolArgs); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// MCP server mode (default)
	if err := runMCPServer(h, log); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// newLogger writes structured logs to stderr; stdout belongs to the MCP
// stdio transport.
func newLogger(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
}

// buildHandler assembles the tool handler. Gmail tools are wired only when
// credentials are configured; the space picture tool works without them.
func buildHandler(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*handler.Handler, error) {
	var provider gmail.Provider
	if err := cfg.ValidateForGmail(); err == nil {
		svc, err := auth.NewService(ctx, cfg)
		if err != nil {
			return nil, err
		}
		provider = gmail.NewClient(svc)
	} else {
		log.Warn().Msg("gmail credentials not configured; email tools will report an error until -login is run")
	}

	fetcher := apod.New(&http.Client{Timeout: cfg.Timeout}, cfg.APODBaseURL, cfg.NASAAPIKey)

	return handler.NewHandler(cfg, provider, fetcher, log), nil
}

// runTerminalMode executes one tool call from the command line for testing.
func runTerminalMode(ctx context.Context, h *handler.Handler, unread bool, picture, toolName, toolArgs string) error {
	switch {
	case unread:
		return printToolResult(h.CallTool(ctx, "get_unread_emails", map[string]any{}))

	case picture != "":
		args := map[string]any{}
		if picture != "today" {
			args["date"] = picture
		}
		return printToolResult(h.CallTool(ctx, "get_space_picture_of_the_day", args))

	case toolName != "":
		var args map[string]any
		if err := json.Unmarshal([]byte(toolArgs), &args); err != nil {
			return fmt.Errorf("failed to parse tool arguments: %w", err)
		}
		return printToolResult(h.CallTool(ctx, toolName, args))
	}
	return nil
}

func printToolResult(res *mcp.CallToolResult, err error) error {
	if err != nil {
		return err
	}
	for _, c := range res.Content {
		if tc, ok := mcp.AsTextContent(c); ok {
			fmt.Println(tc.Text)
		}
	}
	if res.IsError {
		os.Exit(1)
	}
	return nil
}

// runMCPServer serves the tools over stdio.
func runMCPServer(h *handler.Handler, log zerolog.Logger) error {
	s := server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(false),
	)
	h.Register(s)

	log.Info().Str("name", serverName).Str("version", serverVersion).Msg("starting MCP server on stdio")
	return server.ServeStdio(s)
}
