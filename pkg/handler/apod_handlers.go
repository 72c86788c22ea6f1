package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/bescka/fac-mcp/pkg/apod"
)

// handleSpacePicture handles the get_space_picture_of_the_day tool.
func (h *Handler) handleSpacePicture(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	date, _ := args["date"].(string)

	maxDaysBack := apod.DefaultMaxDaysBack
	if v, ok := args["maxDaysBack"].(float64); ok && !math.IsNaN(v) && !math.IsInf(v, 0) {
		maxDaysBack = int(v)
	}

	pic, err := h.apod.PictureOfDay(ctx, date, maxDaysBack)
	if err != nil {
		var invalid *apod.InvalidDateFormatError
		if errors.As(err, &invalid) {
			return mcp.NewToolResultError(invalid.Error()), nil
		}
		var exhausted *apod.ExhaustedFallbackError
		if errors.As(err, &exhausted) {
			h.log.Warn().Int("attempts", exhausted.Attempts).Str("last_date", exhausted.LastDate).
				Msg("space picture lookup exhausted fallback window")
			return mcp.NewToolResultError(exhausted.Error()), nil
		}
		h.log.Error().Err(err).Msg("failed to fetch space picture")
		return mcp.NewToolResultError(fmt.Sprintf("Failed to fetch space picture: %v", err)), nil
	}

	h.log.Debug().Str("date_used", pic.DateUsed).Str("title", pic.Title).Msg("fetched space picture")

	out, err := json.MarshalIndent(pic, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}
