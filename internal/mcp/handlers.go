package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/iWorld-y/saas_validator/app/trends/pkg/trends"
	"github.com/iWorld-y/saas_validator/app/validator/pkg/model"
)

type toolHandler struct {
	provider  trends.Provider
	validator Validator
}

func (h *toolHandler) handleGetTrends(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	keywords, err := trends.ParseKeywords(request.GetString("keywords", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	series, err := h.provider.Trends(ctx, &trends.Request{
		Keywords: keywords,
		Date:     request.GetString("date", ""),
	})
	if err != nil {
		if errors.Is(err, trends.ErrInvalidArgument) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("trends unavailable: %v", err)), nil
	}

	return jsonResult(series)
}

func (h *toolHandler) handleValidateIdea(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	idea := request.GetString("idea", "")
	if idea == "" {
		return mcp.NewToolResultError("idea is required"), nil
	}

	includeTrends := request.GetBool("include_trends", true)
	res := h.validator.Validate(ctx, idea, model.Options{
		IncludeTrends: &includeTrends,
		MaxQueries:    request.GetInt("max_queries", 0),
	})
	if !res.Success {
		return mcp.NewToolResultError(res.Error), nil
	}

	return jsonResult(res)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(b)), nil
}
