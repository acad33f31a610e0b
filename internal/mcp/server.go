// Package mcp 把趋势查询与创意验证暴露为 MCP 工具
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/iWorld-y/saas_validator/app/trends/pkg/trends"
	"github.com/iWorld-y/saas_validator/app/validator/pkg/model"
)

// Validator 单条创意验证
type Validator interface {
	Validate(ctx context.Context, idea string, opts model.Options) *model.ValidationResult
}

// NewMCPServer 创建 MCP 服务但不启动，测试中直接调用工具处理函数
func NewMCPServer(version string, provider trends.Provider, validator Validator) *server.MCPServer {
	s := server.NewMCPServer(
		"SaaS Idea Validator",
		version,
		server.WithLogging(),
	)

	h := &toolHandler{
		provider:  provider,
		validator: validator,
	}

	s.AddTool(mcp.NewTool("get_trends",
		mcp.WithDescription("Fetch Google Trends interest over time for one or more comma separated keywords."),
		mcp.WithString("keywords", mcp.Required(), mcp.Description("Comma separated keywords, e.g. \"coffee,tea\".")),
		mcp.WithString("date", mcp.Description("Time range such as \"today 12-m\" (default) or \"today 3-m\".")),
	), h.handleGetTrends)

	s.AddTool(mcp.NewTool("validate_idea",
		mcp.WithDescription("Validate a SaaS business idea and return scores, a verdict and recommendations."),
		mcp.WithString("idea", mcp.Required(), mcp.Description("Free text description of the idea.")),
		mcp.WithBoolean("include_trends", mcp.Description("Fetch trend data before the assessment. Defaults to true.")),
		mcp.WithNumber("max_queries", mcp.Description("Maximum number of trend keywords (1-10, default 3).")),
	), h.handleValidateIdea)

	return s
}

// ServeStdio 通过标准输入输出提供 MCP 服务，阻塞直到连接关闭
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}
