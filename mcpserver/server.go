// Package mcpserver exposes the chart engine to AI agents as MCP tools.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	log "github.com/sirupsen/logrus"

	"github.com/spektr-org/promptchart/engine"
	"github.com/spektr-org/promptchart/resolver"
)

// Server is the MCP server for PromptChart.
type Server struct {
	mcp      *server.MCPServer
	resolver *resolver.Resolver
	tools    []string
}

// New creates the MCP server. prompt_chart is only offered when the
// resolver has an intent generator; agents can always build intents
// themselves and call render_chart.
func New(r *resolver.Resolver, version string) *Server {
	s := &Server{
		resolver: r,
		mcp: server.NewMCPServer(
			"promptchart",
			version,
			server.WithToolCapabilities(true),
		),
	}

	s.addTool(mcp.NewTool("list_datasets",
		mcp.WithDescription("List every dataset with its metrics, dimensions and sample dimension values."),
	), s.handleListDatasets)

	s.addTool(mcp.NewTool("render_chart",
		mcp.WithDescription("Execute a chart intent and return Chart.js-ready data. Intent shape: "+
			`{"dataset":"sales","metrics":[{"field":"revenue","aggregation":"sum"}],`+
			`"dimensions":[{"field":"region"}],"filters":[{"field":"year","operator":"eq","value":2024}],"chartType":"bar"}`),
		mcp.WithString("intent", mcp.Description("Chart intent as a JSON object"), mcp.Required()),
	), s.handleRenderChart)

	if r.HasGenerator() {
		s.addTool(mcp.NewTool("prompt_chart",
			mcp.WithDescription("Turn a natural language request into a chart, e.g. \"revenue by region for 2024 as a pie\"."),
			mcp.WithString("prompt", mcp.Description("What to chart"), mcp.Required()),
			mcp.WithString("context", mcp.Description("Optional JSON object of extra context for the request")),
		), s.handlePromptChart)
	}
	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	log.Printf("🔧 PromptChart MCP: serving %d tools on stdio", len(s.tools))
	return server.ServeStdio(s.mcp)
}

// ToolNames lists the registered tools in registration order.
func (s *Server) ToolNames() []string {
	return append([]string(nil), s.tools...)
}

func (s *Server) addTool(tool mcp.Tool, handler server.ToolHandlerFunc) {
	s.mcp.AddTool(tool, handler)
	s.tools = append(s.tools, tool.Name)
}

// ── Handlers ───────────────────────────────────────────────

func (s *Server) handleListDatasets(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.resolver.IntentContext().Datasets)
}

func (s *Server) handleRenderChart(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var intent engine.ChartIntent
	if err := decodeArg(req.GetArguments()["intent"], &intent); err != nil {
		return nil, fmt.Errorf("intent: %w", err)
	}
	resp, err := s.resolver.ResolveIntent(intent, "")
	if err != nil {
		return nil, err
	}
	return jsonResult(resp)
}

func (s *Server) handlePromptChart(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	prompt, _ := args["prompt"].(string)

	var extra map[string]any
	if raw, ok := args["context"]; ok && raw != "" {
		if err := decodeArg(raw, &extra); err != nil {
			return nil, fmt.Errorf("context: %w", err)
		}
	}

	resp, err := s.resolver.Resolve(ctx, resolver.Request{Prompt: prompt, Context: extra})
	if err != nil {
		return nil, err
	}
	return jsonResult(resp)
}

// ── Helpers ────────────────────────────────────────────────

// decodeArg accepts either a JSON string or an already-decoded object.
func decodeArg(raw any, target any) error {
	var data []byte
	switch v := raw.(type) {
	case nil:
		return fmt.Errorf("is required")
	case string:
		if v == "" {
			return fmt.Errorf("is required")
		}
		data = []byte(v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		data = b
	}
	return json.Unmarshal(data, target)
}

// jsonResult serializes v to JSON and wraps it in a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: string(data)},
		},
	}, nil
}
