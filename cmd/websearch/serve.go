package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/xid"
	"github.com/spf13/cobra"
)

var metricsAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the web_search tool over MCP on stdio",
	Args:  cobra.NoArgs,
	RunE:  serveRun,
}

func init() {
	serveCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "address for the Prometheus /metrics endpoint (disabled when empty)")
}

func serveRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger()
	reg := prometheus.NewRegistry()
	tool := buildTool(cfg, &log, reg)
	if tool == nil {
		return errors.New("web search is disabled in configuration")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		metricsServer := &http.Server{Addr: metricsAddr, Handler: mux}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Err(err).Str("addr", metricsAddr).Msg("Metrics server stopped")
			}
		}()
		defer func() { _ = metricsServer.Close() }()
	}

	server := mcp.NewServer(&mcp.Implementation{Name: "websearch", Version: Tag}, nil)
	mcpTool := tool.ToMCPTool()
	server.AddTool(&mcpTool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		input := map[string]any{}
		if req.Params != nil && len(req.Params.Arguments) > 0 {
			if err := json.Unmarshal(req.Params.Arguments, &input); err != nil {
				return nil, fmt.Errorf("invalid arguments: %w", err)
			}
		}
		callLog := log.With().Str("call_id", xid.New().String()).Logger()
		result, err := tool.Execute(callLog.WithContext(ctx), input)
		if err != nil {
			return nil, err
		}
		text := result.Text()
		if len(result.Content) > 0 {
			text = result.Content[0].Text
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: text}},
			IsError: result.IsError(),
		}, nil
	})

	log.Info().Str("tool", mcpTool.Name).Msg("Serving web search over MCP stdio")
	return server.Run(ctx, &mcp.StdioTransport{})
}
