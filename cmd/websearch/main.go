package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/beeper/websearch/pkg/agents/tools"
	"github.com/beeper/websearch/pkg/mcpclient"
	"github.com/beeper/websearch/pkg/search"
)

// Information to find out exactly which commit the binary was built from.
// These are filled at build time with the -X linker flag.
var (
	Tag       = "unknown"
	Commit    = "unknown"
	BuildTime = "unknown"
)

var (
	configPath string
	envFile    string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:           "websearch",
	Short:         "Query web search providers through one normalized interface",
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       fmt.Sprintf("%s (commit %s, built %s)", Tag, Commit, BuildTime),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if envFile != "" {
			if err := godotenv.Load(envFile); err != nil {
				return fmt.Errorf("loading %s: %w", envFile, err)
			}
			return nil
		}
		_ = godotenv.Load()
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "configuration file (YAML, JSON or JSON5)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file to load instead of ./.env")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	rootCmd.AddCommand(queryCmd, validateCmd, serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(logLevel)))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

func loadConfig() (*search.Config, error) {
	if configPath == "" {
		return &search.Config{}, nil
	}
	return search.LoadConfigFile(configPath)
}

// buildTool wires the web_search tool for cfg. The Zhipu MCP client is only
// created when that transport is selected.
func buildTool(cfg *search.Config, log *zerolog.Logger, reg prometheus.Registerer) *tools.Tool {
	opts := tools.WebSearchOptions{
		Env:     search.OSEnv{},
		Logger:  log,
		Metrics: search.NewMetrics(reg),
	}
	zhipu := cfg.ProviderSlice(search.ProviderZhipu)
	if search.ResolveZhipuTransport(zhipu) == search.TransportMCP {
		client := mcpclient.New(mcpclient.Server{
			Name:        search.ZhipuMCPServer,
			Endpoint:    search.ResolveZhipuMCPEndpoint(zhipu),
			Token:       search.ResolveZhipuAPIKey(zhipu, opts.Env),
			TimeoutSecs: cfg.TimeoutSecs,
		})
		opts.MCP = client.Call
	}
	return tools.NewWebSearchTool(cfg, opts)
}
