package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/xid"
	"github.com/spf13/cobra"
)

var (
	queryCount      int
	queryFreshness  string
	queryProvider   string
	queryCountry    string
	querySearchLang string
	queryUILang     string
)

var queryCmd = &cobra.Command{
	Use:   "query <text>",
	Short: "Run one web search and print the result envelope as JSON",
	Args:  cobra.MinimumNArgs(1),
	RunE:  queryRun,
}

func init() {
	queryCmd.Flags().IntVarP(&queryCount, "count", "n", 0, "number of results (1-10)")
	queryCmd.Flags().StringVarP(&queryFreshness, "freshness", "f", "", "pd, pw, pm, py or YYYY-MM-DDtoYYYY-MM-DD")
	queryCmd.Flags().StringVarP(&queryProvider, "provider", "p", "", "override the configured provider")
	queryCmd.Flags().StringVar(&queryCountry, "country", "", "2-letter country code")
	queryCmd.Flags().StringVar(&querySearchLang, "search-lang", "", "search language code")
	queryCmd.Flags().StringVar(&queryUILang, "ui-lang", "", "UI language code")
}

func queryRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if queryProvider != "" {
		cfg.Provider = queryProvider
	}
	base := newLogger()
	tool := buildTool(cfg, &base, prometheus.NewRegistry())
	if tool == nil {
		return errors.New("web search is disabled in configuration")
	}

	callID := xid.New().String()
	log := base.With().Str("call_id", callID).Logger()
	ctx := log.WithContext(cmd.Context())

	input := map[string]any{"query": strings.Join(args, " ")}
	if queryCount > 0 {
		input["count"] = queryCount
	}
	for key, value := range map[string]string{
		"freshness":   queryFreshness,
		"country":     queryCountry,
		"search_lang": querySearchLang,
		"ui_lang":     queryUILang,
	} {
		if value != "" {
			input[key] = value
		}
	}

	result, err := tool.Execute(ctx, input)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	if result.IsError() {
		return errors.New(result.Text())
	}
	return nil
}
