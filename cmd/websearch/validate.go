package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/beeper/websearch/pkg/search"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a configuration file against the web search schema",
	Args:  cobra.MaximumNArgs(1),
	RunE:  validateRun,
}

func validateRun(cmd *cobra.Command, args []string) error {
	path := configPath
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		return fmt.Errorf("no configuration file given")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	errs, err := search.ValidateConfigDocument(data, search.FormatForPath(path))
	if err != nil {
		return err
	}
	if len(errs) == 0 {
		fmt.Fprintf(os.Stdout, "%s: ok\n", path)
		return nil
	}
	for _, e := range errs {
		fmt.Fprintf(os.Stdout, "%s: %s\n", path, e)
	}
	return fmt.Errorf("%d validation error(s)", len(errs))
}
