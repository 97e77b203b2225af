package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/rxtech-lab/fxgold/internal/config"
	"github.com/rxtech-lab/fxgold/pkg/marketdata"
)

const (
	schemaFileName = "fxgold-config.json"
	sampleFileName = "fxgold.yaml"
)

func schemaAction(_ context.Context, cmd *cli.Command) error {
	schema, err := config.Schema()
	if err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}

	_, err = fmt.Fprintln(cmd.Root().Writer, schema)

	return err
}

// initAction writes the schema and, unless one exists, a sample config
// pointing editors at it.
func initAction(_ context.Context, cmd *cli.Command) error {
	dir := cmd.String("dir")
	out := cmd.Root().Writer

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	schema, err := config.Schema()
	if err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}

	schemaPath := filepath.Join(dir, schemaFileName)
	if err := os.WriteFile(schemaPath, []byte(schema), 0o644); err != nil {
		return fmt.Errorf("failed to write schema: %w", err)
	}

	fmt.Fprintln(out, SuccessStyle.Render("Schema written to "+schemaPath))

	samplePath := filepath.Join(dir, sampleFileName)
	if _, err := os.Stat(samplePath); err == nil {
		fmt.Fprintln(out, HelpStyle.Render("Keeping existing "+samplePath))

		return nil
	}

	sample, err := yaml.Marshal(config.Default())
	if err != nil {
		return fmt.Errorf("failed to marshal sample config: %w", err)
	}

	sample = append([]byte("# yaml-language-server: $schema="+schemaFileName+"\n"), sample...)
	if err := os.WriteFile(samplePath, sample, 0o644); err != nil {
		return fmt.Errorf("failed to write sample config: %w", err)
	}

	fmt.Fprintln(out, SuccessStyle.Render("Sample config written to "+samplePath))

	return nil
}

func providersAction(_ context.Context, cmd *cli.Command) error {
	out := cmd.Root().Writer

	for _, name := range marketdata.GetSupportedProviders() {
		info, err := marketdata.GetProviderInfo(name)
		if err != nil {
			return err
		}

		auth := ""
		if info.RequiresAuth {
			auth = " (API key required)"
		}

		fmt.Fprintln(out, TitleStyle.Render(info.DisplayName)+" "+info.Name+auth)
		fmt.Fprintln(out, HelpStyle.Render("  "+info.Description))

		for _, label := range info.Instruments {
			fmt.Fprintln(out, "  - "+label)
		}
	}

	return nil
}
