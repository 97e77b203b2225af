package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/rxtech-lab/fxgold/internal/version"
	"github.com/rxtech-lab/fxgold/pkg/marketdata"
	"github.com/rxtech-lab/fxgold/pkg/marketdata/provider"
)

var (
	// newSession and now are replaced in tests.
	newSession = provider.NewSession
	now        = time.Now
)

func newCommand() *cli.Command {
	return &cli.Command{
		Name:    "fxgold",
		Usage:   "Chart CNY exchange rates against the gold price",
		Version: version.GetVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file",
			},
			&cli.StringFlag{
				Name:    "provider",
				Aliases: []string{"p"},
				Usage:   fmt.Sprintf("Market data provider (%s, %s)", provider.ProviderPolygon, provider.ProviderBinance),
			},
			&cli.StringFlag{
				Name:    "output-dir",
				Aliases: []string{"o"},
				Usage:   "Directory the chart is written to",
			},
			&cli.TimestampFlag{
				Name:    "start",
				Aliases: []string{"s"},
				Usage:   "First month in `YYYY-MM` format. Prompts when omitted.",
				Config: cli.TimestampConfig{
					Layouts: []string{marketdata.MonthLayout},
				},
			},
			&cli.TimestampFlag{
				Name:    "end",
				Aliases: []string{"e"},
				Usage:   "Last month in `YYYY-MM` format, clamped to today. Prompts when omitted.",
				Config: cli.TimestampConfig{
					Layouts: []string{marketdata.MonthLayout},
				},
			},
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Open the chart in the system image viewer",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
			},
		},
		Action: chartAction,
		Commands: []*cli.Command{
			{
				Name:   "schema",
				Usage:  "Print the JSON schema of the config file",
				Action: schemaAction,
			},
			{
				Name:  "init",
				Usage: "Write the config schema and a sample config file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "dir",
						Usage: "Directory to write into",
						Value: ".",
					},
				},
				Action: initAction,
			},
			{
				Name:   "providers",
				Usage:  "List the market data providers and the instruments they serve",
				Action: providersAction,
			},
			{
				Name:  "version",
				Usage: "Print the version",
				Action: func(_ context.Context, cmd *cli.Command) error {
					_, err := fmt.Fprintln(cmd.Root().Writer, version.GetVersion())

					return err
				},
			},
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCommand().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: "+err.Error()))
		stop()
		os.Exit(1)
	}
}
