package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/moznion/go-optional"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/rxtech-lab/fxgold/internal/app"
	"github.com/rxtech-lab/fxgold/internal/config"
	"github.com/rxtech-lab/fxgold/internal/logger"
	"github.com/rxtech-lab/fxgold/internal/prompt"
	"github.com/rxtech-lab/fxgold/pkg/chart"
	"github.com/rxtech-lab/fxgold/pkg/errors"
	"github.com/rxtech-lab/fxgold/pkg/marketdata"
	"github.com/rxtech-lab/fxgold/pkg/marketdata/provider"
)

// chartAction loads the config, obtains the range, runs the chart pipeline
// and prints the summary.
func chartAction(ctx context.Context, cmd *cli.Command) error {
	out := cmd.Root().Writer

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, err := logger.NewLogger(cfg.LogLevel)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to create logger", err)
	}

	defer func() { _ = log.Sync() }()

	preset, err := presetRange(cmd)
	if err != nil {
		return err
	}

	dateRange, err := resolveRange(ctx, preset, cmd.Root().Reader, out)
	if err != nil {
		return err
	}

	session, err := newSession(cfg.ProviderType(), provider.Options{
		PolygonAPIKey: cfg.PolygonAPIKey,
		Logger:        log,
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidProvider, "failed to create market data session", err)
	}

	defer func() {
		if err := session.Close(); err != nil {
			log.Warn("Failed to close session", zap.Error(err))
		}
	}()

	runner := app.NewRunner(app.Options{
		Session:      session,
		ProviderType: cfg.ProviderType(),
		Renderer: chart.NewRenderer(chart.Options{
			OutputDir:    cfg.OutputDir,
			DPI:          cfg.Chart.DPI,
			WidthInches:  cfg.Chart.WidthInches,
			HeightInches: cfg.Chart.HeightInches,
			Open:         cfg.OpenViewer,
			Logger:       log,
			Clock:        now,
		}),
		Logger: log,
		Clock:  now,
	})

	bar := progressbar.NewOptions(len(marketdata.DefaultInstruments()),
		progressbar.OptionSetDescription("Fetching"),
		progressbar.OptionSetWriter(cmd.Root().ErrWriter),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish())

	onProgress := marketdata.OnFetchProgress(func(current, total int, label string) {
		if current >= total {
			_ = bar.Finish()

			return
		}

		bar.Describe("Fetching " + label)
		_ = bar.Set(current)
	})

	result, err := runner.Run(ctx, dateRange, app.LifecycleCallbacks{OnFetchProgress: &onProgress})
	if errors.HasCode(err, errors.ErrCodeNoDataFound) {
		fmt.Fprintln(out, WarningStyle.Render("No data was returned for "+result.DateRange.String()+", no chart was written."))
		fmt.Fprint(out, RenderFailures(result.Report))

		return nil
	}

	if err != nil {
		return err
	}

	fmt.Fprint(out, RenderSummary(result))

	return nil
}

// loadConfig reads the config file and environment, then applies flags.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}

	if cmd.IsSet("provider") {
		cfg.Provider = cmd.String("provider")
	}

	if cmd.IsSet("output-dir") {
		cfg.OutputDir = cmd.String("output-dir")
	}

	if cmd.IsSet("log-level") {
		cfg.LogLevel = cmd.String("log-level")
	}

	if cmd.IsSet("open") {
		cfg.OpenViewer = cmd.Bool("open")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// presetRange returns the range given by --start and --end. Both or neither
// must be set.
func presetRange(cmd *cli.Command) (optional.Option[marketdata.DateRange], error) {
	hasStart, hasEnd := cmd.IsSet("start"), cmd.IsSet("end")

	if !hasStart && !hasEnd {
		return optional.None[marketdata.DateRange](), nil
	}

	if hasStart != hasEnd {
		return optional.None[marketdata.DateRange](), errors.New(errors.ErrCodeMissingParameter, "--start and --end must be given together")
	}

	r, err := marketdata.NewDateRange(cmd.Timestamp("start"), marketdata.EndOfMonth(cmd.Timestamp("end")), now())
	if err != nil {
		return optional.None[marketdata.DateRange](), err
	}

	return optional.Some(r), nil
}

// resolveRange uses the preset range or asks the operator.
func resolveRange(ctx context.Context, preset optional.Option[marketdata.DateRange], in io.Reader, out io.Writer) (marketdata.DateRange, error) {
	if preset.IsSome() {
		return preset.Unwrap(), nil
	}

	return choosePrompter(in, out).PromptRange(ctx)
}

// choosePrompter uses the TUI on an interactive terminal and reads lines otherwise.
func choosePrompter(in io.Reader, out io.Writer) prompt.Prompter {
	if f, ok := in.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return prompt.NewTUIPrompter(in, out, now)
	}

	return prompt.NewLinePrompter(in, out, now)
}
