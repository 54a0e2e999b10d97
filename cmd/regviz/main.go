package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"

	"github.com/wandb/regviz/internal/config"
	"github.com/wandb/regviz/internal/controller"
	"github.com/wandb/regviz/internal/observability"
	"github.com/wandb/regviz/internal/rastercanvas"
	"github.com/wandb/regviz/internal/regclient"
	"github.com/wandb/regviz/internal/regtui"
	"github.com/wandb/regviz/internal/scene"
	"github.com/wandb/regviz/internal/sentry_ext"
	"github.com/wandb/regviz/internal/termchart"
)

const version = "0.1.0"

func main() {
	exitCode := mainWithExitCode()
	os.Exit(exitCode)
}

type flags struct {
	configPath string
	serverURL  string
	timeout    time.Duration
	exportPath string

	// Headless mode.
	output   string
	print    bool
	trainX   string
	trainY   string
	predictX string
}

func parseFlags() flags {
	var f flags

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "regviz - linear regression demo client\n\n")
		fmt.Fprintf(os.Stderr, "Trains a model on a regression service and charts it.\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  regviz [flags]                          interactive terminal UI\n")
		fmt.Fprintf(os.Stderr, "  regviz -x 1,2,3 -y 2,4,6 -o chart.png   render without a UI\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  %-20s Directory containing %s\n", config.EnvConfigDir, config.FileName)
		fmt.Fprintf(os.Stderr, "  %-20s Regression service URL\n", config.EnvServerURL)
		fmt.Fprintf(os.Stderr, "  %-20s Enable debug logging (creates regviz.debug.log)\n", config.EnvDebug)
		fmt.Fprintf(os.Stderr, "  %-20s Sentry DSN for error reports\n", config.EnvSentryDSN)
	}

	flag.StringVar(&f.configPath, "config", "", "path to the config file")
	flag.StringVar(&f.serverURL, "server", "", "regression service URL")
	flag.DurationVar(&f.timeout, "timeout", 0, "timeout of each service call")
	flag.StringVar(&f.exportPath, "export", "", "where ctrl+s saves the chart as PNG")
	flag.StringVar(&f.output, "o", "", "write the chart to this PNG file and exit")
	flag.BoolVar(&f.print, "print", false, "print the chart to stdout and exit")
	flag.StringVar(&f.trainX, "x", "", "training advertising spend, comma-separated")
	flag.StringVar(&f.trainY, "y", "", "training sales revenue, comma-separated")
	flag.StringVar(&f.predictX, "predict", "", "advertising spend to forecast, comma-separated")
	flag.Parse()

	return f
}

func mainWithExitCode() int {
	f := parseFlags()

	cfg, err := config.Loader{Fs: afero.NewOsFs()}.Load(f.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if f.serverURL != "" {
		cfg.Server.URL = f.serverURL
	}
	if f.timeout > 0 {
		cfg.Server.Timeout = f.timeout
	}
	if f.exportPath != "" {
		cfg.Chart.ExportPath = f.exportPath
	}

	sentryClient := sentry_ext.New(sentry_ext.Params{
		DSN:              cfg.SentryDSN,
		Disabled:         cfg.SentryDSN == "",
		AttachStacktrace: true,
		Release:          version,
	})
	defer sentryClient.Flush(2 * time.Second)

	headless := f.output != "" || f.print

	// The UI owns the terminal, so debug logs go to a file.
	var writer io.Writer = io.Discard
	switch {
	case cfg.Debug && !headless:
		logFile, err := os.OpenFile(
			"regviz.debug.log", os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
		if err != nil {
			fmt.Fprintln(os.Stderr, "fatal:", err)
			return 1
		}
		writer = logFile
		defer func() { _ = logFile.Close() }()
	case cfg.Debug:
		writer = os.Stderr
	}

	logger := observability.NewCoreLogger(
		slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})),
		&observability.CoreLoggerParams{
			Tags:   observability.Tags{"app": "regviz"},
			Sentry: sentryClient,
		},
	)

	serverURL, err := cfg.ServerURL()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	service := regclient.NewHTTPService(regclient.HTTPServiceParams{
		BaseURL:           serverURL,
		Logger:            logger,
		RetryMax:          cfg.Server.RetryMax,
		RequestTimeout:    cfg.Server.Timeout,
		RequestsPerSecond: cfg.Server.RequestsPerSecond,
		Burst:             1,
		UserAgent:         "regviz/" + version,
	})

	ctrl := controller.New(controller.Params{
		Service:  service,
		Renderer: scene.NewRenderer(logger),
		Surface:  cfg.Chart.Surface(),
		Logger:   logger,
		Timeout:  cfg.Server.Timeout,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if headless {
		return runHeadless(ctx, ctrl, f)
	}

	model := regtui.New(regtui.Params{
		Controller: ctrl,
		Logger:     logger,
		ExportPath: cfg.Chart.ExportPath,
		Context:    ctx,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		logger.CaptureFatal(fmt.Errorf("regviz: %v", err))
		return 1
	}

	return 0
}

// runHeadless trains, optionally predicts, and writes the chart.
func runHeadless(ctx context.Context, ctrl *controller.Controller, f flags) int {
	result, err := ctrl.Train(ctx, f.trainX, f.trainY)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Fprintln(os.Stderr, result.Summary())

	if f.predictX != "" {
		forecast, err := ctrl.Predict(ctx, f.predictX)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Fprintln(os.Stderr, forecast.Summary())
	}

	frame := ctrl.Frame()

	if f.print {
		fmt.Println(termchart.Render(100, 25, frame))
	}

	if f.output != "" {
		c, err := rastercanvas.Render(frame)
		if err == nil {
			err = c.SavePNG(f.output)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to save chart: %v\n", err)
			return 1
		}
	}

	return 0
}
