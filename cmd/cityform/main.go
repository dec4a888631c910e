package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"cityform/internal/config"
	"cityform/internal/debug"
	"cityform/internal/form"
	"cityform/internal/geocode"
	"cityform/internal/ui"
	"cityform/internal/ui/theme"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if err := config.Initialize(); err != nil {
		fmt.Fprintf(stderr, "Error initializing config: %v\n", err)
		return 1
	}

	fs := flag.NewFlagSet("cityform", flag.ContinueOnError)
	fs.SetOutput(stderr)
	versionFlag := fs.Bool("version", false, "Print version information and exit")
	debugFlag := fs.Bool("debug", false, "Write a debug log to ~/.cityform/debug.log")
	endpointFlag := fs.String("endpoint", "", "Geocoding search endpoint (or set CITYFORM_GEOCODER_ENDPOINT)")
	themeFlag := fs.String("theme", "", fmt.Sprintf("Color theme (%s)", strings.Join(theme.Available(), ", ")))
	outputFormatFlag := fs.String("output-format", "", "Acknowledgement markdown style (rich, light, plain)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *versionFlag {
		printVersion(stdout)
		return 0
	}

	if err := config.ApplyOverrides(map[string]any{
		config.KeyGeocoderEndpoint: *endpointFlag,
		config.KeyTheme:            *themeFlag,
		config.KeyOutputFormat:     *outputFormatFlag,
	}); err != nil {
		fmt.Fprintf(stderr, "Error applying flags: %v\n", err)
		return 1
	}

	if err := debug.Init(*debugFlag); err != nil {
		fmt.Fprintf(stderr, "Warning: debug log disabled: %v\n", err)
	}
	defer debug.Close()
	if debug.Enabled() {
		if path, err := debug.GetLogPath(); err == nil {
			fmt.Fprintf(stderr, "Debug log: %s\n", path)
		}
	}

	opts, err := loadRuntimeOptions()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if !theme.Set(opts.theme) {
		fmt.Fprintf(stderr, "Warning: unknown theme %q, using %s\n", opts.theme, theme.CurrentName())
	}

	searcher, err := newSearcher(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	debug.L().Info("starting",
		zap.String("endpoint", searcher.Endpoint()),
		zap.Duration("debounce", opts.debounce),
		zap.String("theme", theme.CurrentName()),
	)

	log := debug.L()
	appCfg := ui.Config{
		Searcher:     searcher,
		Submit:       form.LogSubmitter(log),
		Debounce:     opts.debounce,
		OutputFormat: opts.outputFormat,
		CursorBlink:  opts.cursorBlink,
		Version:      Version,
		Logger:       log,
	}

	rec, ok, err := runProgram(appCfg, ui.NewApp, func(app *ui.App) programRunner {
		return tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if ok {
		if err := printRecord(stdout, rec); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}
	return 0
}

type runtimeOptions struct {
	endpoint          string
	timeout           time.Duration
	userAgent         string
	requestsPerSecond float64
	debounce          time.Duration
	cursorBlink       bool
	outputFormat      string
	theme             string
}

func loadRuntimeOptions() (runtimeOptions, error) {
	endpoint, err := config.RequireString(config.KeyGeocoderEndpoint)
	if err != nil {
		return runtimeOptions{}, err
	}
	return runtimeOptions{
		endpoint:          endpoint,
		timeout:           config.GetDuration(config.KeyGeocoderTimeout),
		userAgent:         strings.TrimSpace(config.GetString(config.KeyGeocoderUserAgent)),
		requestsPerSecond: config.GetFloat64(config.KeyGeocoderRequestsPerSecond),
		debounce:          config.GetDuration(config.KeyAutocompleteDebounce),
		cursorBlink:       config.GetBool(config.KeyCursorBlink),
		outputFormat:      strings.TrimSpace(config.GetString(config.KeyOutputFormat)),
		theme:             strings.TrimSpace(config.GetString(config.KeyTheme)),
	}, nil
}

func newSearcher(opts runtimeOptions) (*geocode.Client, error) {
	return geocode.NewClient(opts.endpoint,
		geocode.WithTimeout(opts.timeout),
		geocode.WithUserAgent(opts.userAgent),
		geocode.WithRateLimit(opts.requestsPerSecond, 1),
	)
}

type programRunner interface {
	Run() (tea.Model, error)
}

type programFactory func(*ui.App) programRunner

// runProgram runs the form and returns the last record submitted during the
// session, if any.
func runProgram(cfg ui.Config, builder func(ui.Config) (*ui.App, error), factory programFactory) (form.Record, bool, error) {
	app, err := builder(cfg)
	if err != nil {
		return form.Record{}, false, fmt.Errorf("initialize UI: %w", err)
	}
	if factory == nil {
		return form.Record{}, false, errors.New("program factory is nil")
	}
	prog := factory(app)
	if prog == nil {
		return form.Record{}, false, errors.New("program is nil")
	}
	if _, err := prog.Run(); err != nil {
		return form.Record{}, false, fmt.Errorf("run UI: %w", err)
	}
	rec, ok := app.LastSubmitted()
	return rec, ok, nil
}

func printRecord(w io.Writer, rec form.Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rec)
}
