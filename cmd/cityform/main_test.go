package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"cityform/internal/config"
	"cityform/internal/debug"
	apperrors "cityform/internal/errors"
	"cityform/internal/form"
	"cityform/internal/geocode"
	"cityform/internal/ui"
)

type fakeProgram struct {
	run func() error
}

func (p fakeProgram) Run() (tea.Model, error) {
	if p.run == nil {
		return nil, nil
	}
	return nil, p.run()
}

func testConfig() ui.Config {
	return ui.Config{
		Searcher: geocode.SearcherFunc(func(context.Context, string) ([]string, error) {
			return nil, nil
		}),
		Submit:       func(form.Record) {},
		OutputFormat: "plain",
	}
}

func TestRunVersion(t *testing.T) {
	defer config.ResetForTesting(t)()
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-version"}, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "cityform version") {
		t.Fatalf("unexpected version output %q", stdout.String())
	}
}

func TestRunRejectsUnknownFlag(t *testing.T) {
	defer config.ResetForTesting(t)()
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-bogus"}, &stdout, &stderr); code != 2 {
		t.Fatalf("expected exit 2, got %d", code)
	}
}

func TestRunRequiresEndpoint(t *testing.T) {
	defer config.ResetForTesting(t)()
	t.Setenv("CITYFORM_GEOCODER_ENDPOINT", "")
	var stdout, stderr bytes.Buffer
	if code := run(nil, &stdout, &stderr); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "CITYFORM_GEOCODER_ENDPOINT") {
		t.Fatalf("expected hint about the env key, got %q", stderr.String())
	}
}

func TestRunDebugReportsLogPath(t *testing.T) {
	defer config.ResetForTesting(t)()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("CITYFORM_GEOCODER_ENDPOINT", "")

	var stdout, stderr bytes.Buffer
	run([]string{"-debug"}, &stdout, &stderr)

	want := "Debug log: " + filepath.Join(home, debug.LogDirName, debug.LogFileName)
	if !strings.Contains(stderr.String(), want) {
		t.Fatalf("expected %q on stderr, got %q", want, stderr.String())
	}
	if debug.Enabled() {
		t.Fatal("expected the debug log closed when run returns")
	}
}

func TestLoadRuntimeOptions(t *testing.T) {
	defer config.ResetForTesting(t)()
	if err := config.ApplyOverrides(map[string]any{
		config.KeyGeocoderEndpoint: "https://geo.example.test/search",
		config.KeyTheme:            "nord",
	}); err != nil {
		t.Fatalf("ApplyOverrides: %v", err)
	}

	opts, err := loadRuntimeOptions()
	if err != nil {
		t.Fatalf("loadRuntimeOptions: %v", err)
	}
	if opts.endpoint != "https://geo.example.test/search" {
		t.Errorf("unexpected endpoint %q", opts.endpoint)
	}
	if opts.debounce != 300*time.Millisecond {
		t.Errorf("expected 300ms debounce, got %v", opts.debounce)
	}
	if opts.timeout != 5*time.Second {
		t.Errorf("expected 5s timeout, got %v", opts.timeout)
	}
	if opts.theme != "nord" {
		t.Errorf("expected nord theme, got %q", opts.theme)
	}
	if opts.outputFormat != "rich" || !opts.cursorBlink {
		t.Errorf("unexpected ui defaults %+v", opts)
	}

	client, err := newSearcher(opts)
	if err != nil {
		t.Fatalf("newSearcher: %v", err)
	}
	if client.Endpoint() != opts.endpoint {
		t.Errorf("expected client endpoint %q, got %q", opts.endpoint, client.Endpoint())
	}
}

func TestNewSearcherRejectsBadEndpoint(t *testing.T) {
	_, err := newSearcher(runtimeOptions{endpoint: "not a url"})
	if !apperrors.IsCode(err, apperrors.CodeConfigurationError) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestRunProgram(t *testing.T) {
	t.Run("builderError", func(t *testing.T) {
		_, _, err := runProgram(ui.Config{}, ui.NewApp, func(*ui.App) programRunner {
			t.Fatal("factory must not run when the builder fails")
			return nil
		})
		if err == nil || !strings.Contains(err.Error(), "initialize UI") {
			t.Fatalf("expected wrapped builder error, got %v", err)
		}
	})

	t.Run("nilFactory", func(t *testing.T) {
		if _, _, err := runProgram(testConfig(), ui.NewApp, nil); err == nil {
			t.Fatal("expected error for nil factory")
		}
	})

	t.Run("runError", func(t *testing.T) {
		boom := errors.New("boom")
		_, _, err := runProgram(testConfig(), ui.NewApp, func(*ui.App) programRunner {
			return fakeProgram{run: func() error { return boom }}
		})
		if !errors.Is(err, boom) {
			t.Fatalf("expected run error, got %v", err)
		}
	})

	t.Run("noSubmission", func(t *testing.T) {
		_, ok, err := runProgram(testConfig(), ui.NewApp, func(*ui.App) programRunner {
			return fakeProgram{}
		})
		if err != nil || ok {
			t.Fatalf("expected no record, got ok=%v err=%v", ok, err)
		}
	})

	t.Run("returnsLastSubmission", func(t *testing.T) {
		rec, ok, err := runProgram(testConfig(), ui.NewApp, func(app *ui.App) programRunner {
			return fakeProgram{run: func() error {
				app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Ada")})
				app.Update(tea.KeyMsg{Type: tea.KeyTab})
				app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ada@example.com")})
				app.Update(ui.SuggestionSelectedMsg{Value: "Lyon, France"})
				app.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
				return nil
			}}
		})
		if err != nil || !ok {
			t.Fatalf("expected a record, got ok=%v err=%v", ok, err)
		}
		want := form.Record{Name: "Ada", Email: "ada@example.com", City: "Lyon, France"}
		if rec != want {
			t.Fatalf("expected %+v, got %+v", want, rec)
		}
	})
}

func TestPrintRecord(t *testing.T) {
	var buf bytes.Buffer
	if err := printRecord(&buf, form.Record{Name: "Ada", Email: "ada@example.com", City: "Lyon"}); err != nil {
		t.Fatalf("printRecord: %v", err)
	}
	want := "{\n  \"name\": \"Ada\",\n  \"email\": \"ada@example.com\",\n  \"city\": \"Lyon\"\n}\n"
	if buf.String() != want {
		t.Fatalf("expected %q, got %q", want, buf.String())
	}
}
