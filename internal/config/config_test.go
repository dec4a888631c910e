package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "cityform/internal/errors"
)

func TestInitializeLoadsDefaults(t *testing.T) {
	reset()
	t.Cleanup(reset)

	tmp := t.TempDir()
	require.NoError(t, Initialize(WithWorkingDir(tmp), WithUserConfig(filepath.Join(tmp, "user.yaml"))))

	assert.Empty(t, GetString(KeyGeocoderEndpoint), "endpoint must have no default")
	assert.Equal(t, DefaultDebounce, GetDuration(KeyAutocompleteDebounce))
	assert.Equal(t, DefaultGeocoderTimeout, GetDuration(KeyGeocoderTimeout))
	assert.Equal(t, DefaultUserAgent, GetString(KeyGeocoderUserAgent))
	assert.InDelta(t, 1.0, GetFloat64(KeyGeocoderRequestsPerSecond), 0.0001)
	assert.True(t, GetBool(KeyCursorBlink))
	assert.Equal(t, "rich", GetString(KeyOutputFormat))
	assert.Equal(t, "tokyonight", GetString(KeyTheme))
}

func TestProjectConfigOverridesUser(t *testing.T) {
	reset()
	t.Cleanup(reset)

	tmp := t.TempDir()
	projectDir := filepath.Join(tmp, "repo")
	nested := filepath.Join(projectDir, "sub", "dir")
	mustMkdir(t, nested)
	writeFile(t, filepath.Join(projectDir, ".cityform", "config.yaml"), `
geocoder:
  endpoint: https://project.example/search
autocomplete:
  debounce: 150ms
`)

	userCfg := filepath.Join(tmp, "user.yaml")
	writeFile(t, userCfg, `
geocoder:
  endpoint: https://user.example/search
  user-agent: user-agent/2
theme: nord
`)

	require.NoError(t, Initialize(WithWorkingDir(nested), WithUserConfig(userCfg)))

	assert.Equal(t, "https://project.example/search", GetString(KeyGeocoderEndpoint))
	assert.Equal(t, 150*time.Millisecond, GetDuration(KeyAutocompleteDebounce))
	assert.Equal(t, "user-agent/2", GetString(KeyGeocoderUserAgent), "user value survives when project omits it")
	assert.Equal(t, "nord", GetString(KeyTheme))
}

func TestEnvironmentAndOverridesPrecedence(t *testing.T) {
	reset()
	t.Cleanup(reset)

	tmp := t.TempDir()
	projectCfg := filepath.Join(tmp, ".cityform", "config.yaml")
	writeFile(t, projectCfg, `
geocoder:
  endpoint: https://project.example/search
output:
  format: light
`)

	t.Setenv("CITYFORM_GEOCODER_ENDPOINT", "https://env.example/search")
	t.Setenv("CITYFORM_UI_CURSOR_BLINK", "false")

	require.NoError(t, Initialize(
		WithWorkingDir(tmp),
		WithProjectConfig(projectCfg),
		WithUserConfig(filepath.Join(tmp, "missing.yaml")),
	))

	assert.Equal(t, "https://env.example/search", GetString(KeyGeocoderEndpoint))
	assert.False(t, GetBool(KeyCursorBlink))

	require.NoError(t, ApplyOverrides(map[string]any{
		KeyGeocoderEndpoint: "https://flag.example/search",
		KeyOutputFormat:     "",
	}))

	assert.Equal(t, "https://flag.example/search", GetString(KeyGeocoderEndpoint))
	assert.Equal(t, "light", GetString(KeyOutputFormat), "empty override must not mask config")
}

func TestRequireString(t *testing.T) {
	reset()
	t.Cleanup(reset)

	tmp := t.TempDir()
	require.NoError(t, Initialize(WithWorkingDir(tmp), WithUserConfig(filepath.Join(tmp, "user.yaml"))))

	_, err := RequireString(KeyGeocoderEndpoint)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeConfigurationError))
	assert.Contains(t, err.Error(), "CITYFORM_GEOCODER_ENDPOINT")

	require.NoError(t, ApplyOverrides(map[string]any{KeyGeocoderEndpoint: "  https://example.org/search  "}))
	got, err := RequireString(KeyGeocoderEndpoint)
	require.NoError(t, err)
	assert.Equal(t, "https://example.org/search", got)
}

func TestConfigPathIsDirectory(t *testing.T) {
	reset()
	t.Cleanup(reset)

	tmp := t.TempDir()
	mustMkdir(t, filepath.Join(tmp, ".cityform", "config.yaml"))

	err := Initialize(WithWorkingDir(tmp), WithUserConfig(filepath.Join(tmp, "user.yaml")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")
}

func mustMkdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	mustMkdir(t, filepath.Dir(path))
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write file %s: %v", path, err)
	}
}
