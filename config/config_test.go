package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsAreValid(t *testing.T) {
	cfg, err := LoadFile("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, DefaultTarget, cfg.Target)
	assert.Equal(t, 22, cfg.Expect.Total)
	assert.Len(t, cfg.Load.Tasks, 3)
}

func TestLoadFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regions.yaml")
	content := `
target: http://localhost:8080
timeout: 2s
locale: ru
expect:
  total: 30
load:
  users: 3
  wait_max: 500ms
  tasks:
    - name: search
      weight: 1
      params:
        q: ново
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.Target)
	assert.Equal(t, 2*time.Second, cfg.Timeout)
	assert.Equal(t, "ru", cfg.Locale)
	assert.Equal(t, 30, cfg.Expect.Total)
	assert.Equal(t, 5, cfg.Expect.Countries, "unset values keep their defaults")
	assert.Equal(t, []string{"ru", "kg", "kz", "cz"}, cfg.Expect.CountryCodes)
	assert.Equal(t, 3, cfg.Load.Users)
	assert.Equal(t, 500*time.Millisecond, cfg.Load.WaitMax)
	assert.Equal(t, time.Second, cfg.Load.WaitMin)
	assert.Equal(t, []Task{{Name: "search", Weight: 1, Params: map[string]string{"q": "ново"}}}, cfg.Load.Tasks)
}

func TestEmptyFileGivesDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestInvalidConfig(t *testing.T) {
	for name, content := range map[string]string{
		"unknown key":      "targte: x",
		"bad locale":       "locale: de",
		"bad duration":     "timeout: soon",
		"inverted waits":   "load: {wait_min: 5s, wait_max: 1s}",
		"zero weight task": "load: {tasks: [{name: x, weight: 0}]}",
		"no country codes": "expect: {country_codes: []}",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(content))
			assert.Error(t, err)
		})
	}
}

func TestMissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
