// Package config loads the optional YAML run configuration. Values in the file override the
// built-in defaults; command-line flags that are explicitly set override the file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultTarget is the published test environment of the regions service.
const DefaultTarget = "https://regions-test.2gis.com"

type Config struct {
	Target   string        `yaml:"target"`
	Timeout  time.Duration `yaml:"timeout"`
	Parallel int           `yaml:"parallel"`
	Locale   string        `yaml:"locale"`
	Expect   Expectations  `yaml:"expect"`
	Load     Load          `yaml:"load"`
}

// Expectations are the facts about the target's data set that the verify command checks.
type Expectations struct {
	Total        int      `yaml:"total"`
	Countries    int      `yaml:"countries"`
	CountryCodes []string `yaml:"country_codes"`
}

// Load configures the load command.
type Load struct {
	Users       int           `yaml:"users"`
	SpawnRate   float64       `yaml:"spawn_rate"`
	WaitMin     time.Duration `yaml:"wait_min"`
	WaitMax     time.Duration `yaml:"wait_max"`
	Duration    time.Duration `yaml:"duration"`
	MetricsAddr string        `yaml:"metrics_addr"`
	Seed        int64         `yaml:"seed"`
	Tasks       []Task        `yaml:"tasks"`
}

// Task is one weighted request a simulated user can make.
type Task struct {
	Name   string            `yaml:"name"`
	Weight int               `yaml:"weight"`
	Params map[string]string `yaml:"params"`
}

func Default() Config {
	return Config{
		Target:   DefaultTarget,
		Timeout:  10 * time.Second,
		Parallel: 4,
		Locale:   "en",
		Expect: Expectations{
			Total:        22,
			Countries:    5,
			CountryCodes: []string{"ru", "kg", "kz", "cz"},
		},
		Load: Load{
			Users:     10,
			SpawnRate: 1,
			WaitMin:   time.Second,
			WaitMax:   6 * time.Second,
			Duration:  time.Minute,
			Tasks: []Task{
				{Name: "search", Weight: 4, Params: map[string]string{"q": "рск"}},
				{Name: "country", Weight: 2, Params: map[string]string{"country_code": "ru"}},
				{Name: "page", Weight: 1, Params: map[string]string{"page_size": "15"}},
			},
		},
	}
}

// LoadFile reads a configuration file on top of the defaults. An empty path returns the defaults.
func LoadFile(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults. Unknown keys are an error.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var errs []error
	if c.Target == "" {
		errs = append(errs, errors.New("target is required"))
	}
	if c.Timeout <= 0 {
		errs = append(errs, errors.New("timeout must be positive"))
	}
	if c.Parallel < 1 {
		errs = append(errs, errors.New("parallel must be at least 1"))
	}
	if c.Locale != "en" && c.Locale != "ru" {
		errs = append(errs, fmt.Errorf("locale must be en or ru, not %q", c.Locale))
	}
	if c.Expect.Total < 0 || c.Expect.Countries < 0 {
		errs = append(errs, errors.New("expected counts cannot be negative"))
	}
	if len(c.Expect.CountryCodes) == 0 {
		errs = append(errs, errors.New("expect.country_codes cannot be empty"))
	}
	errs = append(errs, c.Load.validate()...)
	return errors.Join(errs...)
}

func (l Load) validate() []error {
	var errs []error
	if l.Users < 1 {
		errs = append(errs, errors.New("load.users must be at least 1"))
	}
	if l.SpawnRate <= 0 {
		errs = append(errs, errors.New("load.spawn_rate must be positive"))
	}
	if l.WaitMin < 0 || l.WaitMax < l.WaitMin {
		errs = append(errs, fmt.Errorf("load wait range [%s, %s] is invalid", l.WaitMin, l.WaitMax))
	}
	if l.Duration <= 0 {
		errs = append(errs, errors.New("load.duration must be positive"))
	}
	if len(l.Tasks) == 0 {
		errs = append(errs, errors.New("load.tasks cannot be empty"))
	}
	for _, t := range l.Tasks {
		if t.Name == "" || t.Weight < 1 {
			errs = append(errs, fmt.Errorf("load task %q needs a name and a weight of at least 1", t.Name))
		}
	}
	return errs
}
