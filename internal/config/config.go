// Package config loads the taskmgr session settings from an optional YAML
// file. Every field has a default, so a missing file is not an error.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"
)

// Default values. New() is the only place that applies them.
const (
	DefaultLogFile       = "output.txt"
	DefaultColorScheme   = SchemeTask
	DefaultLoggerMode    = LoggerGoroutine
	DefaultPrompt        = PromptAuto
	DefaultChannelBuffer = 64
	DefaultLogLevel      = "info"
)

// Color schemes for echo and replay.
const (
	// SchemeTask colors each task with its configured color.
	SchemeTask = "task"
	// SchemeChoice asks the user for a color on every start.
	SchemeChoice = "choice"
)

// Logger modes.
const (
	// LoggerGoroutine runs the log writer in-process.
	LoggerGoroutine = "goroutine"
	// LoggerProcess runs the log writer as a child process fed through its stdin.
	LoggerProcess = "process"
)

// Prompt modes.
const (
	PromptAuto = "auto"
	PromptLine = "line"
	PromptForm = "form"
)

// Colors holds the per-task color names (red, green, blue, ...).
type Colors struct {
	Task1 string `yaml:"task1,omitempty" json:"task1,omitempty" jsonschema:"description=color of Task 1 lines"`
	Task2 string `yaml:"task2,omitempty" json:"task2,omitempty" jsonschema:"description=color of Task 2 lines"`
	Task3 string `yaml:"task3,omitempty" json:"task3,omitempty" jsonschema:"description=color of Task 3 lines"`
}

// Config is the top-level configuration loaded from config.yaml.
type Config struct {
	LogFile       string `yaml:"log_file,omitempty" json:"log_file,omitempty" jsonschema:"description=path of the event log"`
	ColorScheme   string `yaml:"color_scheme,omitempty" json:"color_scheme,omitempty" jsonschema:"enum=task,enum=choice"`
	Logger        string `yaml:"logger,omitempty" json:"logger,omitempty" jsonschema:"enum=goroutine,enum=process"`
	Prompt        string `yaml:"prompt,omitempty" json:"prompt,omitempty" jsonschema:"enum=auto,enum=line,enum=form"`
	ChannelBuffer int    `yaml:"channel_buffer,omitempty" json:"channel_buffer,omitempty" jsonschema:"minimum=1"`
	SyncWrites    bool   `yaml:"sync_writes,omitempty" json:"sync_writes,omitempty" jsonschema:"description=fsync the log after every record"`
	LogLevel      string `yaml:"log_level,omitempty" json:"log_level,omitempty" jsonschema:"enum=debug,enum=info,enum=warn,enum=error"`
	Colors        Colors `yaml:"colors,omitempty" json:"colors,omitempty"`
}

// New returns a Config with every default populated.
func New() *Config {
	return &Config{
		LogFile:       DefaultLogFile,
		ColorScheme:   DefaultColorScheme,
		Logger:        DefaultLoggerMode,
		Prompt:        DefaultPrompt,
		ChannelBuffer: DefaultChannelBuffer,
		LogLevel:      DefaultLogLevel,
		Colors: Colors{
			Task1: "red",
			Task2: "green",
			Task3: "blue",
		},
	}
}

// Load reads path (or the default location when path is empty) over the
// defaults. A missing default file yields New(); a missing explicit path is
// an error.
func Load(path string) (*Config, error) {
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return New(), nil
		}
		path = p
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return New(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := New()
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// fillDefaults restores defaults for keys explicitly set to empty values.
func (c *Config) fillDefaults() {
	d := New()
	if strings.TrimSpace(c.LogFile) == "" {
		c.LogFile = d.LogFile
	}
	if c.ColorScheme == "" {
		c.ColorScheme = d.ColorScheme
	}
	if c.Logger == "" {
		c.Logger = d.Logger
	}
	if c.Prompt == "" {
		c.Prompt = d.Prompt
	}
	if c.ChannelBuffer <= 0 {
		c.ChannelBuffer = d.ChannelBuffer
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.Colors.Task1 == "" {
		c.Colors.Task1 = d.Colors.Task1
	}
	if c.Colors.Task2 == "" {
		c.Colors.Task2 = d.Colors.Task2
	}
	if c.Colors.Task3 == "" {
		c.Colors.Task3 = d.Colors.Task3
	}
}

// Validate rejects unknown enum values.
func (c *Config) Validate() error {
	var errs []error
	if !oneOf(c.ColorScheme, SchemeTask, SchemeChoice) {
		errs = append(errs, fmt.Errorf("unknown color_scheme %q", c.ColorScheme))
	}
	if !oneOf(c.Logger, LoggerGoroutine, LoggerProcess) {
		errs = append(errs, fmt.Errorf("unknown logger %q", c.Logger))
	}
	if !oneOf(c.Prompt, PromptAuto, PromptLine, PromptForm) {
		errs = append(errs, fmt.Errorf("unknown prompt %q", c.Prompt))
	}
	if !oneOf(strings.ToLower(c.LogLevel), "debug", "info", "warn", "error") {
		errs = append(errs, fmt.Errorf("unknown log_level %q", c.LogLevel))
	}
	if strings.TrimSpace(c.LogFile) == "" {
		errs = append(errs, errors.New("log_file must not be empty"))
	}
	return errors.Join(errs...)
}

// YAML renders the effective configuration.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

func oneOf(v string, opts ...string) bool {
	for _, o := range opts {
		if v == o {
			return true
		}
	}
	return false
}

// Schema returns the JSON Schema of config.yaml.
func Schema() *jsonschema.Schema {
	r := jsonschema.Reflector{ExpandedStruct: true}
	sch := r.Reflect(&Config{})
	sch.Title = "taskmgr configuration"
	sch.Description = "Session settings read from config.yaml; every key is optional."
	return sch
}

// MarshalSchema indents the schema to JSON bytes.
func MarshalSchema(sch *jsonschema.Schema) ([]byte, error) {
	return json.MarshalIndent(sch, "", "  ")
}
