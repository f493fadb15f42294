package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // timezone names resolve without system zoneinfo

	"github.com/alexanderramin/pilot/internal/domain"
	"github.com/alexanderramin/pilot/internal/llm"
	"gopkg.in/yaml.v3"
)

const (
	// Dir is the per-user directory holding config, database and tokens.
	Dir      = ".pilot"
	FileName = "config.yaml"
)

// PomodoroConfig holds the preset durations for both modes.
type PomodoroConfig struct {
	WorkFocusMin   int `yaml:"work_focus_min"`
	WorkBreakMin   int `yaml:"work_break_min"`
	WorkCycles     int `yaml:"work_cycles"`
	StudyFocusMin  int `yaml:"study_focus_min"`
	StudyBreakMin  int `yaml:"study_break_min"`
	StudyCycles    int `yaml:"study_cycles"`
	LongBreakMin   int `yaml:"long_break_min"`
	LongBreakEvery int `yaml:"long_break_every"`
}

type ExportsConfig struct {
	ICSDir string `yaml:"ics_dir"`
	// Default exporter for `pilot plan`: none, ics or google.
	Default string `yaml:"default"`
}

type GoogleCalendarConfig struct {
	CalendarID      string `yaml:"calendar_id"`
	CredentialsFile string `yaml:"credentials_file"`
	TokenFile       string `yaml:"token_file"`
}

type LLMSection struct {
	Enabled    bool   `yaml:"enabled"`
	Endpoint   string `yaml:"endpoint"`
	Model      string `yaml:"model"`
	TimeoutMs  int    `yaml:"timeout_ms"`
	MaxRetries int    `yaml:"max_retries"`
	LogCalls   bool   `yaml:"log_calls"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config models ~/.pilot/config.yaml.
type Config struct {
	Timezone       string               `yaml:"timezone"`
	WorkWindow     string               `yaml:"work_window"`
	LunchRule      bool                 `yaml:"lunch_rule"`
	Pomodoro       PomodoroConfig       `yaml:"pomodoro"`
	Exports        ExportsConfig        `yaml:"exports"`
	GoogleCalendar GoogleCalendarConfig `yaml:"google_calendar"`
	LLM            LLMSection           `yaml:"llm"`
	DBPath         string               `yaml:"db_path"`
	Log            LogConfig            `yaml:"log"`
}

// Default returns the built-in configuration.
func Default() *Config {
	base := llm.DefaultConfig()
	return &Config{
		Timezone:   "Asia/Shanghai",
		WorkWindow: "09:30-18:30",
		LunchRule:  true,
		Pomodoro: PomodoroConfig{
			WorkFocusMin:   domain.WorkFocusMin,
			WorkBreakMin:   domain.WorkBreakMin,
			WorkCycles:     domain.WorkCycles,
			StudyFocusMin:  domain.StudyFocusMin,
			StudyBreakMin:  domain.StudyBreakMin,
			StudyCycles:    domain.StudyCycles,
			LongBreakMin:   domain.LongBreakMin,
			LongBreakEvery: domain.LongBreakEvery,
		},
		Exports: ExportsConfig{
			ICSDir:  "exports",
			Default: string(domain.ExportNone),
		},
		GoogleCalendar: GoogleCalendarConfig{
			CalendarID:      "primary",
			CredentialsFile: filepath.Join("~", Dir, "credentials.json"),
			TokenFile:       filepath.Join("~", Dir, "token.json"),
		},
		LLM: LLMSection{
			Enabled:    base.Enabled,
			Endpoint:   base.Endpoint,
			Model:      base.Model,
			TimeoutMs:  base.TaskTimeout(llm.TaskPlan),
			MaxRetries: base.MaxRetries,
		},
		DBPath: filepath.Join("~", Dir, "pilot.db"),
		Log:    LogConfig{Level: "warn", Format: "text"},
	}
}

// DefaultPath returns $PILOT_CONFIG or ~/.pilot/config.yaml.
func DefaultPath() (string, error) {
	if p := os.Getenv("PILOT_CONFIG"); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, Dir, FileName), nil
}

// Load reads path over the defaults and applies PILOT_* environment
// overrides. A missing file is not an error. An empty path means
// DefaultPath.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as YAML, creating the parent directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Marshal renders the config as YAML with a header comment.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return append([]byte("# pilot configuration\n"), data...), nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PILOT_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("PILOT_TIMEZONE"); v != "" {
		c.Timezone = v
	}
	if v := os.Getenv("PILOT_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("PILOT_LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := os.Getenv("PILOT_ICS_DIR"); v != "" {
		c.Exports.ICSDir = v
	}
	if v := os.Getenv("PILOT_LUNCH_RULE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.LunchRule = b
		}
	}

	l := llm.ApplyEnv(c.llmBase())
	c.LLM = LLMSection{
		Enabled:    l.Enabled,
		Endpoint:   l.Endpoint,
		Model:      l.Model,
		TimeoutMs:  l.TaskTimeout(llm.TaskPlan),
		MaxRetries: l.MaxRetries,
		LogCalls:   l.LogCalls,
	}
}

func (c *Config) llmBase() llm.LLMConfig {
	l := llm.DefaultConfig()
	l.Enabled = c.LLM.Enabled
	l.LogCalls = c.LLM.LogCalls
	if c.LLM.Endpoint != "" {
		l.Endpoint = c.LLM.Endpoint
	}
	if c.LLM.Model != "" {
		l.Model = c.LLM.Model
	}
	if c.LLM.TimeoutMs > 0 {
		l.TimeoutMs = c.LLM.TimeoutMs
		// The configured timeout is the planning timeout.
		tc := l.Tasks[llm.TaskPlan]
		tc.TimeoutMs = 0
		l.Tasks[llm.TaskPlan] = tc
	}
	if c.LLM.MaxRetries >= 0 {
		l.MaxRetries = c.LLM.MaxRetries
	}
	return l
}

// LLMConfig returns the client configuration for the llm package.
func (c *Config) LLMConfig() llm.LLMConfig {
	return c.llmBase()
}

// Validate rejects settings the planner cannot run with.
func (c *Config) Validate() error {
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("unknown timezone %q: %w", c.Timezone, err)
	}
	window, err := domain.ParseInterval(c.WorkWindow)
	if err != nil {
		return fmt.Errorf("work_window: %w", err)
	}
	if !window.Valid() {
		return fmt.Errorf("work_window %s must start before it ends", window)
	}
	for _, spec := range []domain.CycleSpec{c.CycleSpec(domain.ModeWork, 0), c.CycleSpec(domain.ModeStudy, 0)} {
		if err := spec.Validate(); err != nil {
			return fmt.Errorf("pomodoro: %w", err)
		}
		if spec.CycleCount < 1 {
			return fmt.Errorf("pomodoro: default cycle count must be at least 1")
		}
	}
	if !domain.ValidExportKinds[c.Exports.Default] {
		return fmt.Errorf("exports.default must be one of none, ics, google; got %q", c.Exports.Default)
	}
	if c.LLM.MaxRetries < 0 {
		return fmt.Errorf("llm.max_retries must not be negative")
	}
	return nil
}

// Location returns the configured time zone. Validate guarantees it loads.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Window returns the default work window.
func (c *Config) Window() domain.Interval {
	iv, err := domain.ParseInterval(c.WorkWindow)
	if err != nil {
		return domain.Interval{Start: domain.NewClock(9, 30), End: domain.NewClock(18, 30)}
	}
	return iv
}

// CycleSpec builds the spec for a run in mode. cycles <= 0 selects the
// configured default count for that mode.
func (c *Config) CycleSpec(mode domain.Mode, cycles int) domain.CycleSpec {
	p := c.Pomodoro
	spec := domain.CycleSpec{
		LongBreakMinutes:      p.LongBreakMin,
		LongBreakEveryNCycles: p.LongBreakEvery,
	}
	switch mode {
	case domain.ModeStudy:
		spec.FocusMinutes, spec.BreakMinutes, spec.CycleCount = p.StudyFocusMin, p.StudyBreakMin, p.StudyCycles
	default:
		spec.FocusMinutes, spec.BreakMinutes, spec.CycleCount = p.WorkFocusMin, p.WorkBreakMin, p.WorkCycles
	}
	if cycles > 0 {
		spec.CycleCount = cycles
	}
	return spec
}

// ExpandPath resolves a leading "~" to the user's home directory.
func ExpandPath(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") && !strings.HasPrefix(p, `~\`) {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[1:])
}
