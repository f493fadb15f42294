package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/pilot/internal/domain"
	"github.com/alexanderramin/pilot/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "Asia/Shanghai", cfg.Timezone)
	assert.Equal(t, "09:30-18:30", cfg.WorkWindow)
	assert.True(t, cfg.LunchRule)
	assert.Equal(t, domain.WorkPreset(), cfg.CycleSpec(domain.ModeWork, 0))
	assert.Equal(t, domain.StudyPreset(0), cfg.CycleSpec(domain.ModeStudy, 0))
	assert.Equal(t, "primary", cfg.GoogleCalendar.CalendarID)
	assert.False(t, cfg.LLM.Enabled)
	assert.Equal(t, 60000, cfg.LLM.TimeoutMs)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
timezone: Europe/Berlin
work_window: "08:00-16:00"
lunch_rule: false
pomodoro:
  study_focus_min: 30
  study_cycles: 6
exports:
  ics_dir: /tmp/ics
  default: ics
llm:
  enabled: true
  model: qwen2.5
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Europe/Berlin", cfg.Location().String())
	assert.Equal(t, "08:00", cfg.Window().Start.String())
	assert.False(t, cfg.LunchRule)
	study := cfg.CycleSpec(domain.ModeStudy, 0)
	assert.Equal(t, 30, study.FocusMinutes)
	assert.Equal(t, 15, study.BreakMinutes, "unset keys keep defaults")
	assert.Equal(t, 6, study.CycleCount)
	assert.Equal(t, "/tmp/ics", cfg.Exports.ICSDir)
	assert.Equal(t, "ics", cfg.Exports.Default)

	lc := cfg.LLMConfig()
	assert.True(t, lc.Enabled)
	assert.Equal(t, "qwen2.5", lc.Model)
	assert.Equal(t, 60000, lc.TaskTimeout(llm.TaskPlan))
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PILOT_DB", "/tmp/pilot-test.db")
	t.Setenv("PILOT_TIMEZONE", "UTC")
	t.Setenv("PILOT_LOG_LEVEL", "debug")
	t.Setenv("PILOT_LLM_ENABLED", "1")
	t.Setenv("PILOT_LLM_TIMEOUT_MS", "5000")
	t.Setenv("PILOT_LUNCH_RULE", "false")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "/tmp/pilot-test.db", cfg.DBPath)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.LLM.Enabled)
	assert.Equal(t, 5000, cfg.LLM.TimeoutMs)
	assert.Equal(t, 5000, cfg.LLMConfig().TaskTimeout(llm.TaskPlan))
	assert.False(t, cfg.LunchRule)
}

func TestLoad_ConfigPathFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("work_window: \"10:00-17:00\"\n"), 0o600))
	t.Setenv("PILOT_CONFIG", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "10:00-17:00", cfg.WorkWindow)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"bad yaml":     "timezone: [",
		"bad timezone": "timezone: Mars/Olympus",
		"bad window":   "work_window: \"18:00-09:00\"",
		"zero focus":   "pomodoro:\n  work_focus_min: 0",
		"zero cycles":  "pomodoro:\n  study_cycles: 0",
		"bad exporter": "exports:\n  default: outlook",
		"neg retries":  "llm:\n  max_retries: -1",
		"negative brk": "pomodoro:\n  work_break_min: -5",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Pomodoro.WorkCycles = 8
	cfg.GoogleCalendar.CalendarID = "team@example.com"

	require.NoError(t, cfg.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# pilot configuration")
	assert.Contains(t, string(data), "work_cycles: 8")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, loaded.CycleSpec(domain.ModeWork, 0).CycleCount)
	assert.Equal(t, "team@example.com", loaded.GoogleCalendar.CalendarID)
}

func TestCycleSpec_ExplicitCycles(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 3, cfg.CycleSpec(domain.ModeWork, 3).CycleCount)
	assert.Equal(t, 7, cfg.CycleSpec(domain.ModeStudy, 7).CycleCount)
	assert.Equal(t, 45, cfg.CycleSpec(domain.ModeStudy, 7).FocusMinutes)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".pilot", "pilot.db"), ExpandPath("~/.pilot/pilot.db"))
	assert.Equal(t, "/var/pilot.db", ExpandPath("/var/pilot.db"))
	assert.Equal(t, "~other/x", ExpandPath("~other/x"))
}
