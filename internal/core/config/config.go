package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const DefaultSummaryTemplate = `Hike summary, started {{started}}
Distance   {{distance}} km
Time       {{duration}}
Elevation  +{{elevation}} m{{#has_max_altitude}} (max {{max_altitude}} m){{/has_max_altitude}}
Avg speed  {{avg_speed}} km/h
Calories   {{calories}} kcal
Points     {{points}}{{#has_heart_rate}}
Heart rate {{heart_rate}} bpm{{/has_heart_rate}}`

type Config struct {
	WeightKg        float64
	MET             float64
	HRDevice        string // Device path for heart rate readings (optional)
	HRBaseline      int
	ReplayRate      float64
	BatteryPath     string // sysfs power_supply root override (optional)
	Creator         string
	StartLat        float64
	StartLon        float64
	StartAlt        float64
	SummaryTemplate string
	Dir             string
}

type tomlConfig struct {
	WeightKg    *float64 `toml:"weight_kg"`
	MET         *float64 `toml:"met"`
	HRDevice    string   `toml:"hr_device"`
	HRBaseline  *int     `toml:"hr_baseline"`
	ReplayRate  *float64 `toml:"replay_rate"`
	BatteryPath string   `toml:"battery_path"`
	Creator     string   `toml:"creator"`
	StartLat    *float64 `toml:"start_lat"`
	StartLon    *float64 `toml:"start_lon"`
	StartAlt    *float64 `toml:"start_alt"`
}

// Defaults returns the configuration used when no config file exists
func Defaults() *Config {
	return &Config{
		WeightKg:        70,
		MET:             6.0,
		HRBaseline:      95,
		ReplayRate:      1.0,
		Creator:         "trailwatch",
		StartLat:        46.5584,
		StartLon:        7.8360,
		StartAlt:        1560,
		SummaryTemplate: DefaultSummaryTemplate,
	}
}

// Dir returns ~/.config/trailwatch
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "trailwatch"), nil
}

// Load reads config from ~/.config/trailwatch/
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return Defaults(), nil // Use defaults
	}
	return LoadFrom(dir)
}

// LoadFrom reads config.toml, .env and summary.mustache from dir. Missing
// files leave the defaults in place; TRAILWATCH_* variables override the
// TOML values.
func LoadFrom(dir string) (*Config, error) {
	cfg := Defaults()
	cfg.Dir = dir

	tomlPath := filepath.Join(dir, "config.toml")
	templatePath := filepath.Join(dir, "summary.mustache")

	if _, err := os.Stat(tomlPath); err == nil {
		var tc tomlConfig
		if _, err := toml.DecodeFile(tomlPath, &tc); err != nil {
			return cfg, err
		}
		tc.apply(cfg)
	}

	applyEnv(cfg, environment(dir))

	// If custom template exists, use it
	if data, err := os.ReadFile(templatePath); err == nil {
		cfg.SummaryTemplate = string(data)
	}

	return cfg, nil
}

func (tc tomlConfig) apply(cfg *Config) {
	if tc.WeightKg != nil && *tc.WeightKg > 0 {
		cfg.WeightKg = *tc.WeightKg
	}
	if tc.MET != nil && *tc.MET > 0 {
		cfg.MET = *tc.MET
	}
	if tc.HRBaseline != nil && *tc.HRBaseline > 0 {
		cfg.HRBaseline = *tc.HRBaseline
	}
	if tc.ReplayRate != nil && *tc.ReplayRate > 0 {
		cfg.ReplayRate = *tc.ReplayRate
	}
	if tc.StartLat != nil {
		cfg.StartLat = *tc.StartLat
	}
	if tc.StartLon != nil {
		cfg.StartLon = *tc.StartLon
	}
	if tc.StartAlt != nil {
		cfg.StartAlt = *tc.StartAlt
	}
	if tc.HRDevice != "" {
		cfg.HRDevice = tc.HRDevice
	}
	if tc.BatteryPath != "" {
		cfg.BatteryPath = tc.BatteryPath
	}
	if tc.Creator != "" {
		cfg.Creator = tc.Creator
	}
}

// DefaultDBPath returns the journal location under the config directory
func DefaultDBPath() string {
	dir, err := Dir()
	if err != nil {
		return "session.db"
	}
	return filepath.Join(dir, "session.db")
}

// LogPath returns the log file location used while the watch face runs
func LogPath() string {
	dir, err := Dir()
	if err != nil {
		return "trailwatch.log"
	}
	return filepath.Join(dir, "trailwatch.log")
}
