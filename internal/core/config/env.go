package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment overrides, applied after config.toml
const (
	EnvHRDevice    = "TRAILWATCH_HR_DEVICE"
	EnvBatteryPath = "TRAILWATCH_BATTERY_PATH"
	EnvWeightKg    = "TRAILWATCH_WEIGHT_KG"
	EnvMET         = "TRAILWATCH_MET"
)

// environment merges <dir>/.env under the process environment. Process
// variables win.
func environment(dir string) map[string]string {
	env := map[string]string{}

	dotenv := filepath.Join(dir, ".env")
	if _, err := os.Stat(dotenv); err == nil {
		vals, err := godotenv.Read(dotenv)
		if err != nil {
			log.Printf("ignoring %s: %v", dotenv, err)
		} else {
			env = vals
		}
	}

	for _, k := range []string{EnvHRDevice, EnvBatteryPath, EnvWeightKg, EnvMET} {
		if v, ok := os.LookupEnv(k); ok {
			env[k] = v
		}
	}
	return env
}

func applyEnv(cfg *Config, env map[string]string) {
	if v := env[EnvHRDevice]; v != "" {
		cfg.HRDevice = v
	}
	if v := env[EnvBatteryPath]; v != "" {
		cfg.BatteryPath = v
	}
	if v, err := strconv.ParseFloat(env[EnvWeightKg], 64); err == nil && v > 0 {
		cfg.WeightKg = v
	}
	if v, err := strconv.ParseFloat(env[EnvMET], 64); err == nil && v > 0 {
		cfg.MET = v
	}
}
