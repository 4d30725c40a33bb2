package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds the server and simulation settings.
type Config struct {
	HTTPPort  string
	LogLevel  logrus.Level
	LogFormat string
	SimRounds int
	SimSeed   uint64
	SimBots   []string
}

// Load reads a .env file from the working directory when there is one and
// then the environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv.
func FromEnv(getenv func(string) string) (Config, error) {
	get := func(k, def string) string {
		if v := strings.TrimSpace(getenv(k)); v != "" {
			return v
		}
		return def
	}
	cfg := Config{
		HTTPPort:  get("HTTP_PORT", "1337"),
		LogFormat: strings.ToLower(get("LOG_FORMAT", "text")),
	}
	lvl, err := logrus.ParseLevel(get("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, err
	}
	cfg.LogLevel = lvl
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return Config{}, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}
	if cfg.SimRounds, err = strconv.Atoi(get("SIM_ROUNDS", "10")); err != nil || cfg.SimRounds < 1 {
		return Config{}, fmt.Errorf("SIM_ROUNDS must be a positive number, got %q", getenv("SIM_ROUNDS"))
	}
	if cfg.SimSeed, err = strconv.ParseUint(get("SIM_SEED", "0"), 10, 64); err != nil {
		return Config{}, fmt.Errorf("SIM_SEED: %w", err)
	}
	for _, b := range strings.Split(get("SIM_BOTS", "heuristic,random,heuristic"), ",") {
		b = strings.ToLower(strings.TrimSpace(b))
		if b != "random" && b != "heuristic" {
			return Config{}, fmt.Errorf("unknown bot %q in SIM_BOTS", b)
		}
		cfg.SimBots = append(cfg.SimBots, b)
	}
	if len(cfg.SimBots) != 3 {
		return Config{}, fmt.Errorf("SIM_BOTS needs three bots, got %d", len(cfg.SimBots))
	}
	return cfg, nil
}

// Logger returns a logrus logger set up from the config.
func (c Config) Logger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(c.LogLevel)
	if c.LogFormat == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return l
}
