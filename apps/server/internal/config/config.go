// Package config loads the server configuration: YAML file first, environment
// overrides second, validated defaults always.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"arena-lite/arena"
)

type Config struct {
	Addr        string `yaml:"addr"`
	DefaultMode string `yaml:"defaultMode"`

	Oracle struct {
		Model   string        `yaml:"model"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"oracle"`

	Chain struct {
		URL         string        `yaml:"url"`
		ExplorerURL string        `yaml:"explorerUrl"`
		Timeout     time.Duration `yaml:"timeout"`
	} `yaml:"chain"`

	Engine struct {
		StartingBalance   int64 `yaml:"startingBalance"`
		MinWager          int64 `yaml:"minWager"`
		MaxWager          int64 `yaml:"maxWager"`
		BigWagerThreshold int64 `yaml:"bigWagerThreshold"`
		Seed              int64 `yaml:"seed"`
	} `yaml:"engine"`
}

func Default() Config {
	var c Config
	c.Addr = ":8080"
	c.DefaultMode = string(arena.ModeDemo)
	c.Oracle.Model = "gpt-4o-mini"
	c.Oracle.Timeout = 8 * time.Second
	c.Chain.ExplorerURL = "https://testnet.monadexplorer.com"
	c.Chain.Timeout = 10 * time.Second
	base := arena.DefaultConfig()
	c.Engine.StartingBalance = base.StartingBalance
	c.Engine.MinWager = base.MinWager
	c.Engine.MaxWager = base.MaxWager
	c.Engine.BigWagerThreshold = base.BigWagerThreshold
	return c
}

// Load reads the config file named by ARENA_CONFIG (or the optional explicit
// path), then applies environment overrides. A missing file is not an error;
// the defaults stand.
func Load(path string) (Config, error) {
	c := Default()

	if path == "" {
		path = strings.TrimSpace(os.Getenv("ARENA_CONFIG"))
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return Config{}, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(raw, &c); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if v := strings.TrimSpace(os.Getenv("ARENA_ADDR")); v != "" {
		c.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv("ARENA_MODE")); v != "" {
		c.DefaultMode = v
	}
	if v := strings.TrimSpace(os.Getenv("ARENA_ORACLE_MODEL")); v != "" {
		c.Oracle.Model = v
	}
	if v := strings.TrimSpace(os.Getenv("ARENA_CHAIN_URL")); v != "" {
		c.Chain.URL = v
	}
	if v := strings.TrimSpace(os.Getenv("ARENA_CHAIN_EXPLORER")); v != "" {
		c.Chain.ExplorerURL = v
	}
	if v := strings.TrimSpace(os.Getenv("ARENA_SEED")); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("parse ARENA_SEED: %w", err)
		}
		c.Engine.Seed = n
	}

	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr must not be empty")
	}
	switch arena.Mode(c.DefaultMode) {
	case arena.ModeDemo, arena.ModeLive:
	default:
		return fmt.Errorf("unknown defaultMode %q", c.DefaultMode)
	}
	if c.Oracle.Timeout < 0 || c.Chain.Timeout < 0 {
		return fmt.Errorf("timeouts must be >= 0")
	}
	return nil
}

// EngineConfig translates the server settings into an engine config.
func (c Config) EngineConfig() arena.Config {
	cfg := arena.DefaultConfig()
	if c.Engine.StartingBalance > 0 {
		cfg.StartingBalance = c.Engine.StartingBalance
	}
	if c.Engine.MinWager > 0 {
		cfg.MinWager = c.Engine.MinWager
	}
	if c.Engine.MaxWager > 0 {
		cfg.MaxWager = c.Engine.MaxWager
	}
	if c.Engine.BigWagerThreshold > 0 {
		cfg.BigWagerThreshold = c.Engine.BigWagerThreshold
	}
	cfg.Seed = c.Engine.Seed
	cfg.ProviderTimeout = c.Oracle.Timeout
	return cfg
}
