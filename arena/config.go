package arena

import (
	"fmt"
	"time"
)

type Config struct {
	// Token economy
	StartingBalance   int64
	MinWager          int64
	MaxWager          int64
	EntryFee          int64
	BigWagerThreshold int64

	// Bounded buffers
	MemoryCap        int // decision transcripts kept per agent
	EventBufferCap   int // live event buffer on the world store
	RecentGamesLimit int // games returned per tick outcome

	// External calls
	ProviderTimeout time.Duration

	// RNG seed (0 => time-based)
	Seed int64
}

func DefaultConfig() Config {
	return Config{
		StartingBalance:   500,
		MinWager:          10,
		MaxWager:          200,
		EntryFee:          100,
		BigWagerThreshold: 100,
		MemoryCap:         20,
		EventBufferCap:    200,
		RecentGamesLimit:  20,
		ProviderTimeout:   8 * time.Second,
	}
}

func (c Config) validate() error {
	if c.StartingBalance <= 0 {
		return fmt.Errorf("StartingBalance must be > 0")
	}
	if c.MinWager <= 0 || c.MaxWager < c.MinWager {
		return fmt.Errorf("invalid wager bounds: min=%d max=%d", c.MinWager, c.MaxWager)
	}
	if c.MemoryCap <= 0 {
		return fmt.Errorf("MemoryCap must be > 0")
	}
	if c.EventBufferCap <= 0 {
		return fmt.Errorf("EventBufferCap must be > 0")
	}
	if c.RecentGamesLimit <= 0 {
		return fmt.Errorf("RecentGamesLimit must be > 0")
	}
	if c.ProviderTimeout < 0 {
		return fmt.Errorf("ProviderTimeout must be >= 0")
	}
	return nil
}
