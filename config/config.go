package config

import (
	"fmt"

	"github.com/Danielskry/SpectralZK/shared"
)

const (
	MaxSize = 1 << 10

	MinMaxPeriod = 1
	MaxMaxPeriod = 64

	MinParallelism = 1
)

const (
	DefaultSize          = 5
	DefaultPathLength    = 8
	DefaultNumChallenges = 4

	// Period search bound used by the self-check.
	DefaultMaxPeriod = 5

	DefaultTrials      = 20
	DefaultParallelism = 4
)

type Config struct {
	// Seed of the tiling. A nil seed is drawn at random when the protocol is set up.
	Seed *int64 `mapstructure:"seed"`

	// Protocol params.
	Size          int `mapstructure:"size"`
	PathLength    int `mapstructure:"path-length"`
	NumChallenges int `mapstructure:"num-challenges"`

	// Analysis and trial runner params.
	MaxPeriod   int `mapstructure:"max-period"`
	Trials      int `mapstructure:"trials"`
	Parallelism int `mapstructure:"parallelism"`
}

func DefaultConfig() *Config {
	return &Config{
		Size:          DefaultSize,
		PathLength:    DefaultPathLength,
		NumChallenges: DefaultNumChallenges,

		MaxPeriod:   DefaultMaxPeriod,
		Trials:      DefaultTrials,
		Parallelism: DefaultParallelism,
	}
}

// WithSeed returns a copy of cfg with a fixed seed.
func (cfg Config) WithSeed(seed int64) Config {
	cfg.Seed = &seed
	return cfg
}

func (cfg *Config) Validate() error {
	if cfg.Size < 0 || cfg.Size > MaxSize {
		return invalid("Size", fmt.Sprintf("in [0, %d]", MaxSize), cfg.Size)
	}

	if cfg.PathLength < 0 {
		return invalid("PathLength", ">= 0", cfg.PathLength)
	}

	if cfg.NumChallenges < 0 {
		return invalid("NumChallenges", ">= 0", cfg.NumChallenges)
	}

	if cfg.MaxPeriod < MinMaxPeriod || cfg.MaxPeriod > MaxMaxPeriod {
		return invalid("MaxPeriod", fmt.Sprintf("in [%d, %d]", MinMaxPeriod, MaxMaxPeriod), cfg.MaxPeriod)
	}

	if cfg.Trials < 0 {
		return invalid("Trials", ">= 0", cfg.Trials)
	}

	if cfg.Parallelism < MinParallelism {
		return invalid("Parallelism", fmt.Sprintf(">= %d", MinParallelism), cfg.Parallelism)
	}

	return nil
}

func invalid(param, expected string, given int) error {
	return shared.InvalidParamError{
		Param:    param,
		Expected: expected,
		Given:    fmt.Sprint(given),
	}
}
