package marquee

import (
	"fmt"
	"os"
	"time"
)

// Config collects the tunables of a Carousel and a Loader.
type Config struct {
	// Interval is the automatic advance cadence.
	Interval time.Duration `json:"interval" yaml:"interval" validate:"gt=0"`

	// MaxSlides caps the carousel size.
	MaxSlides int `json:"max_slides" yaml:"max_slides" validate:"gt=0"`

	// FetchTimeout caps a pending fetch. Zero means no timeout.
	FetchTimeout time.Duration `json:"fetch_timeout" yaml:"fetch_timeout" validate:"gte=0"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Interval:  DefaultInterval,
		MaxSlides: DefaultMaxSlides,
	}
}

// Validate implements Validator.
func (c Config) Validate() error {
	return validate.Struct(c)
}

// ParseConfig decodes data over the defaults and validates the result.
// Durations are written as Go duration strings ("6s", "250ms").
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := (YAMLCodec{}).Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadConfig reads and parses a YAML or JSON configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return ParseConfig(data)
}
