package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/etnz/capgains"
	"github.com/etnz/capgains/mbank"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is read, when it exists, if no configuration file is given.
const DefaultConfigFile = "capgains.yaml"

// Config holds the application settings.
type Config struct {
	Format  string        `yaml:"format"`
	TaxRate capgains.Rate `yaml:"tax_rate"`
	Verbose bool          `yaml:"verbose"`
	Broker  Broker        `yaml:"broker"`
}

// Broker holds the settings of the brokerage export.
type Broker struct {
	Encoding          string         `yaml:"encoding"`
	Timezone          string         `yaml:"timezone"`
	CommissionRate    capgains.Rate  `yaml:"commission_rate"`
	CommissionMinimum capgains.Money `yaml:"commission_minimum"`
}

// Commission returns the broker fee schedule.
func (b Broker) Commission() capgains.CommissionPolicy {
	return capgains.CommissionPolicy{Rate: b.CommissionRate, Minimum: b.CommissionMinimum}
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() *Config {
	return &Config{
		Format:  formatCSV,
		TaxRate: capgains.DefaultTaxRate,
		Broker: Broker{
			Encoding:          "windows-1250",
			Timezone:          mbank.DefaultTimezone,
			CommissionRate:    capgains.MBankCommission.Rate,
			CommissionMinimum: capgains.MBankCommission.Minimum,
		},
	}
}

// LoadConfig reads the configuration.
//
// Settings come from the environment, then the YAML file 'path', then the
// defaults. An empty path falls back to $CAPGAINS_CONFIG, then to
// DefaultConfigFile which may not exist.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := true
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path == "" {
		path, explicit = DefaultConfigFile, false
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("invalid configuration file %q: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("cannot read configuration file: %w", err)
	}

	if v := os.Getenv(EnvFormat); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv(EnvVerbose); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s value %q: %w", EnvVerbose, v, err)
		}
		cfg.Verbose = b
	}
	return cfg, nil
}
