// Package cmd implements the CLI application to compute capital gains.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/capgains"
	"github.com/etnz/capgains/mbank"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&reportCmd{}, "reports")
	c.Register(&overviewCmd{}, "reports")
	c.Register(&upsideCmd{}, "projections")
	c.Register(&topicCmd{}, "help")
}

// Environment variables read by the application.
const (
	EnvConfig  = "CAPGAINS_CONFIG"
	EnvVerbose = "CAPGAINS_VERBOSE"
	EnvFormat  = "CAPGAINS_FORMAT"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "", "Path to the YAML configuration file. Defaults to $"+EnvConfig+" or "+DefaultConfigFile)
var verbose = flag.Bool("v", false, "Log debug messages")

// stdout receives the command outputs.
var stdout io.Writer = os.Stdout

// configure loads the environment and the configuration, and sets up logging.
func configure() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("cannot load .env file: %w", err)
	}
	cfg, err := LoadConfig(*configFile)
	if err != nil {
		return nil, err
	}
	if *verbose {
		cfg.Verbose = true
	}

	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	log.SetLevel(log.WarnLevel)
	if cfg.Verbose {
		log.SetLevel(log.DebugLevel)
	}
	log.WithFields(log.Fields{"format": cfg.Format, "taxRate": cfg.TaxRate, "encoding": cfg.Broker.Encoding}).Debug("configuration loaded")
	return cfg, nil
}

// loadOrders reads an eMakler export with the configured broker settings.
func loadOrders(cfg *Config, path string) ([]capgains.TradeOrder, error) {
	loader, err := mbank.NewLoader(cfg.Broker.Encoding, cfg.Broker.Timezone, cfg.Broker.Commission())
	if err != nil {
		return nil, err
	}
	orders, err := loader.Load(path)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"file": path, "orders": len(orders)}).Debug("orders loaded")
	return orders, nil
}

// writeOutput writes 'content' to 'file', or to stdout when file is empty.
func writeOutput(file string, content []byte) error {
	if file == "" {
		_, err := stdout.Write(content)
		return err
	}
	if err := os.WriteFile(file, content, 0644); err != nil {
		return err
	}
	log.WithField("file", file).Info("report written")
	fmt.Fprintf(stdout, "Report written to %s\n", file)
	return nil
}

// sibling returns the path of a file next to 'path', named after it with 'suffix'.
func sibling(path, suffix string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return filepath.Join(filepath.Dir(path), stem+suffix)
}

// printError reports a failed command. Error messages name their class.
func printError(err error) {
	log.WithError(err).Debug("command failed")
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}
