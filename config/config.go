// Package config loads the analysis configuration from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/decibelcooper/ckstar/cuts"
	"github.com/decibelcooper/ckstar/hist"
	"github.com/decibelcooper/ckstar/pairing"
)

// Process switches the same-event and mixed-event passes.
type Process struct {
	Same  bool `yaml:"same"`
	Mixed bool `yaml:"mixed"`
}

type Config struct {
	cuts.Cuts `yaml:",inline"`

	Mixing  pairing.Mixing `yaml:"mixing"`
	QA      hist.QAConfig  `yaml:"qa"`
	Process Process        `yaml:"process"`
}

func Default() Config {
	return Config{
		Cuts:    cuts.Default(),
		Mixing:  pairing.DefaultMixing(),
		Process: Process{Same: true, Mixed: true},
	}
}

func (c Config) Validate() error {
	var errs []error
	if err := c.Cuts.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Process.Mixed {
		if err := c.Mixing.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Decode reads YAML from r over the defaults. Unknown keys are an error.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("could not decode configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Load reads the configuration file fname. An empty name yields the defaults.
func Load(fname string) (Config, error) {
	if fname == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(fname)
	if err != nil {
		return Config{}, fmt.Errorf("could not read configuration: %w", err)
	}
	cfg, err := Decode(bytes.NewReader(raw))
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", fname, err)
	}
	return cfg, nil
}

// Write encodes c as YAML to w.
func (c Config) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("could not encode configuration: %w", err)
	}
	return enc.Close()
}
