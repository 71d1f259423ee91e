// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable holding a config file path.
const EnvPath = "AUDXCODE_CONFIG"

// maxChannels bounds output.channels.
const maxChannels = 8

// Load reads the YAML configuration file at path and returns a validated [Config].
// Fields missing from the file keep their [Default] values.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r over the defaults and
// validates the result. An empty document yields the defaults.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Resolve picks the config file from flagPath, then from [EnvPath], and
// falls back to [Default] when neither is set.
func Resolve(flagPath string) (*Config, error) {
	path := flagPath
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if !cfg.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("log_level %q is invalid; valid values: debug, info, warn, error", cfg.LogLevel))
	}
	if cfg.Input.PacketSamples < 1 {
		errs = append(errs, fmt.Errorf("input.packet_samples must be positive, got %d", cfg.Input.PacketSamples))
	}
	if cfg.Output.Channels < 1 || cfg.Output.Channels > maxChannels {
		errs = append(errs, fmt.Errorf("output.channels must be between 1 and %d, got %d", maxChannels, cfg.Output.Channels))
	}
	if cfg.Output.BitRate < 0 {
		errs = append(errs, fmt.Errorf("output.bit_rate must not be negative, got %d", cfg.Output.BitRate))
	}
	if cfg.Output.FrameSize < 1 {
		errs = append(errs, fmt.Errorf("output.frame_size must be positive, got %d", cfg.Output.FrameSize))
	}

	return errors.Join(errs...)
}
