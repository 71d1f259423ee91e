// SPDX-License-Identifier: EPL-2.0

// Package config holds the transcoder settings and loads them from YAML.
package config

import "log/slog"

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Level maps l to a slog level; unknown values map to info.
func (l LogLevel) Level() slog.Level {
	switch l {
	case LogDebug:
		return slog.LevelDebug
	case LogWarn:
		return slog.LevelWarn
	case LogError:
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Config is the root configuration.
type Config struct {
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`

	LogLevel LogLevel `yaml:"log_level"`
}

// InputConfig tunes the demuxers.
type InputConfig struct {
	// PacketSamples is the per-channel size of packets read from PCM
	// containers and from formats decoded while reading.
	PacketSamples int `yaml:"packet_samples"`
}

// OutputConfig fixes the encoder parameters. The sample rate always
// follows the input.
type OutputConfig struct {
	// Codec overrides the output container's default codec when set.
	Codec    string `yaml:"codec"`
	Channels int    `yaml:"channels"`
	BitRate  int    `yaml:"bit_rate"`
	// FrameSize is the frame length for codecs without a native one.
	FrameSize int `yaml:"frame_size"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Input: InputConfig{PacketSamples: 1024},
		Output: OutputConfig{
			Channels:  2,
			BitRate:   96000,
			FrameSize: 4096,
		},
		LogLevel: LogInfo,
	}
}
