// SPDX-License-Identifier: EPL-2.0

// Command audxcode transcodes the audio stream of one file into another.
//
//	audxcode [-config file] [-log-level level] [-metrics] <input-file> <output-file>
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ik5/audxcode"
	"github.com/ik5/audxcode/internal/config"
	"github.com/ik5/audxcode/internal/observe"
	"github.com/ik5/audxcode/pipeline"
)

const name = "audxcode"

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to a YAML configuration file (default $"+config.EnvPath+")")
	logLevel := fs.String("log-level", "", "override log_level: debug, info, warn or error")
	metrics := fs.Bool("metrics", false, "print the collected metrics in Prometheus text format after the run")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: %s [flags] <input-file> <output-file>\n", name)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return 1
	}
	inPath, outPath := fs.Arg(0), fs.Arg(1)

	cfg, err := config.Resolve(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", name, err)
		return 1
	}
	if *logLevel != "" {
		cfg.LogLevel = config.LogLevel(*logLevel)
		if err := config.Validate(cfg); err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", name, err)
			return 1
		}
	}

	log := observe.NewLogger(stderr, cfg.LogLevel.Level())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	provider, err := observe.InitProvider(ctx, observe.ProviderConfig{ServiceName: name})
	if err != nil {
		fmt.Fprintf(stderr, "%s: init telemetry: %v\n", name, err)
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			log.Warn("telemetry shutdown", "err", err)
		}
	}()

	m, err := observe.NewMetrics(provider.MeterProvider())
	if err != nil {
		fmt.Fprintf(stderr, "%s: init metrics: %v\n", name, err)
		return 1
	}

	reg := audxcode.NewRegistry(cfg.Input.PacketSamples)
	out := audxcode.Output{
		Codec:     cfg.Output.Codec,
		Channels:  cfg.Output.Channels,
		BitRate:   cfg.Output.BitRate,
		FrameSize: cfg.Output.FrameSize,
	}

	log.Debug("transcoding", "input", inPath, "output", outPath, "codec", out.Codec)

	stats, err := audxcode.TranscodeFile(ctx, reg, inPath, outPath, out,
		pipeline.WithLogger(log),
		pipeline.WithMetrics(m),
	)
	if err != nil {
		if audxcode.IsUnsupported(err) {
			inputs, outputs := reg.Extensions()
			fmt.Fprintf(stderr, "%s: %v (supported inputs: %s; outputs: %s)\n", name, err,
				strings.Join(inputs, ", "), strings.Join(outputs, ", "))
			return 1
		}
		fmt.Fprintf(stderr, "%s: %v\n", name, err)
		return 1
	}

	log.Info("transcode complete",
		"iterations", stats.Iterations,
		"samples", stats.SamplesEncoded,
		"packets", stats.PacketsWritten,
		"duration", stats.Duration,
	)

	if *metrics {
		if err := provider.WriteMetrics(stderr); err != nil {
			log.Warn("metrics summary", "err", err)
		}
	}

	return 0
}
