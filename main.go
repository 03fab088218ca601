// Package main implements blockstat, a CLI that extracts block production
// latency statistics from node debug logs.
package main

import (
	"flag"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"

	"github.com/skylenet/blockstat/analysis"
	"github.com/skylenet/blockstat/summary"
)

var (
	logPath  = flag.String("log", "debug.log", "Path to the debug log to analyze")
	jsonPath = flag.String("json", "", "Optional path to write summary statistics as JSON")
	label    = flag.String("label", "", "Optional label to include in the JSON summary")
	quiet    = flag.Bool("quiet", false, "Suppress detailed textual output")
	verbose  = flag.Bool("verbose", false, "Enable verbose logging")
)

func main() {
	flag.Parse()

	// Initialize logging.
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	// Set log level from environment.
	if level := os.Getenv("BLOCKSTAT_LOGLEVEL"); level != "" {
		lvl, err := logrus.ParseLevel(level)
		if err == nil {
			log.SetLevel(lvl)
		}
	}
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	if *quiet {
		log.SetLevel(logrus.WarnLevel)
	}

	if _, err := os.Stat(*logPath); err != nil {
		log.WithError(err).WithField("log", *logPath).Fatal("Log file not found")
	}

	start := time.Now()
	log.WithField("log", *logPath).Info("Analyzing log")

	analyzer := analysis.NewAnalyzer(log, analysis.DefaultConfig())

	// Detect the steady-state block range.
	rng, err := analyzer.DetectRange(*logPath)
	if err != nil {
		log.WithError(err).Fatal("Failed to detect block range")
	}
	if rng != nil {
		log.WithFields(logrus.Fields{
			"first":  rng.First,
			"last":   rng.Last,
			"blocks": rng.Blocks(),
		}).Info("Analyzing steady-state blocks, excluding ramp-up/down")
	} else {
		log.Info("No non-empty blocks found, analyzing all blocks")
	}

	// Extract the latency series.
	series, err := analyzer.Extract(*logPath, rng)
	if err != nil {
		log.WithError(err).Fatal("Failed to extract metrics")
	}

	result := summary.New(*label, *logPath, rng, series)
	for name, stats := range result.Metrics {
		if stats != nil {
			log.WithFields(logrus.Fields{
				"metric": name,
				"stats":  stats,
			}).Debug("Computed metric")
		}
	}

	if !*quiet {
		result.Render(os.Stdout)
	}

	if *jsonPath != "" {
		if err := result.WriteJSON(*jsonPath); err != nil {
			log.WithError(err).Fatal("Failed to write JSON summary")
		}
		log.WithField("path", *jsonPath).Info("Wrote JSON summary")
	}

	log.WithField("elapsed", common.PrettyDuration(time.Since(start))).Info("Analysis complete")
}
