// Package main generates synthetic node debug logs for testing blockstat.
//
// The generated log mimics block production output: Built payload,
// Received block, State root task and Block added lines with ISO-8601
// timestamps, ANSI coloring and field values in the node's formats. Idle
// blocks around the loaded phase let the range detection kick in.
//
// Usage:
//
//	go run ./tools/generate-log \
//	    --output debug.log \
//	    --blocks 20 \
//	    --empty-head 2 \
//	    --empty-tail 2
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"
)

var (
	outputPath = flag.String("output", "debug.log", "Output path for the generated log")
	blockCount = flag.Int("blocks", 20, "Number of loaded (non-empty) blocks")
	emptyHead  = flag.Int("empty-head", 2, "Number of empty blocks before the loaded phase")
	emptyTail  = flag.Int("empty-tail", 2, "Number of empty blocks after the loaded phase")
	seed       = flag.Int64("seed", 1, "Seed for the random generator")
	color      = flag.Bool("color", true, "Emit ANSI color codes")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
)

func main() {
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	rng := rand.New(rand.NewSource(*seed))
	slot := time.Date(2025, 9, 29, 22, 0, 0, 0, time.UTC)
	total := *emptyHead + *blockCount + *emptyTail

	var b strings.Builder
	parent := common.Hash{}

	for i := 0; i < total; i++ {
		number := uint64(i + 1)
		loaded := i >= *emptyHead && i < *emptyHead+*blockCount
		slot = slot.Add(2 * time.Second)
		parent = writeBlock(&b, rng, slot, number, parent, loaded)

		log.WithFields(logrus.Fields{
			"block":  number,
			"loaded": loaded,
		}).Debug("Generated block")
	}

	if err := os.WriteFile(*outputPath, []byte(b.String()), 0644); err != nil {
		log.WithError(err).Fatal("Failed to write log")
	}

	log.WithFields(logrus.Fields{
		"output": *outputPath,
		"blocks": total,
		"loaded": *blockCount,
	}).Info("Log generated successfully")

	fmt.Printf("\nLog created at: %s\n", *outputPath)
	fmt.Printf("Blocks: %d total, %d loaded\n", total, *blockCount)
}

// writeBlock emits the four per-block lines and returns the block hash.
func writeBlock(b *strings.Builder, rng *rand.Rand, slot time.Time, number uint64, parent common.Hash, loaded bool) common.Hash {
	hash := randomHash(rng)

	var build, stateRoot, rootTask, added time.Duration
	var txs int
	var gasUsed string
	if loaded {
		build = randomDuration(rng, 8*time.Millisecond, 60*time.Millisecond)
		stateRoot = randomDuration(rng, 20*time.Millisecond, 90*time.Millisecond)
		rootTask = randomDuration(rng, 15*time.Millisecond, 70*time.Millisecond)
		added = randomDuration(rng, 2*time.Millisecond, 12*time.Millisecond)
		txs = 80 + rng.Intn(240)
		if number%5 == 0 {
			gasUsed = fmt.Sprintf("%.2fKgas", 800+rng.Float64()*200)
		} else {
			gasUsed = fmt.Sprintf("%.2fMgas", 10+rng.Float64()*20)
		}
	} else {
		build = randomDuration(rng, 200*time.Microsecond, 900*time.Microsecond)
		stateRoot = randomDuration(rng, 500*time.Microsecond, 3*time.Millisecond)
		rootTask = randomDuration(rng, 300*time.Microsecond, 2*time.Millisecond)
		added = randomDuration(rng, 100*time.Microsecond, 800*time.Microsecond)
		gasUsed = fmt.Sprintf("%dgas", rng.Intn(900))
	}

	builtAt := slot.Add(build)
	receivedAt := builtAt.Add(stateRoot)
	addedAt := receivedAt.Add(added)

	writeLine(b, builtAt, "payload_builder",
		fmt.Sprintf("Built payload parent_hash=%s parent_number=%d txs=%d elapsed=%s",
			parent.Hex(), number-1, txs, formatDuration(build)))
	writeLine(b, receivedAt, "consensus::engine",
		fmt.Sprintf("Received block from consensus engine number=%d hash=%s",
			number, hash.Hex()))
	writeLine(b, receivedAt, "engine::root",
		fmt.Sprintf("State root task finished elapsed=%s state_root=%s",
			formatDuration(rootTask), randomHash(rng).Hex()))
	writeLine(b, addedAt, "engine::tree",
		fmt.Sprintf("Block added to canonical chain number=%d hash=%s txs=%d gas_used=%s elapsed=%s",
			number, hash.Hex(), txs, gasUsed, formatDuration(added)))

	return hash
}

// writeLine emits one tracing-style line, optionally ANSI colored.
func writeLine(b *strings.Builder, ts time.Time, target, msg string) {
	stamp := ts.UTC().Format("2006-01-02T15:04:05.000000Z")
	if *color {
		fmt.Fprintf(b, "%s \x1b[32m INFO\x1b[0m \x1b[2m%s\x1b[0m: %s\n", stamp, target, msg)
		return
	}
	fmt.Fprintf(b, "%s  INFO %s: %s\n", stamp, target, msg)
}

// formatDuration renders d the way the node's tracing output does, with
// the unit scaled to the magnitude.
func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Second:
		return fmt.Sprintf("%.6fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.6fms", float64(d)/float64(time.Millisecond))
	default:
		return fmt.Sprintf("%.3fµs", float64(d)/float64(time.Microsecond))
	}
}

func randomDuration(rng *rand.Rand, lo, hi time.Duration) time.Duration {
	return lo + time.Duration(rng.Int63n(int64(hi-lo)))
}

func randomHash(rng *rand.Rand) common.Hash {
	var h common.Hash
	rng.Read(h[:])
	return h
}
