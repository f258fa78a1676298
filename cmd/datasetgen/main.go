// Command datasetgen writes a synthetic slot-history CSV that the advisor
// can train on. Useful for local runs and test fixtures when no real
// delivery history is available.
package main

import (
	"flag"
	"os"

	"lastmile/internal/adapters/out/advisor"

	"github.com/labstack/gommon/log"
)

func main() {
	out := flag.String("out", "slot_history.csv", "output CSV path")
	seed := flag.Int64("seed", 42, "random seed for reproducible datasets")
	rounds := flag.Int("rounds", 40, "generation rounds; each round covers every area/weekday pair")
	flag.Parse()

	samples := advisor.GenerateDataset(*seed, *rounds)

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", *out, err)
	}
	defer f.Close()

	if err := advisor.WriteDatasetCSV(f, samples); err != nil {
		log.Fatalf("Failed to write dataset: %v", err)
	}

	log.Infof("Wrote %d samples to %s", len(samples), *out)
}
