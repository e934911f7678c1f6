// Command generator seeds the Elasticsearch flight catalog with randomized
// flights for every departure/arrival city pair, over a window of departure
// dates starting tomorrow.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"skyfare/internal/config"
	"skyfare/internal/flights"
	"skyfare/internal/logger"
	"skyfare/internal/search"
)

var (
	days   = flag.Int("days", 7, "Number of departure dates to seed, starting tomorrow")
	dryRun = flag.Bool("dry-run", false, "Generate flights without indexing them")
)

func main() {
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	log := logger.WithFields("component", "generator")

	if !cfg.Search.Enabled() {
		log.Error("ELASTICSEARCH_URL is not set, nothing to seed")
		os.Exit(1)
	}

	catalog, err := search.NewFlightCatalog(cfg.Search)
	if err != nil {
		logger.Fatal("Failed to create flight catalog", "error", err)
	}

	generator := flights.New()
	ctx := context.Background()
	start := time.Now().UTC().Truncate(24 * time.Hour).Add(24 * time.Hour)

	var indexed int
	for day := 0; day < *days; day++ {
		date := start.Add(time.Duration(day) * 24 * time.Hour)

		for _, source := range flights.DepartureCities {
			for _, destination := range flights.ArrivalCities {
				for _, flight := range generator.Generate(source, destination, date) {
					if *dryRun {
						indexed++
						continue
					}
					if err := catalog.IndexFlight(ctx, flight); err != nil {
						logger.Fatal("Failed to index flight",
							"error", err,
							"flight", flight.FlightNumber)
					}
					indexed++
				}
			}
		}
		log.Info("Seeded departure date", "date", date.Format("2006-01-02"))
	}

	log.Info("Flight catalog seeding completed", "flights", indexed, "dry_run", *dryRun)
}
