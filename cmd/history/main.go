package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/vitos/crypto_market_radar/internal/infrastructure/storage"
)

func main() {
	dbPath := flag.String("db", "radar.db", "path to the run archive")
	limit := flag.Int("n", 14, "number of runs to show")
	flag.Parse()

	store, err := storage.NewSQLiteStore(*dbPath)
	if err != nil {
		fmt.Printf("Failed to init sqlite: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx := context.Background()
	runs, err := store.ListRuns(ctx, *limit)
	if err != nil {
		fmt.Printf("Failed to list runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Found %d runs:\n", len(runs))
	for _, r := range runs {
		fmt.Printf("- %s [%s] universe=%d up=%d down=%d\n", r.Date, r.VsCurrency, r.UniverseSize, r.Up, r.Down)
		fmt.Printf("  Gainers: %s\n", r.Gainers)
		fmt.Printf("  Vol(alt): %s\n", r.VolAlt)
		fmt.Printf("  Trend: %s\n", r.Trend)
	}
}
