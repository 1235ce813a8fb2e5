package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/crediscope/crediscope/config"
	"github.com/crediscope/crediscope/internal/clients"
	"github.com/crediscope/crediscope/internal/logging"
	"github.com/crediscope/crediscope/internal/quota"
)

// Prints aggregate per-source quota usage for the retained window.
func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	tracker := quota.NewTracker(clients.GetDynamoDBClient())

	stats, err := tracker.Stats(context.Background())
	if err != nil {
		slog.Error("Failed to collect quota statistics", slog.String("error", err.Error()))
		os.Exit(1)
	}

	sort.Slice(stats, func(i, j int) bool {
		return stats[i].SourceName < stats[j].SourceName
	})

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SOURCE\tDAYS\tTOTAL\tTODAY\tLIMIT")
	for _, s := range stats {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\n", s.SourceName, s.Days, s.Total, s.Today, s.Limit)
	}
	w.Flush()
}
