package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"

	"roadcheck/internal/repository/sqlite"

	"github.com/joho/godotenv"
)

// defaultJournalPath resolves JOURNAL_DB the same way the pipeline does,
// including a .env file in the working directory.
func defaultJournalPath() string {
	_ = godotenv.Load()
	return os.Getenv("JOURNAL_DB")
}

func main() {
	dbPath := flag.String("db", defaultJournalPath(), "Journal database path (defaults to $JOURNAL_DB or .env)")
	limit := flag.Int("n", 10, "Number of recent runs to show")
	reset := flag.Bool("clear", false, "Delete all journaled runs")
	flag.Parse()

	if *dbPath == "" {
		log.Fatalf("No journal database given, use -db or set JOURNAL_DB")
	}

	if _, err := os.Stat(*dbPath); os.IsNotExist(err) {
		log.Fatalf("Journal database not found: %s", *dbPath)
	}

	db, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	err = report(os.Stdout, db, *limit, *reset)
	db.Close()
	if err != nil {
		log.Fatalf("%v", err)
	}
}

// report prints the recent runs and totals, or clears the journal when reset is set.
func report(w io.Writer, db *sqlite.DB, limit int, reset bool) error {
	runs := sqlite.NewRunRepository(db)
	detections := sqlite.NewDetectionRepository(db)

	if reset {
		if err := runs.DeleteAll(); err != nil {
			return fmt.Errorf("failed to clear journal: %w", err)
		}
		fmt.Fprintln(w, "Journal cleared")
		return nil
	}

	recent, err := runs.GetRecent(limit)
	if err != nil {
		return fmt.Errorf("failed to read runs: %w", err)
	}

	if len(recent) == 0 {
		fmt.Fprintln(w, "No runs journaled yet")
		return nil
	}

	fmt.Fprintf(w, "Last %d run(s):\n", len(recent))
	for _, run := range recent {
		dets, err := detections.GetByRunID(run.ID)
		if err != nil {
			log.Printf("Failed to read detections for %s: %v", run.ID, err)
		}
		fmt.Fprintf(w, "  %s  %-40s  %4dx%-4d  allowed=%-5t  detections=%d\n",
			run.CreatedAt.Local().Format("2006-01-02 15:04:05"), run.ImagePath, run.Width, run.Height, run.Safe, len(dets))
	}

	stats, err := runs.GetStats()
	if err != nil {
		return fmt.Errorf("failed to read stats: %w", err)
	}

	fmt.Fprintf(w, "\nJournal statistics:\n")
	fmt.Fprintf(w, "   Total runs: %d\n", stats.TotalRuns)
	fmt.Fprintf(w, "   Allowed:    %d\n", stats.SafeRuns)
	fmt.Fprintf(w, "   Blocked:    %d\n", stats.TotalRuns-stats.SafeRuns)

	labels := make([]string, 0, len(stats.LabelCounts))
	for label := range stats.LabelCounts {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		fmt.Fprintf(w, "      - %s: %d\n", label, stats.LabelCounts[label])
	}
	return nil
}
