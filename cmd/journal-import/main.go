package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/cognicore/dailyline/internal/importer"
	"github.com/cognicore/dailyline/pkg/dailyline/entry"
	"github.com/cognicore/dailyline/pkg/dailyline/store"
	"github.com/cognicore/dailyline/pkg/dailyline/store/sqlite"
)

func main() {
	var (
		dbPath    = flag.String("db", "", "Database path (required)")
		inputPath = flag.String("input", "", "Entries JSONL file")
		htmlPath  = flag.String("html", "", "HTML page to import as one entry")
		date      = flag.String("date", "", "Entry date YYYY-MM-DD for -html")
	)
	flag.Parse()

	if *dbPath == "" {
		log.Fatal("--db required")
	}
	if *inputPath == "" && *htmlPath == "" {
		log.Fatal("--input or --html required")
	}
	if *htmlPath != "" && *date == "" {
		log.Fatal("--date required with --html")
	}

	ctx := context.Background()

	st, err := sqlite.OpenSQLite(ctx, *dbPath)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	defer st.Close()

	entries, err := collect(*inputPath, *htmlPath, *date)
	if err != nil {
		log.Fatal("Failed to load entries:", err)
	}
	log.Printf("Loaded %s entries", humanize.Comma(int64(len(entries))))

	imported := importAll(ctx, st, entries)
	log.Printf("Import complete: %s of %s entries stored", humanize.Comma(int64(imported)), humanize.Comma(int64(len(entries))))
}

func collect(inputPath, htmlPath, date string) ([]entry.Entry, error) {
	var entries []entry.Entry
	if inputPath != "" {
		loaded, err := importer.LoadFromJSONL(inputPath)
		if err != nil {
			return nil, err
		}
		entries = append(entries, loaded...)
	}
	if htmlPath != "" {
		f, err := os.Open(htmlPath)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", htmlPath, err)
		}
		defer f.Close()
		e, err := importer.LoadHTML(f, date)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// importAll upserts entries one by one, logging and skipping failures. It
// returns how many were stored.
func importAll(ctx context.Context, st store.Store, entries []entry.Entry) int {
	stored := 0
	for i, e := range entries {
		if err := st.UpsertEntry(ctx, e); err != nil {
			log.Printf("Failed to import entry %d (%s): %v", i, e.Date, err)
			continue
		}
		stored++
		if (i+1)%100 == 0 {
			log.Printf("Imported %d/%d entries", i+1, len(entries))
		}
	}
	return stored
}
