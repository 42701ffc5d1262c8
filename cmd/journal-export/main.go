package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/cognicore/dailyline/pkg/dailyline/config"
	"github.com/cognicore/dailyline/pkg/dailyline/export"
	"github.com/cognicore/dailyline/pkg/dailyline/store"
	"github.com/cognicore/dailyline/pkg/dailyline/store/sqlite"
)

func main() {
	var (
		configPath = flag.String("config", "", "Config file (optional)")
		dbPath     = flag.String("db", "", "Database path (overrides config)")
		outDir     = flag.String("out", "", "Output directory (overrides config export_dir)")
	)
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatal("Failed to load configuration:", err)
		}
		cfg = loaded
	}
	if *dbPath != "" {
		cfg.Database = *dbPath
	}
	if *outDir != "" {
		cfg.ExportDir = *outDir
	}
	if cfg.Database == "" {
		log.Fatal("--db required")
	}

	ctx := context.Background()
	st, err := sqlite.OpenSQLite(ctx, cfg.Database, cfg.DefaultSettings())
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	defer st.Close()

	path, err := writeExport(ctx, st, cfg.ExportDir, time.Now())
	if err != nil {
		log.Fatal("Export failed:", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Wrote %s (%s)", path, humanize.Bytes(uint64(info.Size())))
}

func writeExport(ctx context.Context, st store.Store, dir string, now time.Time) (string, error) {
	entries, err := st.ListEntries(ctx)
	if err != nil {
		return "", err
	}
	settings, err := st.GetSettings(ctx)
	if err != nil {
		return "", err
	}
	log.Printf("Exporting %s entries", humanize.Comma(int64(len(entries))))
	return export.WriteFile(dir, export.Build(entries, settings, now))
}
