package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	jsoniter "github.com/json-iterator/go"

	"github.com/cognicore/dailyline/internal/importer"
	"github.com/cognicore/dailyline/pkg/dailyline/access"
	"github.com/cognicore/dailyline/pkg/dailyline/config"
	"github.com/cognicore/dailyline/pkg/dailyline/datekey"
	"github.com/cognicore/dailyline/pkg/dailyline/entry"
	"github.com/cognicore/dailyline/pkg/dailyline/insights"
	"github.com/cognicore/dailyline/pkg/dailyline/store/sqlite"
)

type options struct {
	configPath string
	dbPath     string
	inputPath  string
	today      string
	format     string
	premium    bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "Config file (optional)")
	flag.StringVar(&opts.dbPath, "db", "", "Database path (overrides config)")
	flag.StringVar(&opts.inputPath, "input", "", "Entries JSONL file (instead of a database)")
	flag.StringVar(&opts.today, "today", "", "Reference day YYYY-MM-DD (default: today in the config timezone)")
	flag.StringVar(&opts.format, "format", "text", "Output format: json or text")
	flag.BoolVar(&opts.premium, "premium", false, "Treat the user as premium")
	flag.Parse()

	if err := run(context.Background(), os.Stdout, opts); err != nil {
		log.Fatal(err)
	}
}

// output is the JSON document printed by -format json. Only cards the
// user may see carry a payload.
type output struct {
	Today       string            `json:"today"`
	Entries     int               `json:"entries"`
	Fingerprint string            `json:"fingerprint"`
	Cards       []access.CardView `json:"cards"`
}

func run(ctx context.Context, w io.Writer, opts options) error {
	if opts.format != "json" && opts.format != "text" {
		return fmt.Errorf("unknown format %q", opts.format)
	}

	loader := config.Loader{ConfigPath: opts.configPath}
	comp, err := loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbPath := comp.Config.Database
	if opts.dbPath != "" {
		dbPath = opts.dbPath
	}

	entries, accessCtx, err := loadEntries(ctx, comp, dbPath, opts.inputPath)
	if err != nil {
		return err
	}
	if opts.premium {
		accessCtx.Entitlement = access.EntitlementPremium
	}

	today := opts.today
	if today == "" {
		today = datekey.Today(comp.Location)
	}
	if !datekey.Valid(today) {
		return fmt.Errorf("invalid -today %q", today)
	}

	report := comp.Builder.Build(entries, today)
	view := access.Apply(report, accessCtx)

	if opts.format == "json" {
		out := output{
			Today:       today,
			Entries:     len(entries),
			Fingerprint: report.Fingerprint(),
			Cards:       view.Cards,
		}
		data, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
	return writeText(w, today, len(entries), report, view)
}

func loadEntries(ctx context.Context, comp *config.Components, dbPath, inputPath string) ([]entry.Entry, access.Context, error) {
	defaults := comp.Config.DefaultSettings()
	accessCtx := access.Context{
		Entitlement:       access.Entitlement(defaults.PremiumStatus),
		AIInsightsEnabled: defaults.AIInsightsEnabled,
	}

	if inputPath != "" {
		entries, err := importer.LoadFromJSONL(inputPath)
		if err != nil {
			return nil, access.Context{}, fmt.Errorf("failed to load entries: %w", err)
		}
		return entries, accessCtx, nil
	}
	if dbPath == "" {
		return nil, access.Context{}, fmt.Errorf("-db or -input required")
	}

	st, err := sqlite.OpenSQLite(ctx, dbPath, defaults)
	if err != nil {
		return nil, access.Context{}, fmt.Errorf("failed to open database: %w", err)
	}
	defer st.Close()

	entries, err := st.ListEntries(ctx)
	if err != nil {
		return nil, access.Context{}, err
	}
	settings, err := st.GetSettings(ctx)
	if err != nil {
		return nil, access.Context{}, err
	}
	state, err := st.GetEntitlement(ctx)
	if err != nil {
		return nil, access.Context{}, err
	}
	return entries, access.ContextFrom(state, settings.AIInsightsEnabled), nil
}

func writeText(w io.Writer, today string, n int, report insights.Report, view access.View) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Insights for %s from %s entries\n", today, humanize.Comma(int64(n)))
	fmt.Fprintf(&b, "Fingerprint %s\n\n", report.Fingerprint())

	for _, cv := range view.Cards {
		if cv.State != access.StateEnabled {
			fmt.Fprintf(&b, "%-18s [%s]\n", cv.Name, cv.State)
			continue
		}
		fmt.Fprintf(&b, "%-18s [%s] %s\n", cv.Name, cv.Card.CardStatus(), cv.Card.CardSummary())
		for _, line := range details(cv.Card) {
			fmt.Fprintf(&b, "%-18s   %s\n", "", line)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func details(card insights.Card) []string {
	switch c := card.(type) {
	case insights.SentimentTimeline:
		lines := make([]string, 0, len(c.WeeklyPoints)+1)
		for _, p := range c.WeeklyPoints {
			lines = append(lines, fmt.Sprintf("%-12s %s (%s entries)", p.Label, formatScore(p.Average), humanize.Comma(int64(p.Entries))))
		}
		return append(lines, fmt.Sprintf("month over month %+.2f (%s)", c.MonthlyDelta, c.Direction))
	case insights.MoodPatterns:
		return []string{c.DayPattern, c.TimePattern}
	case insights.StreakQuality:
		return []string{fmt.Sprintf("consistency %d%%, %d of %d days, longest gap %d days",
			c.ConsistencyScore, c.EntriesInLast30Days, insights.StreakWindowDays, c.LongestGapDays)}
	case insights.EarlyWarning:
		return []string{fmt.Sprintf("level %s", c.Level), c.Prompt}
	case insights.WeeklyReflection:
		return []string{c.Prompt}
	case insights.ComparePeriods:
		return []string{fmt.Sprintf("delta %+.2f (%s)", c.SentimentDelta, c.Direction)}
	}
	return nil
}

func formatScore(v *float64) string {
	if v == nil {
		return "   -"
	}
	return fmt.Sprintf("%+.2f", *v)
}
