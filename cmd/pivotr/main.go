package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pivotr-org/pivotr/catalog"
	"github.com/pivotr-org/pivotr/engine"
	"github.com/pivotr-org/pivotr/source"
)

// ============================================================================
// PIVOTR CLI — run a pivot configuration against a CSV or SQLite dataset
// ============================================================================

const version = "0.1.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	filePath := flag.String("file", "", "Path to CSV data file")
	dbPath := flag.String("db", "", "Path to SQLite database (use with --table)")
	table := flag.String("table", "", "SQLite table to load")
	catalogPath := flag.String("catalog", "", "Path to catalog JSON (auto-discovered from CSV if omitted)")
	configPath := flag.String("config", "", "Path to pivot configuration JSON")
	where := flag.String("where", "", "Boolean expression to pre-select records")
	page := flag.Int("page", 1, "Page number (1-based)")
	pageSize := flag.Int("page-size", 25, "Rows per page")
	format := flag.String("format", "table", "Output format: table, csv, json, pretty")
	outFile := flag.String("out", "", "Write output to file instead of stdout")
	discover := flag.Bool("discover", false, "Print the auto-detected catalog and exit")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	showVersion := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `pivotr — tabular aggregation for flat transaction data

Usage:
  pivotr --file trades.csv --config pivot.json --format table
  pivotr --db trades.db --table transactions --catalog fields.json --config pivot.json
  pivotr --file trades.csv --discover --format pretty
  pivotr --file trades.csv --config pivot.json --where 'stk_code == "BBCA"'

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Formats:
  table     Aligned text table (default)
  csv       Table data as CSV
  json      Full result JSON
  pretty    Pretty-printed result JSON
`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("pivotr %s\n", version)
		return nil
	}

	zerolog.TimeFieldFormat = time.RFC3339
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if *verbose {
		logger = logger.Level(zerolog.DebugLevel)
	} else {
		logger = logger.Level(zerolog.InfoLevel)
	}

	if *filePath == "" && (*dbPath == "" || *table == "") {
		flag.Usage()
		return fmt.Errorf("either --file or --db with --table is required")
	}

	writer := os.Stdout
	if *outFile != "" {
		f, err := os.Create(*outFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		writer = f
	}

	// ── Catalog ───────────────────────────────────────────────────────────
	var cat catalog.Catalog
	switch {
	case *catalogPath != "":
		data, err := os.ReadFile(*catalogPath)
		if err != nil {
			return fmt.Errorf("failed to read catalog file: %w", err)
		}
		if err := json.Unmarshal(data, &cat); err != nil {
			return fmt.Errorf("failed to parse catalog JSON: %w", err)
		}
	case *filePath != "":
		data, err := os.ReadFile(*filePath)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		cat, err = catalog.DiscoverFromCSV(data)
		if err != nil {
			return fmt.Errorf("catalog discovery failed: %w", err)
		}
		logger.Info().Int("fields", cat.Len()).Msg("catalog discovered from CSV")
	default:
		return fmt.Errorf("--catalog is required when loading from SQLite")
	}

	if *discover {
		return writeJSON(writer, cat, *format)
	}

	if *configPath == "" {
		flag.Usage()
		return fmt.Errorf("--config is required (or use --discover)")
	}

	// ── Records ───────────────────────────────────────────────────────────
	var records []engine.Record
	if *filePath != "" {
		data, err := os.ReadFile(*filePath)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		records, err = source.ParseCSV(data, cat)
		if err != nil {
			return fmt.Errorf("failed to parse CSV records: %w", err)
		}
	} else {
		db, err := source.OpenSQLite(*dbPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		records, err = db.LoadRecords(*table, cat)
		if err != nil {
			return fmt.Errorf("failed to load records: %w", err)
		}
	}
	logger.Info().Int("records", len(records)).Msg("records loaded")

	if *where != "" {
		selected, err := source.Select(records, *where)
		if err != nil {
			return fmt.Errorf("selection failed: %w", err)
		}
		logger.Info().Int("records", len(selected)).Str("where", *where).Msg("records selected")
		records = selected
	}

	// ── Configuration ─────────────────────────────────────────────────────
	cfgData, err := os.ReadFile(*configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	var cfg engine.Configuration
	if err := json.Unmarshal(cfgData, &cfg); err != nil {
		return fmt.Errorf("failed to parse config JSON: %w", err)
	}

	// ── Execute ───────────────────────────────────────────────────────────
	view := engine.NewSliceView(records)
	result, err := engine.Execute(view, cat, cfg,
		engine.PageRequest{Number: *page, Size: *pageSize},
		engine.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}
	for _, w := range result.Warnings {
		logger.Warn().Msg(w)
	}

	// ── Render ────────────────────────────────────────────────────────────
	switch *format {
	case "csv":
		return writeTableCSV(writer, engine.BuildTable(result, cfg, cat))
	case "table":
		writeTableText(writer, engine.BuildTable(result, cfg, cat), result)
		return nil
	default:
		return writeJSON(writer, result, *format)
	}
}

// ============================================================================
// OUTPUT
// ============================================================================

func writeTableCSV(w *os.File, table *engine.TableData) error {
	cw := csv.NewWriter(w)

	headers := make([]string, 0, len(table.Columns))
	for _, c := range table.Columns {
		headers = append(headers, c.Label)
	}
	cw.Write(headers)
	for _, row := range table.Rows {
		cw.Write(row)
	}
	cw.Flush()
	return cw.Error()
}

func writeTableText(w *os.File, table *engine.TableData, result *engine.Result) {
	widths := make([]int, len(table.Columns))
	for i, c := range table.Columns {
		widths[i] = len(c.Label)
	}
	for _, row := range table.Rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var sb strings.Builder
	for i, c := range table.Columns {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(pad(c.Label, widths[i], c.Align == "right"))
	}
	fmt.Fprintln(w, sb.String())

	for _, row := range table.Rows {
		sb.Reset()
		for i, cell := range row {
			if i > 0 {
				sb.WriteString("  ")
			}
			align := false
			if i < len(table.Columns) {
				align = table.Columns[i].Align == "right"
			}
			sb.WriteString(pad(cell, widths[i], align))
		}
		fmt.Fprintln(w, sb.String())
	}

	fmt.Fprintf(w, "\nPage %d/%d — %d rows total\n",
		result.PageNumber, result.TotalPages, result.TotalRows)
}

func pad(s string, width int, right bool) string {
	if len(s) >= width {
		return s
	}
	fill := strings.Repeat(" ", width-len(s))
	if right {
		return fill + s
	}
	return s + fill
}

func writeJSON(w *os.File, v any, format string) error {
	var out []byte
	var err error
	if format == "pretty" {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Fprintln(w, string(out))
	return nil
}
