package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spektr-org/lookbook/catalog"
	"github.com/spektr-org/lookbook/config"
	"github.com/spektr-org/lookbook/engine"
	"github.com/spektr-org/lookbook/report"
	"github.com/spektr-org/lookbook/schema"
	"github.com/spektr-org/lookbook/store"
	"github.com/spektr-org/lookbook/tools"
)

// ============================================================================
// LOOKBOOK CLI — SHEGLAM catalog dashboard
// ============================================================================

const version = "0.1.0"

func main() {
	// ── Flags ─────────────────────────────────────────────────────────────
	filePath := flag.String("file", "", "Path to product catalog CSV (or set source in --config)")
	configPath := flag.String("config", "", "Path to YAML dashboard config")
	categories := flag.String("categories", "", "Comma-separated categories to show (default: all)")
	minStars := flag.Float64("min-stars", -1, "Rating threshold for the top-rated table (default 4.5)")
	top := flag.Int("top", -1, "Number of top-rated products (default 10)")
	catalogStats := flag.Bool("catalog-stats", false, "Compute statistics over the whole catalog instead of the selection")
	format := flag.String("format", "json", "Output format: json, pretty, text, csv, html")
	outFile := flag.String("out", "", "Write output to file instead of stdout")
	sqlitePath := flag.String("sqlite", "", "Also store the run in this SQLite snapshot database")
	listCategories := flag.Bool("list-categories", false, "Print the catalog's categories and exit")
	profile := flag.Bool("profile", false, "Print a column profile of the file as JSON and exit (works on files that fail to load)")
	serveMCP := flag.Bool("mcp", false, "Serve the dashboard operations as MCP tools over stdio")
	showVersion := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Lookbook — SHEGLAM catalog dashboard

Usage:
  lookbook --file sheglam.csv --format text
  lookbook --file sheglam.csv --categories "Lips,Eyes" --format html --out dashboard.html
  lookbook --config lookbook.yaml --sqlite snapshots.db
  lookbook --file sheglam.csv --mcp
  lookbook --file broken.csv --profile

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Formats:
  json      Full JSON report (default)
  pretty    Pretty-printed JSON
  text      Aligned plain-text tables
  csv       Every table and chart series as CSV blocks (ready for Sheets/Excel)
  html      Standalone HTML page
`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("lookbook %s\n", version)
		os.Exit(0)
	}

	// ── Config ────────────────────────────────────────────────────────────
	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
		log.Printf("📋 Loaded config: %s", *configPath)
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "file":
			cfg.Source = *filePath
		case "categories":
			cfg.Categories = splitList(*categories)
		case "min-stars":
			cfg.TopRated.MinStars = *minStars
		case "top":
			cfg.TopRated.Limit = *top
		case "catalog-stats":
			cfg.CatalogStats = *catalogStats
		case "sqlite":
			cfg.Export.SQLite = *sqlitePath
		}
	})
	if err := cfg.Validate(); err != nil {
		fatalf("Invalid settings: %v", err)
	}

	if cfg.Source == "" {
		fmt.Fprintln(os.Stderr, "Error: --file (or source in --config) is required")
		flag.Usage()
		os.Exit(1)
	}

	outFormat, err := report.ParseFormat(*format)
	if err != nil {
		fatalf("%v", err)
	}

	// ── Output writer ─────────────────────────────────────────────────────
	writer := os.Stdout
	if *outFile != "" {
		f, err := os.Create(*outFile)
		if err != nil {
			fatalf("Failed to create output file: %v", err)
		}
		output = f
		defer closeOutput()
		writer = f
	}

	// ── Profile mode ──────────────────────────────────────────────────────
	if *profile {
		data, err := os.ReadFile(cfg.Source)
		if err != nil {
			fatalf("Failed to read file: %v", err)
		}
		p, err := cfg.Schema().ProfileCSV(data, schema.ProfileOptions{Comma: cfg.Comma()})
		if err != nil {
			fatalf("Profile failed: %v", err)
		}
		out, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			fatalf("Failed to encode profile: %v", err)
		}
		fmt.Fprintln(writer, string(out))
		log.Printf("🔍 Profiled %d rows, %d columns", p.Rows, len(p.Columns))
		return
	}

	// ── Load catalog ──────────────────────────────────────────────────────
	cat, err := catalog.Load(cfg.Source, cfg.CatalogOptions()...)
	if err != nil {
		fatalf("Failed to load catalog: %v", err)
	}

	// ── MCP mode ──────────────────────────────────────────────────────────
	if *serveMCP {
		srv, err := tools.NewServer(tools.ServerConfig{
			Catalog:     cat,
			Source:      cfg.Source,
			Version:     version,
			Collections: cfg.Collections,
			Options:     cfg.EngineOptions(),
		})
		if err != nil {
			fatalf("Failed to start MCP server: %v", err)
		}
		log.Printf("🔌 Serving %d products over MCP (stdio)", cat.Len())
		if err := tools.ServeStdio(srv); err != nil {
			fatalf("MCP server stopped: %v", err)
		}
		return
	}

	if *listCategories {
		fmt.Fprintln(writer, strings.Join(cat.Categories(), "\n"))
		return
	}

	// ── Build dashboard ───────────────────────────────────────────────────
	selection := cfg.Selection(cat.Categories())
	d, err := engine.Build(cat.View(), selection, cfg.EngineOptions()...)
	if err != nil {
		fatalf("Dashboard failed: %v", err)
	}
	rep := report.NewBuilder().Build(cfg.Source, d)

	if cfg.Export.SQLite != "" {
		if err := store.Export(context.Background(), cfg.Export.SQLite, rep, cat.View()); err != nil {
			fatalf("Failed to write snapshot: %v", err)
		}
		log.Printf("💾 Snapshot %s stored in %s", rep.ID, cfg.Export.SQLite)
	}

	// ── Render output ─────────────────────────────────────────────────────
	if err := report.Write(writer, rep, outFormat); err != nil {
		fatalf("Failed to write %s output: %v", outFormat, err)
	}
	if *outFile != "" {
		log.Printf("📄 %s written to %s", strings.ToUpper(string(outFormat)), *outFile)
	}
}

// ============================================================================
// HELPERS
// ============================================================================

// splitList turns "Lips, Eyes" into [Lips Eyes]; an empty flag selects nothing.
func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// output is the --out file, if any. os.Exit skips deferred calls, so fatalf
// closes it too.
var output *os.File

// closeOutput closes the --out file once; a failed close is fatal.
func closeOutput() {
	if output == nil {
		return
	}
	f := output
	output = nil
	if err := f.Close(); err != nil {
		fatalf("Failed to close output file: %v", err)
	}
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	closeOutput()
	os.Exit(1)
}
