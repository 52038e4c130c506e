package report

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/spektr-org/lookbook/engine"
)

// ============================================================================
// REPORT — A rendered dashboard run, ready to write out
// ============================================================================
// A Report wraps one Dashboard with a sortable run ID, the catalog source
// and every table and chart the dashboard produces. Writers only read it.
// ============================================================================

// Report is one dashboard run.
type Report struct {
	ID          string                `json:"id"`
	GeneratedAt time.Time             `json:"generatedAt"`
	Source      string                `json:"source"`
	Dashboard   *engine.Dashboard     `json:"dashboard"`
	Tables      []*engine.TableData   `json:"tables"`
	Charts      []*engine.ChartConfig `json:"charts"`
}

// Builder stamps reports with monotonic ULIDs. Safe for concurrent use.
type Builder struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
	now     func() time.Time
}

// NewBuilder creates a report builder.
func NewBuilder() *Builder {
	return &Builder{
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     time.Now,
	}
}

// Build wraps a dashboard into a report.
func (b *Builder) Build(source string, d *engine.Dashboard) *Report {
	b.mu.Lock()
	now := b.now().UTC()
	id := ulid.MustNew(ulid.Timestamp(now), b.entropy).String()
	b.mu.Unlock()

	return &Report{
		ID:          id,
		GeneratedAt: now,
		Source:      source,
		Dashboard:   d,
		Tables:      d.Tables(),
		Charts:      d.Charts(),
	}
}

// ============================================================================
// FORMATS
// ============================================================================

// Format names an output encoding.
type Format string

const (
	FormatJSON   Format = "json"
	FormatPretty Format = "pretty"
	FormatText   Format = "text"
	FormatCSV    Format = "csv"
	FormatHTML   Format = "html"
)

// Formats lists every supported format.
var Formats = []Format{FormatJSON, FormatPretty, FormatText, FormatCSV, FormatHTML}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (want json, pretty, text, csv or html)", s)
}

// Write renders the report in the given format.
func Write(w io.Writer, r *Report, f Format) error {
	switch f {
	case FormatJSON:
		return writeJSON(w, r, false)
	case FormatPretty:
		return writeJSON(w, r, true)
	case FormatText:
		return writeText(w, r)
	case FormatCSV:
		return writeCSV(w, r)
	case FormatHTML:
		return writeHTML(w, r)
	}
	return fmt.Errorf("unknown format %q", f)
}
