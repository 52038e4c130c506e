package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spektr-org/lookbook/engine"
)

// ============================================================================
// JSON OUTPUT
// ============================================================================

func writeJSON(w io.Writer, r *Report, pretty bool) error {
	var out []byte
	var err error

	if pretty {
		out, err = json.MarshalIndent(r, "", "  ")
	} else {
		out, err = json.Marshal(r)
	}
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// ============================================================================
// TEXT OUTPUT
// ============================================================================

func writeText(w io.Writer, r *Report) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Lookbook report %s\n", r.ID)
	fmt.Fprintf(&b, "Source: %s\n", r.Source)
	fmt.Fprintf(&b, "Generated: %s\n", r.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "Categories: %s\n", selectionLabel(r.Dashboard.Selection))
	fmt.Fprintf(&b, "Products shown: %d\n", r.Dashboard.Main.FilteredCount)

	for _, t := range r.Tables {
		b.WriteString("\n")
		b.WriteString(engine.TableText(t))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func selectionLabel(selection []string) string {
	if len(selection) == 0 {
		return "(none)"
	}
	return strings.Join(selection, ", ")
}

// ============================================================================
// CSV OUTPUT — every table, then every chart's series, as Sheets-ready blocks
// ============================================================================

func writeCSV(w io.Writer, r *Report) error {
	cw := csv.NewWriter(w)

	for _, t := range r.Tables {
		writeTableCSV(cw, t)
		cw.Write(nil)
	}
	for _, c := range r.Charts {
		writeChartCSV(cw, c)
		cw.Write(nil)
	}

	cw.Flush()
	return cw.Error()
}

func writeTableCSV(cw *csv.Writer, t *engine.TableData) {
	cw.Write([]string{t.Title})

	headers := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		headers[i] = c.Label
	}
	cw.Write(headers)
	for _, row := range t.Rows {
		cw.Write(row)
	}
}

func writeChartCSV(cw *csv.Writer, chart *engine.ChartConfig) {
	xLabel := chart.XAxis
	yLabel := chart.YAxis
	if xLabel == "" {
		xLabel = "Label"
	}
	if yLabel == "" {
		yLabel = "Value"
	}

	cw.Write([]string{chart.Title})

	// Single series → two columns
	if len(chart.Series) == 1 {
		cw.Write([]string{xLabel, yLabel})
		for _, d := range chart.Series[0].Data {
			cw.Write([]string{d.Label, fmtNum(d.Value)})
		}
		return
	}

	// Multi-series → label + one column per series, aligned by label
	headers := []string{xLabel}
	var labels []string
	seen := map[string]bool{}
	for _, s := range chart.Series {
		headers = append(headers, s.Name)
		for _, d := range s.Data {
			if !seen[d.Label] {
				seen[d.Label] = true
				labels = append(labels, d.Label)
			}
		}
	}
	cw.Write(headers)

	for _, label := range labels {
		row := []string{label}
		for _, s := range chart.Series {
			row = append(row, seriesValue(s, label))
		}
		cw.Write(row)
	}
}

func seriesValue(s engine.ChartSeries, label string) string {
	for _, d := range s.Data {
		if d.Label == label {
			return fmtNum(d.Value)
		}
	}
	return ""
}

// fmtNum prints whole numbers without decimals and everything else with two.
func fmtNum(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
