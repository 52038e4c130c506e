package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/net/html"

	"github.com/spektr-org/lookbook/catalog"
	"github.com/spektr-org/lookbook/engine"
)

const sampleCSV = `Name,Category,Subcategory,Price,Stars,Best Seller
Hydrating Lip Balm,Lips,Lip Care,$8.00,4.8,0
Volume Mascara,Eyes,Mascara,$12.50,4.9,1
"Harry Potter | SHEGLAM 2.0 Mini Palette",Eyes,Eyeshadow,$18.00,4.9,1
Care Bears Blush <Limited>,Face,Blush,$9.00,4.7,0
Loose Powder,Face,,,4.0,0
`

func sampleReport(t *testing.T, selection []string) *Report {
	t.Helper()
	cat, err := catalog.Parse(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("catalog.Parse: %v", err)
	}
	d, err := engine.Build(cat.View(), selection)
	if err != nil {
		t.Fatalf("engine.Build: %v", err)
	}
	b := NewBuilder()
	b.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return b.Build("sheglam.csv", d)
}

func TestBuilderIDs(t *testing.T) {
	b := NewBuilder()
	d, err := engine.Build(catalog.FromProducts(nil).View(), nil)
	if err != nil {
		t.Fatal(err)
	}

	first := b.Build("a.csv", d)
	second := b.Build("a.csv", d)
	if _, err := ulid.ParseStrict(first.ID); err != nil {
		t.Errorf("invalid ULID %q: %v", first.ID, err)
	}
	if first.ID >= second.ID {
		t.Errorf("IDs should be increasing: %s then %s", first.ID, second.ID)
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"json", "PRETTY", " text ", "csv", "html"} {
		if _, err := ParseFormat(s); err != nil {
			t.Errorf("ParseFormat(%q): %v", s, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected error for xml")
	}
}

func TestWriteJSON(t *testing.T) {
	r := sampleReport(t, []string{"Lips", "Eyes", "Face"})
	var buf bytes.Buffer
	if err := Write(&buf, r, FormatJSON); err != nil {
		t.Fatalf("Write: %v", err)
	}

	var decoded struct {
		ID        string `json:"id"`
		Source    string `json:"source"`
		Dashboard struct {
			Main struct {
				FilteredCount int `json:"filteredCount"`
				Products      []struct {
					Price *float64 `json:"price"`
				} `json:"products"`
			} `json:"main"`
		} `json:"dashboard"`
		Tables []json.RawMessage `json:"tables"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if decoded.ID != r.ID || decoded.Source != "sheglam.csv" {
		t.Errorf("envelope lost: %+v", decoded)
	}
	if decoded.Dashboard.Main.FilteredCount != 5 {
		t.Errorf("filteredCount = %d", decoded.Dashboard.Main.FilteredCount)
	}
	if decoded.Dashboard.Main.Products[4].Price != nil {
		t.Error("missing price should encode as null")
	}
	if len(decoded.Tables) != 14 {
		t.Errorf("tables = %d, want 14", len(decoded.Tables))
	}
}

func TestWritePretty(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleReport(t, nil), FormatPretty); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\n  \"id\"") {
		t.Error("pretty output should be indented")
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleReport(t, nil), FormatText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Categories: (none)", "Products shown: 0", "(no data)", "Products vs Best Sellers by Collection"} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q", want)
		}
	}
}

func TestWriteCSV(t *testing.T) {
	r := sampleReport(t, []string{"Eyes"})
	var buf bytes.Buffer
	if err := Write(&buf, r, FormatCSV); err != nil {
		t.Fatal(err)
	}

	reader := csv.NewReader(&buf)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("output is not CSV: %v", err)
	}
	if records[0][0] != "Filtered Products" {
		t.Errorf("first block title = %q", records[0][0])
	}
	if records[1][0] != "Name" || records[2][0] != "Volume Mascara" {
		t.Errorf("listing block = %v", records[:3])
	}

	titles := map[string]bool{}
	for _, rec := range records {
		if len(rec) == 1 {
			titles[rec[0]] = true
		}
	}
	for _, tbl := range r.Tables {
		if !titles[tbl.Title] {
			t.Errorf("table %q missing from CSV", tbl.Title)
		}
	}
	if !titles["Total vs Best Sellers by Collection"] {
		t.Error("collection chart missing from CSV")
	}
}

func TestWriteHTML(t *testing.T) {
	r := sampleReport(t, []string{"Face"})
	var buf bytes.Buffer
	if err := Write(&buf, r, FormatHTML); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "<!DOCTYPE html>") {
		t.Errorf("missing doctype: %.40q", out)
	}
	if strings.Contains(out, "<Limited>") {
		t.Error("product names must be escaped")
	}

	doc, err := html.Parse(strings.NewReader(out))
	if err != nil {
		t.Fatalf("output does not parse: %v", err)
	}
	tables := 0
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "table" {
			tables++
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	if tables != len(r.Tables) {
		t.Errorf("html tables = %d, want %d", tables, len(r.Tables))
	}
}

func TestFmtNum(t *testing.T) {
	if got := fmtNum(3); got != "3" {
		t.Errorf("fmtNum(3) = %q", got)
	}
	if got := fmtNum(8.333); got != "8.33" {
		t.Errorf("fmtNum(8.333) = %q", got)
	}
}
