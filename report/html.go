package report

import (
	"fmt"
	"io"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/spektr-org/lookbook/engine"
)

// ============================================================================
// HTML OUTPUT — standalone page, one <section> per table
// ============================================================================
// The page is built as a node tree and serialized by html.Render, so every
// product name and label is escaped by the renderer.
// ============================================================================

const pageStyle = `body{font-family:system-ui,sans-serif;margin:2rem;color:#222}
table{border-collapse:collapse;margin-bottom:1.5rem}
th,td{border:1px solid #ddd;padding:.3rem .6rem}
th{background:#fbe3ec}
td.right{text-align:right}
p.meta{color:#666}`

func writeHTML(w io.Writer, r *Report) error {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := elem(atom.Html, attr("lang", "en"))
	doc.AppendChild(root)

	head := elem(atom.Head)
	head.AppendChild(elem(atom.Meta, attr("charset", "utf-8")))
	head.AppendChild(withText(elem(atom.Title), "Lookbook "+r.ID))
	head.AppendChild(withText(elem(atom.Style), pageStyle))
	root.AppendChild(head)

	body := elem(atom.Body)
	root.AppendChild(body)

	body.AppendChild(withText(elem(atom.H1), "SHEGLAM Lookbook"))
	body.AppendChild(withText(elem(atom.P, attr("class", "meta")), fmt.Sprintf(
		"Report %s · %s · generated %s · categories: %s · %d products shown",
		r.ID, r.Source, r.GeneratedAt.Format(time.RFC3339),
		selectionLabel(r.Dashboard.Selection), r.Dashboard.Main.FilteredCount)))

	for _, t := range r.Tables {
		body.AppendChild(tableSection(t))
	}

	if err := html.Render(w, doc); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

func tableSection(t *engine.TableData) *html.Node {
	section := elem(atom.Section)
	section.AppendChild(withText(elem(atom.H2), t.Title))

	table := elem(atom.Table)
	section.AppendChild(table)

	thead := elem(atom.Thead)
	hr := elem(atom.Tr)
	for _, c := range t.Columns {
		hr.AppendChild(withText(elem(atom.Th, attr("scope", "col")), c.Label))
	}
	thead.AppendChild(hr)
	table.AppendChild(thead)

	tbody := elem(atom.Tbody)
	for _, row := range t.Rows {
		tr := elem(atom.Tr)
		for i, cell := range row {
			td := elem(atom.Td)
			if i < len(t.Columns) && t.Columns[i].Align == "right" {
				td.Attr = append(td.Attr, attr("class", "right"))
			}
			tr.AppendChild(withText(td, cell))
		}
		tbody.AppendChild(tr)
	}
	if len(t.Rows) == 0 {
		tr := elem(atom.Tr)
		tr.AppendChild(withText(elem(atom.Td, attr("colspan", fmt.Sprint(len(t.Columns)))), "No data"))
		tbody.AppendChild(tr)
	}
	table.AppendChild(tbody)

	if t.Summary != nil {
		tfoot := elem(atom.Tfoot)
		tr := elem(atom.Tr)
		tr.AppendChild(withText(elem(atom.Td), t.Summary.Label))
		tr.AppendChild(withText(elem(atom.Td, attr("colspan", fmt.Sprint(max(len(t.Columns)-1, 1)))), t.Summary.Values["count"]))
		tfoot.AppendChild(tr)
		table.AppendChild(tfoot)
	}
	return section
}

func elem(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func withText(n *html.Node, s string) *html.Node {
	n.AppendChild(&html.Node{Type: html.TextNode, Data: s})
	return n
}
