// Package lookbook builds a catalog dashboard for a cosmetics product list.
//
// Usage:
//
//	import (
//	    "github.com/spektr-org/lookbook/catalog"
//	    "github.com/spektr-org/lookbook/engine"
//	)
//
//	cat, err := catalog.Load("sheglam.csv")
//	d, err := engine.Build(cat.View(), []string{"Lips", "Eyes"},
//	    engine.WithMinStars(4.5),
//	    engine.WithCollections([]string{"Harry Potter", "Care Bears"}),
//	)
//
// The catalog package reads and validates the product file, the engine
// computes every dashboard section over a zero-copy view of it, and the
// report package renders the result as JSON, text, CSV or HTML.
//
// Snapshots of a run can be stored in SQLite (store package), and the same
// operations are exposed as MCP tools (tools package) for assistants.
// All computation is local.
package lookbook
