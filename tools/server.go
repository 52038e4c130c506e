// Package tools exposes the lookbook dashboard operations as Model Context
// Protocol tools over a single loaded catalog. Every tool is read-only and
// returns indented JSON.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/spektr-org/lookbook/catalog"
	"github.com/spektr-org/lookbook/engine"
)

// ServerConfig holds configuration for the MCP server.
type ServerConfig struct {
	Catalog     *catalog.Catalog
	Source      string
	Version     string          // version string for MCP server info
	Collections []string        // ordered collection list; nil uses the defaults
	Options     []engine.Option // passed to every dashboard build
}

// The catalog never changes after load, so handlers share it without locking.
type handler struct {
	cat    *catalog.Catalog
	source string
	opts   []engine.Option
	tagger *engine.Tagger
}

// NewServer creates a configured MCP server with every lookbook tool.
func NewServer(cfg ServerConfig) (*server.MCPServer, error) {
	if cfg.Catalog == nil {
		return nil, fmt.Errorf("tools: catalog is required")
	}
	ver := cfg.Version
	if ver == "" {
		ver = "dev"
	}
	names := cfg.Collections
	if names == nil {
		names = engine.DefaultCollections
	}
	tagger, err := engine.NewTagger(names)
	if err != nil {
		return nil, err
	}

	h := &handler{
		cat:    cfg.Catalog,
		source: cfg.Source,
		opts:   append(append([]engine.Option{}, cfg.Options...), engine.WithCollections(names)),
		tagger: tagger,
	}

	s := server.NewMCPServer(
		"Lookbook",
		ver,
		server.WithToolCapabilities(false),
	)

	h.registerCategoriesTool(s)
	h.registerSummaryTool(s)
	h.registerGroupMeanTool(s)
	h.registerBestSellersTool(s)
	h.registerBestVsRegularTool(s)
	h.registerTopRatedTool(s)
	h.registerCollectionsTool(s)
	h.registerMatchCollectionTool(s)
	h.registerDashboardTool(s)

	return s, nil
}

// ServeStdio runs the server on stdin/stdout until the client disconnects.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

// --- Arguments ---

func categoriesArg() mcp.ToolOption {
	return mcp.WithString("categories",
		mcp.Description("Comma-separated categories to include (e.g. 'Lips,Eyes'). Omit to include every category; an empty string selects nothing."),
	)
}

func groupByArg() mcp.ToolOption {
	return mcp.WithString("group_by",
		mcp.Description("Grouping column: category or subcategory (default: category)"),
		mcp.Enum(engine.KeyCategory, engine.KeySubcategory),
	)
}

// selection reads the categories argument. Absent means every category.
func (h *handler) selection(req mcp.CallToolRequest) []string {
	raw, err := req.RequireString("categories")
	if err != nil {
		return h.cat.Categories()
	}
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func groupBy(req mcp.CallToolRequest) (string, error) {
	key, err := req.RequireString("group_by")
	if err != nil || key == "" {
		return engine.KeyCategory, nil
	}
	if key != engine.KeyCategory && key != engine.KeySubcategory {
		return "", fmt.Errorf("group_by must be category or subcategory, got %q", key)
	}
	return key, nil
}

func (h *handler) filtered(req mcp.CallToolRequest) engine.RecordView {
	return engine.SelectCategories(h.cat.View(), h.selection(req))
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func readOnly(name, description string, opts ...mcp.ToolOption) mcp.Tool {
	base := []mcp.ToolOption{
		mcp.WithDescription(description),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	}
	return mcp.NewTool(name, append(base, opts...)...)
}

// --- Tools ---

func (h *handler) registerCategoriesTool(s *server.MCPServer) {
	tool := readOnly("lookbook_categories",
		"List the distinct product categories in the catalog, in first-seen order.")

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return jsonResult(map[string]any{
			"source":     h.source,
			"products":   h.cat.Len(),
			"categories": h.cat.Categories(),
		})
	})
}

func (h *handler) registerSummaryTool(s *server.MCPServer) {
	tool := readOnly("lookbook_summary_stats",
		"Descriptive statistics (count, mean, std, min, quartiles, max) of price and stars for the selected categories.",
		categoriesArg(),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return jsonResult(engine.SummaryStats(h.filtered(req), []string{engine.KeyPrice, engine.KeyStars}))
	})
}

func (h *handler) registerGroupMeanTool(s *server.MCPServer) {
	tool := readOnly("lookbook_group_mean",
		"Average price and stars per category or subcategory, rounded to 2 decimals, in ascending key order.",
		categoriesArg(),
		groupByArg(),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		key, err := groupBy(req)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(engine.GroupMean(h.filtered(req), key, []string{engine.KeyPrice, engine.KeyStars}))
	})
}

func (h *handler) registerBestSellersTool(s *server.MCPServer) {
	tool := readOnly("lookbook_best_seller_breakdown",
		"Count best-seller products per category or subcategory, highest first.",
		categoriesArg(),
		groupByArg(),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		key, err := groupBy(req)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(engine.BestSellerBreakdown(h.filtered(req), key))
	})
}

func (h *handler) registerBestVsRegularTool(s *server.MCPServer) {
	tool := readOnly("lookbook_best_vs_regular",
		"Compare mean price and stars of best sellers against regular products.",
		categoriesArg(),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return jsonResult(engine.BestVsRegular(h.filtered(req)))
	})
}

func (h *handler) registerTopRatedTool(s *server.MCPServer) {
	tool := readOnly("lookbook_top_rated",
		"Highest-rated products at or above a star threshold, cheapest first among equal ratings.",
		categoriesArg(),
		mcp.WithNumber("min_stars",
			mcp.Description("Minimum star rating, inclusive (default: 4.5)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of products (default: 10, max: 100)"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		minStars := 4.5
		if v, err := req.RequireFloat("min_stars"); err == nil {
			if v < 0 || v > 5 {
				return mcp.NewToolResultError("min_stars must be between 0 and 5"), nil
			}
			minStars = v
		}
		limit := 10
		if v, err := req.RequireFloat("limit"); err == nil {
			limit = int(v)
			if limit > 100 {
				limit = 100
			}
		}
		return jsonResult(engine.Rows(engine.TopRated(h.filtered(req), minStars, limit)))
	})
}

func (h *handler) registerCollectionsTool(s *server.MCPServer) {
	tool := readOnly("lookbook_collections",
		"Average price (most expensive first) and product/best-seller counts per collection across the whole catalog.")

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		labeled := h.tagger.Tag(h.cat.View()).Labeled()
		return jsonResult(map[string]any{
			"collections": h.tagger.Labels(),
			"tagged":      labeled.Len(),
			"avgPrice":    engine.AvgPricePerCollection(labeled),
			"summary":     engine.CollectionSummary(labeled),
		})
	})
}

func (h *handler) registerMatchCollectionTool(s *server.MCPServer) {
	tool := readOnly("lookbook_match_collection",
		"Return the collection a product name belongs to, if any.",
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Product name to classify"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := req.RequireString("name")
		if err != nil {
			return mcp.NewToolResultError("name is required"), nil
		}
		label, ok := h.tagger.Match(name)
		out := map[string]any{"name": name, "collection": nil}
		if ok {
			out["collection"] = label
		}
		return jsonResult(out)
	})
}

func (h *handler) registerDashboardTool(s *server.MCPServer) {
	tool := readOnly("lookbook_dashboard",
		"Build the full dashboard (main, visualizations and collections views) for the selected categories.",
		categoriesArg(),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		d, err := engine.Build(h.cat.View(), h.selection(req), h.opts...)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("dashboard error: %v", err)), nil
		}
		return jsonResult(d)
	})
}
