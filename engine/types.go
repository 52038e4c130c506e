package engine

// ============================================================================
// LOOKBOOK ENGINE TYPES
// ============================================================================
// The engine reads catalog rows through RecordView using the column keys
// below. The catalog package binds its Product struct to these keys.
//
// Dependency: engine has ZERO external dependencies.
// ============================================================================

// Column keys shared by the catalog binding and the engine.
const (
	KeyName        = "name"
	KeyCategory    = "category"
	KeySubcategory = "subcategory"
	KeyPrice       = "price"
	KeyStars       = "stars"
	KeyBestSeller  = "best_seller"
	KeyCollection  = "collection"
)

// ============================================================================
// FILTERS
// ============================================================================

// Filters define which records to include.
// Keys are dimension names. Values are allowed values.
// OR within a dimension, AND across dimensions.
//
// A nil Dimensions map means "no restriction". A dimension that is present
// with no allowed values matches nothing: an empty selection is an empty view.
type Filters struct {
	Dimensions map[string][]string `json:"dimensions"`
}

// HasFilter returns true if a dimension is constrained.
func (f Filters) HasFilter(dimension string) bool {
	if f.Dimensions == nil {
		return false
	}
	_, ok := f.Dimensions[dimension]
	return ok
}

// IsEmpty returns true if no dimension is constrained.
func (f Filters) IsEmpty() bool {
	return len(f.Dimensions) == 0
}

// ============================================================================
// GROUP — Intermediate computation result
// ============================================================================

// Group represents a grouped/aggregated result.
// Value is the figure the group is ranked by (a count or a mean); Means holds
// per-column means for GroupMean.
type Group struct {
	Key   string                       `json:"key"`
	Label string                       `json:"label"`
	Value float64                      `json:"-"` // ranking figure; NaN when the mean is absent
	Count int                          `json:"count"`
	Means map[string]Optional[float64] `json:"means,omitempty"`
	Sub   []Group                      `json:"sub,omitempty"`
	View  RecordView                   `json:"-"` // Sub-view for records in this group (zero-copy)
}

// Mean returns the group mean for a column, if computed and present.
func (g Group) Mean(column string) (float64, bool) {
	if g.Means == nil {
		return 0, false
	}
	return g.Means[column].Get()
}

// ============================================================================
// STATISTICS
// ============================================================================

// ColumnStats is a describe()-style summary of one numeric column.
// Undefined statistics (empty column, std of a single value) are absent.
type ColumnStats struct {
	Column string            `json:"column"`
	Count  int               `json:"count"`
	Mean   Optional[float64] `json:"mean"`
	Std    Optional[float64] `json:"std"`
	Min    Optional[float64] `json:"min"`
	Q25    Optional[float64] `json:"q25"`
	Median Optional[float64] `json:"median"`
	Q75    Optional[float64] `json:"q75"`
	Max    Optional[float64] `json:"max"`
}

// PartitionStats holds the mean price and rating of one best-seller partition.
type PartitionStats struct {
	Label     string            `json:"label"`
	Count     int               `json:"count"`
	MeanPrice Optional[float64] `json:"meanPrice"`
	MeanStars Optional[float64] `json:"meanStars"`
}

// Comparison contrasts regular products with best sellers.
type Comparison struct {
	Regular    PartitionStats `json:"regular"`
	BestSeller PartitionStats `json:"bestSeller"`
}

// CollectionTotals holds parallel series keyed by collection label.
type CollectionTotals struct {
	Labels      []string `json:"labels"`
	Total       []int    `json:"total"`
	BestSellers []int    `json:"bestSellers"`
}

// Bin is one histogram bucket, [Lower, Upper) except the last which is closed.
type Bin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// ProductRow is a flattened catalog row for listings and rankings.
type ProductRow struct {
	Name        Optional[string]  `json:"name"`
	Category    Optional[string]  `json:"category"`
	Subcategory Optional[string]  `json:"subcategory"`
	Price       Optional[float64] `json:"price"`
	Stars       Optional[float64] `json:"stars"`
	BestSeller  int               `json:"bestSeller"`
	Collection  Optional[string]  `json:"collection"`
}

// WordCount is one word of the product-name vocabulary.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// TextData is the dashboard headline.
type TextData struct {
	Reply      string   `json:"reply"`
	Count      int      `json:"count"`
	Total      int      `json:"total"`
	Categories []string `json:"categories"`
}

// ============================================================================
// CHART TYPES — series data only; styling is left to the renderer
// ============================================================================

// ChartConfig describes the data behind one chart.
type ChartConfig struct {
	ChartType string        `json:"chartType"`
	Title     string        `json:"title"`
	XAxis     string        `json:"xAxis,omitempty"`
	YAxis     string        `json:"yAxis,omitempty"`
	Series    []ChartSeries `json:"series"`
}

// ChartSeries represents a data series in a chart.
type ChartSeries struct {
	Name string       `json:"name"`
	Data []ChartPoint `json:"data"`
}

// ChartPoint represents a single data point.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ============================================================================
// TABLE TYPES
// ============================================================================

// TableData defines how to render a table.
type TableData struct {
	Title   string     `json:"title"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Summary *Summary   `json:"summary,omitempty"`
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // "text", "number", "currency"
	Align string `json:"align"` // "left", "center", "right"
}

// Summary provides totals for a table.
type Summary struct {
	Label  string            `json:"label"`
	Values map[string]string `json:"values"`
}
