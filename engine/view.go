package engine

// ============================================================================
// RECORD VIEW — Zero-Copy Data Access Interface
// ============================================================================
// The engine never owns catalog data. It reads through this interface.
//
// Implementations:
//   DomainView[T]  — reads typed structs via accessor functions (zero-copy)
//   SubView        — filtered or reordered subset (indices into parent)
//   TaggedView     — wraps any view, adds a derived "collection" dimension
//
// Every accessor reports whether the value is present. A missing category
// and an empty-string category are the same thing; a missing price and a
// zero price are not.
// ============================================================================

// RecordView provides indexed access to a dataset.
// The engine calls Dimension/Measure in tight loops; keep implementations fast.
type RecordView interface {
	Len() int
	Dimension(index int, key string) (string, bool)
	Measure(index int, key string) (float64, bool)
	DimensionKeys() []string
	MeasureKeys() []string
}

// ============================================================================
// SUB VIEW — filtered subset (zero-copy)
// ============================================================================

// SubView is a subset of a parent RecordView, in index order.
// Holds indices into the parent, no data copy. The order of indices is the
// order of the view, so a sorted index list is a ranked view.
type SubView struct {
	parent  RecordView
	indices []int
}

func newSubView(parent RecordView, indices []int) RecordView {
	return &SubView{parent: parent, indices: indices}
}

// emptyView returns a zero-length view that still reports the parent's keys.
func emptyView(parent RecordView) RecordView {
	return newSubView(parent, []int{})
}

func (v *SubView) Len() int { return len(v.indices) }

func (v *SubView) Dimension(i int, key string) (string, bool) {
	if i < 0 || i >= len(v.indices) {
		return "", false
	}
	return v.parent.Dimension(v.indices[i], key)
}

func (v *SubView) Measure(i int, key string) (float64, bool) {
	if i < 0 || i >= len(v.indices) {
		return 0, false
	}
	return v.parent.Measure(v.indices[i], key)
}

func (v *SubView) DimensionKeys() []string { return v.parent.DimensionKeys() }
func (v *SubView) MeasureKeys() []string   { return v.parent.MeasureKeys() }

// ============================================================================
// DOMAIN ADAPTER — Zero-copy typed struct access
// ============================================================================
//
// Usage:
//
//	adapter := engine.NewDomainAdapter[Product]().
//	    Dimension("category", func(p Product) (string, bool) { return p.Category.Get() }).
//	    Measure("price", func(p Product) (float64, bool) { return p.Price.Get() })
//
//	view := adapter.Bind(products)
//
// ============================================================================

// DomainAdapter builds a RecordView from typed structs.
// Declare once, bind many times.
type DomainAdapter[T any] struct {
	dimOrder []string
	mesOrder []string
	dims     map[string]func(T) (string, bool)
	meas     map[string]func(T) (float64, bool)
}

// NewDomainAdapter creates a new adapter for type T.
func NewDomainAdapter[T any]() *DomainAdapter[T] {
	return &DomainAdapter[T]{
		dims: make(map[string]func(T) (string, bool)),
		meas: make(map[string]func(T) (float64, bool)),
	}
}

// Dimension registers a dimension accessor.
func (a *DomainAdapter[T]) Dimension(key string, fn func(T) (string, bool)) *DomainAdapter[T] {
	if _, exists := a.dims[key]; !exists {
		a.dimOrder = append(a.dimOrder, key)
	}
	a.dims[key] = fn
	return a
}

// Measure registers a measure accessor.
func (a *DomainAdapter[T]) Measure(key string, fn func(T) (float64, bool)) *DomainAdapter[T] {
	if _, exists := a.meas[key]; !exists {
		a.mesOrder = append(a.mesOrder, key)
	}
	a.meas[key] = fn
	return a
}

// Bind creates a RecordView from a data slice. Zero-copy: holds a reference.
func (a *DomainAdapter[T]) Bind(data []T) RecordView {
	return &DomainView[T]{
		data:     data,
		dims:     a.dims,
		meas:     a.meas,
		dimKeys:  a.dimOrder,
		measKeys: a.mesOrder,
	}
}

// DomainView reads typed struct fields via registered accessor functions.
type DomainView[T any] struct {
	data     []T
	dims     map[string]func(T) (string, bool)
	meas     map[string]func(T) (float64, bool)
	dimKeys  []string
	measKeys []string
}

func (v *DomainView[T]) Len() int { return len(v.data) }

func (v *DomainView[T]) Dimension(i int, key string) (string, bool) {
	if i < 0 || i >= len(v.data) {
		return "", false
	}
	if fn, ok := v.dims[key]; ok {
		s, ok := fn(v.data[i])
		return s, ok && s != ""
	}
	return "", false
}

func (v *DomainView[T]) Measure(i int, key string) (float64, bool) {
	if i < 0 || i >= len(v.data) {
		return 0, false
	}
	if fn, ok := v.meas[key]; ok {
		return fn(v.data[i])
	}
	return 0, false
}

func (v *DomainView[T]) DimensionKeys() []string { return v.dimKeys }
func (v *DomainView[T]) MeasureKeys() []string   { return v.measKeys }

// ============================================================================
// TAGGED VIEW — derived dimension on read
// ============================================================================

// TaggedView wraps a RecordView and answers one extra dimension from a
// precomputed label slice (one entry per parent row). The parent is untouched.
type TaggedView struct {
	parent RecordView
	key    string
	labels []Optional[string]
	keys   []string
}

func newTaggedView(parent RecordView, key string, labels []Optional[string]) *TaggedView {
	keys := append([]string{}, parent.DimensionKeys()...)
	if !containsString(keys, key) {
		keys = append(keys, key)
	}
	return &TaggedView{parent: parent, key: key, labels: labels, keys: keys}
}

func (v *TaggedView) Len() int { return v.parent.Len() }

func (v *TaggedView) Dimension(i int, key string) (string, bool) {
	if key == v.key {
		if i < 0 || i >= len(v.labels) {
			return "", false
		}
		return v.labels[i].Get()
	}
	return v.parent.Dimension(i, key)
}

func (v *TaggedView) Measure(i int, key string) (float64, bool) {
	return v.parent.Measure(i, key)
}

func (v *TaggedView) DimensionKeys() []string { return v.keys }
func (v *TaggedView) MeasureKeys() []string   { return v.parent.MeasureKeys() }

// Labeled returns the rows that received a label.
func (v *TaggedView) Labeled() RecordView {
	indices := make([]int, 0, len(v.labels))
	for i, l := range v.labels {
		if l.Ok {
			indices = append(indices, i)
		}
	}
	return newSubView(v, indices)
}

// Label returns the label assigned to row i of the parent.
func (v *TaggedView) Label(i int) Optional[string] {
	if i < 0 || i >= len(v.labels) {
		return None[string]()
	}
	return v.labels[i]
}

func containsString(items []string, s string) bool {
	for _, it := range items {
		if it == s {
			return true
		}
	}
	return false
}
