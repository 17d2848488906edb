package layout

// baselineKey is the full relayout baseline: a layout is only recomputed when
// one of these actually changes.
type baselineKey struct {
	width     float64
	height    float64
	category  Category
	fontScale float64
}

// Engine caches the last computed layout so that resize events and frame
// ticks with unchanged inputs are no-ops. A category flip always lands in a
// fresh baseline because the category is part of the key.
type Engine struct {
	key   baselineKey
	cols  Columns
	valid bool
}

// Layout returns the columns for the viewport, recomputing only when the
// baseline changed. The second return reports whether a recompute happened.
func (e *Engine) Layout(width, height, fontScale float64) (Columns, bool) {
	width = sanitize(width)
	height = sanitize(height)
	key := baselineKey{
		width:     width,
		height:    height,
		category:  CategoryFor(width, height),
		fontScale: fontScale,
	}
	if e.valid && key == e.key {
		return e.cols, false
	}
	e.cols = Compute(width, height)
	e.key = key
	e.valid = true
	return e.cols, true
}

// Invalidate drops the cached baseline; the next Layout recomputes.
func (e *Engine) Invalidate() { e.valid = false }

// Current returns the cached columns (zero value before the first Layout).
func (e *Engine) Current() Columns { return e.cols }

// Category returns the cached category (Mobile before the first Layout).
func (e *Engine) Category() Category { return e.key.category }
