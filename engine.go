package scrollview

import "math"

// CellTemplate instantiates cell objects for a view's pool. It abstracts the
// host engine's prefab/template mechanism: New produces one raw object and
// the view attempts to obtain the Cell capability from it. Name identifies
// the template in error messages.
type CellTemplate struct {
	Name string
	New  func() any
}

// Engine is the cell-recycling layout core of a scroll view. It owns a pool
// of reusable cells, the item dataset, and one shared context value, and on
// every position update recomputes which pool slot renders which data index
// and at what normalized offset.
//
// The pool is append-only: it grows lazily until it covers one viewport span
// at the current CellInterval and never shrinks afterwards. Per-call cost is
// O(pool size), independent of the dataset size.
//
// An Engine must be used from a single goroutine; see the package
// documentation for the threading model.
type Engine[TItemData, TContext any] struct {
	template CellTemplate
	context  *TContext
	pool     []Cell[TItemData, TContext]
	items    []TItemData

	cfg    Config
	onInit func(*Config)

	position    float32
	initialized bool
}

// Option configures an Engine at construction time.
type Option func(*engineSettings)

type engineSettings struct {
	cfg    Config
	onInit func(*Config)
}

// WithConfig replaces the whole layout configuration.
func WithConfig(cfg Config) Option {
	return func(s *engineSettings) { s.cfg = cfg }
}

// WithCellInterval sets the spacing between adjacent cells as a fraction of
// the viewport.
func WithCellInterval(interval float32) Option {
	return func(s *engineSettings) { s.cfg.CellInterval = interval }
}

// WithScrollOffset sets the viewport fraction where position zero places the
// first cell.
func WithScrollOffset(offset float32) Option {
	return func(s *engineSettings) { s.cfg.ScrollOffset = offset }
}

// WithLoop enables circular dataset wraparound.
func WithLoop(loop bool) Option {
	return func(s *engineSettings) { s.cfg.Loop = loop }
}

// WithInitialize registers a one-time setup hook. It runs on the first
// layout pass, before any cell exists, and may adjust the configuration
// before it is first read - the deferred equivalent of overriding derived
// settings in a subclass.
func WithInitialize(fn func(*Config)) Option {
	return func(s *engineSettings) { s.onInit = fn }
}

// New creates an Engine with an empty pool and a freshly allocated shared
// context. The context's identity never changes for the engine's lifetime.
func New[TItemData, TContext any](template CellTemplate, opts ...Option) *Engine[TItemData, TContext] {
	s := engineSettings{cfg: DefaultConfig()}
	for _, opt := range opts {
		opt(&s)
	}
	return &Engine[TItemData, TContext]{
		template: template,
		context:  new(TContext),
		cfg:      s.cfg,
		onInit:   s.onInit,
	}
}

// Context returns the shared context value. Every cell in the pool holds the
// same pointer.
func (e *Engine[TItemData, TContext]) Context() *TContext {
	return e.context
}

// Config returns the current layout configuration.
func (e *Engine[TItemData, TContext]) Config() Config {
	return e.cfg
}

// SetConfig replaces the layout configuration. It does not trigger a layout
// pass; call Relayout to apply the change immediately, or let the next
// SetPosition pick it up.
func (e *Engine[TItemData, TContext]) SetConfig(cfg Config) {
	e.cfg = cfg
}

// Position returns the scroll position of the most recent layout pass.
func (e *Engine[TItemData, TContext]) Position() float32 {
	return e.position
}

// PoolLen returns the number of cells instantiated so far.
func (e *Engine[TItemData, TContext]) PoolLen() int {
	return len(e.pool)
}

// ItemCount returns the length of the current dataset.
func (e *Engine[TItemData, TContext]) ItemCount() int {
	return len(e.items)
}

// UpdateContents replaces the dataset wholesale and performs a forced full
// refresh: every in-view cell's content is re-bound even if its index is
// unchanged. An empty slice is valid and hides every cell.
func (e *Engine[TItemData, TContext]) UpdateContents(items []TItemData) error {
	e.items = items
	return e.layout(e.position, true)
}

// Relayout re-derives positions at the current scroll position without
// forcing content updates. Use after a configuration change when the data
// itself did not move.
func (e *Engine[TItemData, TContext]) Relayout() error {
	return e.layout(e.position, false)
}

// Refresh re-derives positions and forces every in-view cell's content to be
// re-bound. Use when item data mutated in place.
func (e *Engine[TItemData, TContext]) Refresh() error {
	return e.layout(e.position, true)
}

// SetPosition advances the scroll position and lays out the pool. This is
// the primary per-frame entry point; it never forces content refreshes.
func (e *Engine[TItemData, TContext]) SetPosition(position float32) error {
	return e.layout(position, false)
}

// layout is the core algorithm: map the scroll position to a first candidate
// index and offset, grow the pool if the viewport span is not covered, then
// walk the pool ring assigning each slot a data index and local position.
func (e *Engine[TItemData, TContext]) layout(position float32, forceRefresh bool) error {
	if !e.initialized {
		if e.onInit != nil {
			e.onInit(&e.cfg)
		}
		e.initialized = true
	}
	e.position = position

	interval := e.cfg.CellInterval
	p := position - e.cfg.ScrollOffset/interval
	firstIndex := int(ceilf(p))
	firstPosition := (float32(firstIndex) - p) * interval

	if firstPosition+float32(len(e.pool))*interval < 1.0 {
		needed := int(ceilf((1.0-firstPosition)/interval)) - len(e.pool)
		if err := e.grow(needed); err != nil {
			return err
		}
	}

	count := len(e.pool)
	for i := 0; i < count; i++ {
		rawIndex := firstIndex + i
		localPosition := firstPosition + float32(i)*interval

		// The physical slot is resolved on the ring, decoupled from the
		// data index: a fixed set of cells slides across the index range.
		cell := e.pool[CircularIndex(rawIndex, count)]

		dataIndex := rawIndex
		if e.cfg.Loop {
			dataIndex = CircularIndex(rawIndex, len(e.items))
		}

		if dataIndex < 0 || dataIndex >= len(e.items) || localPosition > 1.0 {
			// Out of the active viewport. The transform is left stale on
			// purpose; the cell is re-bound when it next becomes visible.
			cell.SetVisible(false)
			continue
		}

		if forceRefresh || cell.Index() != dataIndex || !cell.Visible() {
			cell.SetIndex(dataIndex)
			cell.SetVisible(true)
			cell.UpdateContent(e.items[dataIndex])
		}
		cell.UpdatePosition(localPosition)
	}
	return nil
}

// grow instantiates n cells from the template and appends them to the pool.
// A template object that does not expose the Cell capability is a fatal
// configuration error.
func (e *Engine[TItemData, TContext]) grow(n int) error {
	for i := 0; i < n; i++ {
		obj := e.template.New()
		cell, ok := obj.(Cell[TItemData, TContext])
		if !ok {
			return newCapabilityError[TItemData, TContext](e.template, obj)
		}
		cell.SetIndex(-1)
		cell.SetContext(e.context)
		cell.Initialize()
		cell.SetVisible(false)
		e.pool = append(e.pool, cell)
	}
	layoutLogger.Debug("cell pool grown",
		"template", e.template.Name,
		"added", n,
		"pool", len(e.pool))
	return nil
}

// CircularIndex maps i onto [0, size) with floor-modulo semantics: negative
// i wraps to the end rather than mirroring, so CircularIndex(-1, 5) is 4.
// A size below 1 returns 0 as a defensive guard against degenerate
// configuration.
func CircularIndex(i, size int) int {
	if size < 1 {
		return 0
	}
	if i < 0 {
		return size - 1 + (i+1)%size
	}
	return i % size
}

func ceilf(v float32) float32 {
	return float32(math.Ceil(float64(v)))
}
