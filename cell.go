package scrollview

// Cell is the capability a visual cell object must expose to take part in a
// scroll view's pool. Concrete cells embed CellBase, which supplies
// everything except the two required hooks:
//
//	type songCell struct {
//	    scrollview.CellBase[Song, PlaylistContext]
//	    title string
//	    y     float32
//	}
//
//	func (c *songCell) UpdateContent(song Song)  { c.title = song.Title }
//	func (c *songCell) UpdatePosition(p float32) { c.y = p * rowSpan }
//
// The view drives the full lifecycle: SetContext once immediately after
// creation, Initialize once before the cell is ever shown, then SetIndex,
// SetVisible, UpdateContent, and UpdatePosition as layout demands.
type Cell[TItemData, TContext any] interface {
	// SetContext stores the view's shared context. Called exactly once,
	// before Initialize.
	SetContext(ctx *TContext)

	// Initialize is the one-time setup hook, called after SetContext and
	// before the cell is ever made visible. CellBase makes it a no-op.
	Initialize()

	// Index returns the data index this cell currently renders,
	// or -1 while unbound.
	Index() int

	// SetIndex binds the cell to a data index. Called by the view, never
	// by the cell itself, immediately before UpdateContent.
	SetIndex(index int)

	// Visible reports the cell's current visibility state.
	Visible() bool

	// SetVisible toggles the cell's visibility. Idempotent: repeated calls
	// with the same value only perform the trivial state write.
	SetVisible(visible bool)

	// UpdateContent binds the cell's visual representation to an item.
	// Called only when the bound index changed, a forced refresh was
	// requested, or the cell just became visible - never every frame for
	// an unchanged, already-visible cell.
	UpdateContent(item TItemData)

	// UpdatePosition maps a normalized scroll position to a visual
	// transform. Called every layout pass for every in-view cell. The
	// position is not strictly bounded to [0, 1]; it exceeds 1 for cells
	// outside the active viewport span.
	UpdatePosition(position float32)
}

// VisibilitySink is the external representation of whether a cell is
// rendered. In a real engine this is typically an object's active flag or a
// sprite's visible bit. Attach one to a CellBase with BindVisibility; the
// sink is notified only when the visibility value actually changes.
type VisibilitySink interface {
	SetVisible(visible bool)
}

// NullContext is the unit context for views that share no state between
// the view and its cells.
type NullContext struct{}

// CellBase carries the per-cell state managed by the view: the shared
// context pointer, the bound data index, and the visibility flag. Embed it
// and implement UpdateContent and UpdatePosition to satisfy Cell.
type CellBase[TItemData, TContext any] struct {
	ctx     *TContext
	index   int
	visible bool
	sink    VisibilitySink
}

// SetContext stores the shared context pointer. The view calls this exactly
// once per cell, right after instantiation.
func (b *CellBase[TItemData, TContext]) SetContext(ctx *TContext) {
	b.ctx = ctx
}

// Context returns the shared context established by SetContext.
func (b *CellBase[TItemData, TContext]) Context() *TContext {
	return b.ctx
}

// Initialize is a no-op. Shadow it on the embedding type for one-time setup.
func (b *CellBase[TItemData, TContext]) Initialize() {}

// Index returns the bound data index, or -1 while unbound.
func (b *CellBase[TItemData, TContext]) Index() int {
	return b.index
}

// SetIndex records the bound data index.
func (b *CellBase[TItemData, TContext]) SetIndex(index int) {
	b.index = index
}

// Visible reports the current visibility state.
func (b *CellBase[TItemData, TContext]) Visible() bool {
	return b.visible
}

// SetVisible records the visibility state and forwards actual changes to the
// bound VisibilitySink, if any.
func (b *CellBase[TItemData, TContext]) SetVisible(visible bool) {
	if b.visible != visible && b.sink != nil {
		b.sink.SetVisible(visible)
	}
	b.visible = visible
}

// BindVisibility attaches the external visibility representation. Optional;
// cells that track visibility themselves can read Visible directly.
func (b *CellBase[TItemData, TContext]) BindVisibility(sink VisibilitySink) {
	b.sink = sink
}
