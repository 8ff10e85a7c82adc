package scrollview_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-theft-auto/scrollview"
)

// testContext is the shared context used by test views.
type testContext struct {
	Selected int
}

// recordingCell counts hook invocations so tests can assert the update
// policy (content suppressed, position unconditional).
type recordingCell struct {
	scrollview.CellBase[string, testContext]
	contentCalls  int
	positionCalls int
	lastItem      string
	lastPosition  float32
}

func (c *recordingCell) UpdateContent(item string) {
	c.contentCalls++
	c.lastItem = item
}

func (c *recordingCell) UpdatePosition(position float32) {
	c.positionCalls++
	c.lastPosition = position
}

// newTestView builds a view whose factory records every cell it creates, in
// pool order.
func newTestView(opts ...scrollview.Option) (*scrollview.Engine[string, testContext], *[]*recordingCell) {
	cells := &[]*recordingCell{}
	template := scrollview.CellTemplate{
		Name: "recording",
		New: func() any {
			c := &recordingCell{}
			*cells = append(*cells, c)
			return c
		},
	}
	return scrollview.New[string, testContext](template, opts...), cells
}

func approx(a, b float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-4
}

func TestCircularIndex(t *testing.T) {
	tests := []struct {
		i, size, want int
	}{
		{0, 5, 0},
		{4, 5, 4},
		{5, 5, 0},
		{7, 5, 2},
		{-1, 5, 4},
		{-2, 5, 3},
		{-5, 5, 0},
		{-6, 5, 4},
		{3, 1, 0},
		{-3, 1, 0},
		{10, 0, 0},
		{-10, 0, 0},
		{2, -1, 0},
	}
	for _, tt := range tests {
		if got := scrollview.CircularIndex(tt.i, tt.size); got != tt.want {
			t.Errorf("CircularIndex(%d, %d) = %d, want %d", tt.i, tt.size, got, tt.want)
		}
	}
}

func TestCircularIndexPeriodicity(t *testing.T) {
	for size := 1; size <= 7; size++ {
		for i := -20; i <= 20; i++ {
			got := scrollview.CircularIndex(i, size)
			if got < 0 || got >= size {
				t.Fatalf("CircularIndex(%d, %d) = %d, outside [0, %d)", i, size, got, size)
			}
			if next := scrollview.CircularIndex(i+size, size); next != got {
				t.Fatalf("CircularIndex(%d, %d) = %d, but CircularIndex(%d, %d) = %d",
					i, size, got, i+size, size, next)
			}
		}
	}
}

func TestLayoutWithoutLoop(t *testing.T) {
	view, cells := newTestView(
		scrollview.WithCellInterval(0.2),
		scrollview.WithScrollOffset(0.5),
	)
	if err := view.UpdateContents([]string{"a", "b", "c", "d", "e"}); err != nil {
		t.Fatal(err)
	}
	if err := view.SetPosition(0); err != nil {
		t.Fatal(err)
	}

	// p = -2.5, first candidate index -2 at local position 0.1. The pool
	// must grow to ceil(0.9/0.2) = 5 cells. Raw indices -2 and -1 are out
	// of range, 0..2 are visible at 0.5, 0.7, 0.9.
	if view.PoolLen() != 5 {
		t.Fatalf("pool length = %d, want 5", view.PoolLen())
	}
	if len(*cells) != 5 {
		t.Fatalf("factory created %d cells, want 5", len(*cells))
	}

	want := []struct {
		visible bool
		item    string
		pos     float32
	}{
		{true, "a", 0.5}, // slot 0: raw index 0
		{true, "b", 0.7}, // slot 1: raw index 1
		{true, "c", 0.9}, // slot 2: raw index 2
		{false, "", 0},   // slot 3: raw index -2
		{false, "", 0},   // slot 4: raw index -1
	}
	for i, w := range want {
		cell := (*cells)[i]
		if cell.Visible() != w.visible {
			t.Errorf("slot %d: visible = %v, want %v", i, cell.Visible(), w.visible)
		}
		if !w.visible {
			if cell.contentCalls != 0 {
				t.Errorf("slot %d: hidden cell got %d content updates", i, cell.contentCalls)
			}
			if cell.Index() != -1 {
				t.Errorf("slot %d: unbound index = %d, want -1", i, cell.Index())
			}
			continue
		}
		if cell.lastItem != w.item {
			t.Errorf("slot %d: item = %q, want %q", i, cell.lastItem, w.item)
		}
		if !approx(cell.lastPosition, w.pos) {
			t.Errorf("slot %d: position = %v, want %v", i, cell.lastPosition, w.pos)
		}
	}
}

func TestLayoutWithLoop(t *testing.T) {
	view, cells := newTestView(
		scrollview.WithCellInterval(0.2),
		scrollview.WithScrollOffset(0.5),
		scrollview.WithLoop(true),
	)
	if err := view.UpdateContents([]string{"a", "b", "c", "d", "e"}); err != nil {
		t.Fatal(err)
	}
	if err := view.SetPosition(0); err != nil {
		t.Fatal(err)
	}

	// Raw indices -2..2 wrap to data indices 3, 4, 0, 1, 2. All five local
	// positions are inside the viewport, so every cell is visible.
	want := []struct {
		item string
		pos  float32
	}{
		{"a", 0.5}, // slot 0: raw 0
		{"b", 0.7}, // slot 1: raw 1
		{"c", 0.9}, // slot 2: raw 2
		{"d", 0.1}, // slot 3: raw -2 wraps to 3
		{"e", 0.3}, // slot 4: raw -1 wraps to 4
	}
	for i, w := range want {
		cell := (*cells)[i]
		if !cell.Visible() {
			t.Errorf("slot %d: hidden, want visible", i)
			continue
		}
		if cell.lastItem != w.item {
			t.Errorf("slot %d: item = %q, want %q", i, cell.lastItem, w.item)
		}
		if !approx(cell.lastPosition, w.pos) {
			t.Errorf("slot %d: position = %v, want %v", i, cell.lastPosition, w.pos)
		}
	}
}

func TestContentSuppressedPositionRepeated(t *testing.T) {
	view, cells := newTestView(
		scrollview.WithCellInterval(0.2),
		scrollview.WithScrollOffset(0.5),
	)
	if err := view.UpdateContents([]string{"a", "b", "c", "d", "e"}); err != nil {
		t.Fatal(err)
	}
	if err := view.SetPosition(0); err != nil {
		t.Fatal(err)
	}

	contentBefore := make([]int, len(*cells))
	positionBefore := make([]int, len(*cells))
	for i, cell := range *cells {
		contentBefore[i] = cell.contentCalls
		positionBefore[i] = cell.positionCalls
	}

	if err := view.SetPosition(0); err != nil {
		t.Fatal(err)
	}

	for i, cell := range *cells {
		if !cell.Visible() {
			continue
		}
		if cell.contentCalls != contentBefore[i] {
			t.Errorf("slot %d: content re-bound for unchanged index (%d -> %d calls)",
				i, contentBefore[i], cell.contentCalls)
		}
		if cell.positionCalls != positionBefore[i]+1 {
			t.Errorf("slot %d: position calls = %d, want %d",
				i, cell.positionCalls, positionBefore[i]+1)
		}
	}
}

func TestRefreshRebindsVisibleCells(t *testing.T) {
	view, cells := newTestView(
		scrollview.WithCellInterval(0.2),
		scrollview.WithScrollOffset(0.5),
	)
	items := []string{"a", "b", "c", "d", "e"}
	if err := view.UpdateContents(items); err != nil {
		t.Fatal(err)
	}
	if err := view.SetPosition(0); err != nil {
		t.Fatal(err)
	}

	before := make([]int, len(*cells))
	for i, cell := range *cells {
		before[i] = cell.contentCalls
	}

	items[0] = "A"
	if err := view.Refresh(); err != nil {
		t.Fatal(err)
	}

	for i, cell := range *cells {
		if !cell.Visible() {
			continue
		}
		if cell.contentCalls != before[i]+1 {
			t.Errorf("slot %d: content calls = %d, want %d", i, cell.contentCalls, before[i]+1)
		}
	}
	if (*cells)[0].lastItem != "A" {
		t.Errorf("slot 0: item = %q after in-place mutation, want %q", (*cells)[0].lastItem, "A")
	}
}

func TestUpdateContentsForcesRefresh(t *testing.T) {
	view, cells := newTestView(
		scrollview.WithCellInterval(0.2),
		scrollview.WithScrollOffset(0.5),
	)
	if err := view.UpdateContents([]string{"a", "b", "c", "d", "e"}); err != nil {
		t.Fatal(err)
	}
	if err := view.SetPosition(0); err != nil {
		t.Fatal(err)
	}

	before := make([]int, len(*cells))
	for i, cell := range *cells {
		before[i] = cell.contentCalls
	}

	// Same values, same indices: the wholesale replace must still re-bind
	// every in-view cell.
	if err := view.UpdateContents([]string{"a", "b", "c", "d", "e"}); err != nil {
		t.Fatal(err)
	}

	for i, cell := range *cells {
		if !cell.Visible() {
			continue
		}
		if cell.contentCalls != before[i]+1 {
			t.Errorf("slot %d: content calls = %d, want %d", i, cell.contentCalls, before[i]+1)
		}
	}
}

func TestRevealRebindsUnchangedIndex(t *testing.T) {
	view, cells := newTestView(
		scrollview.WithCellInterval(0.2),
		scrollview.WithScrollOffset(0.5),
	)
	if err := view.UpdateContents([]string{"a", "b", "c", "d", "e"}); err != nil {
		t.Fatal(err)
	}
	if err := view.SetPosition(0); err != nil {
		t.Fatal(err)
	}

	slot0 := (*cells)[0]
	if !slot0.Visible() || slot0.Index() != 0 {
		t.Fatalf("slot 0: visible=%v index=%d, want visible cell bound to 0", slot0.Visible(), slot0.Index())
	}
	calls := slot0.contentCalls

	// Scroll far enough that slot 0 leaves the viewport. The hide branch
	// leaves its bound index intact.
	if err := view.SetPosition(5); err != nil {
		t.Fatal(err)
	}
	if slot0.Visible() {
		t.Fatal("slot 0 still visible at position 5")
	}
	if slot0.Index() != 0 {
		t.Fatalf("slot 0: index = %d while hidden, want 0", slot0.Index())
	}

	// Scrolling back reveals slot 0 with the same index; content may be
	// stale from before it was hidden, so it must be re-bound anyway.
	if err := view.SetPosition(0); err != nil {
		t.Fatal(err)
	}
	if !slot0.Visible() {
		t.Fatal("slot 0 not revealed at position 0")
	}
	if slot0.contentCalls != calls+1 {
		t.Errorf("slot 0: content calls = %d after reveal, want %d", slot0.contentCalls, calls+1)
	}
}

func TestPoolNeverShrinks(t *testing.T) {
	view, _ := newTestView(
		scrollview.WithCellInterval(0.1),
		scrollview.WithScrollOffset(0),
	)
	if err := view.UpdateContents([]string{"a", "b", "c"}); err != nil {
		t.Fatal(err)
	}
	if err := view.SetPosition(0); err != nil {
		t.Fatal(err)
	}
	grown := view.PoolLen()
	if grown < 10 {
		t.Fatalf("pool length = %d, want at least 10 for interval 0.1", grown)
	}

	cfg := view.Config()
	cfg.CellInterval = 0.5
	view.SetConfig(cfg)
	if err := view.Relayout(); err != nil {
		t.Fatal(err)
	}
	if err := view.SetPosition(3); err != nil {
		t.Fatal(err)
	}
	if view.PoolLen() != grown {
		t.Errorf("pool length = %d after widening interval, want %d", view.PoolLen(), grown)
	}
}

func TestEmptyDataset(t *testing.T) {
	view, cells := newTestView(
		scrollview.WithCellInterval(0.2),
		scrollview.WithScrollOffset(0.5),
	)
	if err := view.SetPosition(0); err != nil {
		t.Fatal(err)
	}
	if view.PoolLen() == 0 {
		t.Fatal("pool did not grow for empty dataset")
	}
	for i, cell := range *cells {
		if cell.Visible() {
			t.Errorf("slot %d visible with empty dataset", i)
		}
		if cell.contentCalls != 0 {
			t.Errorf("slot %d got %d content updates with empty dataset", i, cell.contentCalls)
		}
	}

	// Looping over an empty dataset is equally benign.
	cfg := view.Config()
	cfg.Loop = true
	view.SetConfig(cfg)
	if err := view.Relayout(); err != nil {
		t.Fatal(err)
	}
	for i, cell := range *cells {
		if cell.Visible() {
			t.Errorf("slot %d visible with empty looping dataset", i)
		}
	}
}

func TestCapabilityError(t *testing.T) {
	type notACell struct{}
	template := scrollview.CellTemplate{
		Name: "broken_template",
		New:  func() any { return &notACell{} },
	}
	view := scrollview.New[string, testContext](template)

	// The first layout pass grows the pool, so the structural error
	// surfaces immediately.
	err := view.SetPosition(0)
	if err == nil {
		t.Fatal("expected capability error, got nil")
	}
	var capErr *scrollview.CapabilityError
	if !errors.As(err, &capErr) {
		t.Fatalf("error type = %T, want *CapabilityError", err)
	}
	if capErr.Template != "broken_template" {
		t.Errorf("Template = %q, want %q", capErr.Template, "broken_template")
	}
	msg := err.Error()
	for _, part := range []string{"broken_template", "notACell", "string", "testContext"} {
		if !strings.Contains(msg, part) {
			t.Errorf("error message %q missing %q", msg, part)
		}
	}
}

func TestLocalPositionOneIsVisible(t *testing.T) {
	// Grow the pool to 5 with a 0.2 interval, then widen to 0.25: at
	// position 0 with no offset the fifth slot lands exactly at 1.0, which
	// is inside the viewport. Only positions strictly above 1.0 hide.
	view, cells := newTestView(
		scrollview.WithCellInterval(0.2),
		scrollview.WithScrollOffset(0),
	)
	if err := view.UpdateContents([]string{"a", "b", "c", "d", "e", "f"}); err != nil {
		t.Fatal(err)
	}
	if err := view.SetPosition(0); err != nil {
		t.Fatal(err)
	}
	if view.PoolLen() != 5 {
		t.Fatalf("pool length = %d, want 5", view.PoolLen())
	}

	cfg := view.Config()
	cfg.CellInterval = 0.25
	view.SetConfig(cfg)
	if err := view.Relayout(); err != nil {
		t.Fatal(err)
	}

	last := (*cells)[4]
	if !last.Visible() {
		t.Fatal("cell at local position 1.0 is hidden, want visible")
	}
	if last.Index() != 4 {
		t.Errorf("cell index = %d, want 4", last.Index())
	}
	if last.lastPosition != 1.0 {
		t.Errorf("local position = %v, want exactly 1.0", last.lastPosition)
	}
}

func TestInitializeHookRunsOnceBeforeFirstLayout(t *testing.T) {
	runs := 0
	view, _ := newTestView(
		scrollview.WithCellInterval(0.2),
		scrollview.WithScrollOffset(0.5),
		scrollview.WithInitialize(func(cfg *scrollview.Config) {
			runs++
			cfg.CellInterval = 0.5
		}),
	)
	if err := view.UpdateContents([]string{"a", "b"}); err != nil {
		t.Fatal(err)
	}
	if runs != 1 {
		t.Fatalf("initialize hook ran %d times, want 1", runs)
	}
	// The hook's interval took effect before the pool first grew.
	if view.PoolLen() > 3 {
		t.Errorf("pool length = %d, want at most 3 for interval 0.5", view.PoolLen())
	}

	for i := 0; i < 5; i++ {
		if err := view.SetPosition(float32(i)); err != nil {
			t.Fatal(err)
		}
	}
	if runs != 1 {
		t.Errorf("initialize hook ran %d times across layouts, want 1", runs)
	}
}

func TestContextSharedByReference(t *testing.T) {
	view, cells := newTestView(
		scrollview.WithCellInterval(0.2),
		scrollview.WithScrollOffset(0.5),
	)
	if err := view.UpdateContents([]string{"a", "b", "c"}); err != nil {
		t.Fatal(err)
	}

	view.Context().Selected = 2
	for i, cell := range *cells {
		if cell.Context() != view.Context() {
			t.Fatalf("slot %d holds a different context pointer", i)
		}
		if cell.Context().Selected != 2 {
			t.Fatalf("slot %d sees Selected = %d, want 2", i, cell.Context().Selected)
		}
	}
}

func TestLoopFullCycle(t *testing.T) {
	view, cells := newTestView(
		scrollview.WithCellInterval(0.2),
		scrollview.WithScrollOffset(0.5),
		scrollview.WithLoop(true),
	)
	items := []string{"a", "b", "c", "d", "e"}
	if err := view.UpdateContents(items); err != nil {
		t.Fatal(err)
	}

	// Scroll through five full dataset cycles in both directions; every
	// visible cell must be bound to the item its wrapped index names.
	for step := -50; step <= 50; step++ {
		pos := float32(step) * 0.5
		if err := view.SetPosition(pos); err != nil {
			t.Fatal(err)
		}
		for i, cell := range *cells {
			if !cell.Visible() {
				continue
			}
			idx := cell.Index()
			if idx < 0 || idx >= len(items) {
				t.Fatalf("position %v: slot %d bound to index %d outside dataset", pos, i, idx)
			}
			if cell.lastItem != items[idx] {
				t.Fatalf("position %v: slot %d shows %q for index %d, want %q",
					pos, i, cell.lastItem, idx, items[idx])
			}
			if cell.lastPosition > 1.0 {
				t.Fatalf("position %v: slot %d visible at local position %v", pos, i, cell.lastPosition)
			}
		}
	}
}
