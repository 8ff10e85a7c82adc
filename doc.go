/*
Package scrollview implements a virtualized scroll view layout core with
recyclable cells, designed for game engine UI layers.

# Overview

A scroll view over a large dataset does not need one visual object per item.
This package maintains a small, fixed ring of reusable cells - just enough to
cover one viewport span - and, for every scroll position, decides which cell
renders which data index and at what normalized offset. Cells slide through
the ring as the position advances, each physical cell being rebound roughly
every pool-length steps. Optional looping makes a finite dataset appear
infinite.

The core is engine-agnostic: it never draws, never reads input, and never
touches the host engine directly. Concrete cells implement two hooks
(UpdateContent and UpdatePosition) and the host supplies a factory that
instantiates cell objects. Everything else - transforms, text, textures - is
the cell implementation's business.

# Quick Start

	type itemCell struct {
	    scrollview.CellBase[string, scrollview.NullContext]
	    label string
	    y     float32
	}

	func (c *itemCell) UpdateContent(item string)  { c.label = item }
	func (c *itemCell) UpdatePosition(pos float32) { c.y = pos * viewportHeight }

	view := scrollview.New[string, scrollview.NullContext](
	    scrollview.CellTemplate{Name: "item", New: func() any { return &itemCell{} }},
	    scrollview.WithCellInterval(0.2),
	    scrollview.WithScrollOffset(0.5),
	)

	if err := view.UpdateContents(items); err != nil { ... }

	// Per frame, or whenever the scroll position changes:
	if err := view.SetPosition(pos); err != nil { ... }

# Positions

All positions are normalized fractions of the viewport. CellInterval is the
spacing between adjacent cells, ScrollOffset is where position zero places the
first cell, and the local position handed to UpdatePosition is the cell's
offset within the viewport (it can exceed 1 for cells parked outside the
active span). Mapping a local position to pixels, angles, or spline parameters
is up to the cell.

# Update Policy

UpdatePosition runs every layout pass for every in-view cell, so visuals track
scrolling continuously. UpdateContent runs only when a cell's bound index
changed, a forced refresh was requested (Refresh, UpdateContents), or the cell
just became visible. An invisible cell's transform is intentionally left
stale - it is rebound on reveal.

# Context

Each view owns exactly one context value, shared by pointer with every cell in
its pool. Use it for cross-cutting state such as selection or shared callbacks
without coupling cells to the view type. Views that need no shared state use
NullContext.

# Threading

The core is single-threaded and call-driven. All operations run synchronously
on the caller's goroutine; there are no internal goroutines, timers, or locks.
Concurrent callers must serialize externally, typically on the game's update
loop. The file watcher in watch.go follows this rule: its goroutine only
stages a pending config, which the update loop applies via Apply.
*/
package scrollview
