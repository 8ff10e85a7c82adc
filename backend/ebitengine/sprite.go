// Package ebitengine adapts scrollview cells to the Ebitengine game engine.
//
// A cell embeds a Sprite alongside scrollview.CellBase and forwards
// UpdatePosition to SetLocalPosition; the game's Draw method then renders
// every sprite with Draw. The Sprite doubles as the cell's external
// visibility representation (scrollview.VisibilitySink), so binding it with
// CellBase.BindVisibility keeps the drawn state in lockstep with the layout
// core's visibility decisions.
package ebitengine

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/go-theft-auto/scrollview"
)

// Axis selects the scroll direction a Sprite maps local positions onto.
type Axis int

const (
	// Vertical scrolls top to bottom.
	Vertical Axis = iota
	// Horizontal scrolls left to right.
	Horizontal
)

// Sprite is an Ebitengine-backed visual for one pooled cell. The zero value
// is hidden with no image; set Image from the cell's UpdateContent hook.
type Sprite struct {
	// Image is the cell's current visual. Swapped by UpdateContent.
	Image *ebiten.Image

	// Axis is the scroll direction. The cross-axis coordinate stays at
	// Offset.
	Axis Axis

	// Offset is the cross-axis position in pixels.
	Offset float64

	visible bool
	local   float32
}

var _ scrollview.VisibilitySink = (*Sprite)(nil)

// SetVisible implements scrollview.VisibilitySink.
func (s *Sprite) SetVisible(visible bool) {
	s.visible = visible
}

// Visible reports whether the sprite is drawn.
func (s *Sprite) Visible() bool {
	return s.visible
}

// SetLocalPosition records the normalized viewport position computed by the
// layout core. Call from the cell's UpdatePosition hook.
func (s *Sprite) SetLocalPosition(position float32) {
	s.local = position
}

// LocalPosition returns the last recorded normalized position.
func (s *Sprite) LocalPosition() float32 {
	return s.local
}

// Draw renders the sprite onto dst. span is the viewport extent in pixels
// along the scroll axis; the sprite's top-left lands at local*span. Hidden
// sprites and sprites without an image draw nothing.
func (s *Sprite) Draw(dst *ebiten.Image) {
	if !s.visible || s.Image == nil {
		return
	}

	var span float64
	bounds := dst.Bounds()
	if s.Axis == Vertical {
		span = float64(bounds.Dy())
	} else {
		span = float64(bounds.Dx())
	}

	op := &ebiten.DrawImageOptions{}
	along := float64(s.local) * span
	if s.Axis == Vertical {
		op.GeoM.Translate(s.Offset, along)
	} else {
		op.GeoM.Translate(along, s.Offset)
	}
	dst.DrawImage(s.Image, op)
}
