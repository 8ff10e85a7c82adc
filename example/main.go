// Example demonstrates the scroll view layout core driving an OpenGL host.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell              # enter the dev environment (provides Go + OpenGL/X11 headers)
//	go run ./example/         # run this example
//
// The example creates a GLFW window and a vertical list of colored cards
// over a 40-item dataset. The mouse wheel feeds the scroll position, L
// toggles looping, and editing example/scrollview.toml while the window is
// open reloads the layout configuration live.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/scrollview"
	"github.com/go-theft-auto/scrollview/backend/opengl"
)

const (
	windowWidth  = 480
	windowHeight = 720
	windowTitle  = "scrollview example"

	cardWidth  = 400
	cardMargin = 40
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

// cardItem is the dataset element: a label color and a shade for the body.
type cardItem struct {
	Label string
	Color uint32
}

// listContext is shared between the view and every card.
type listContext struct {
	Selected int
}

// cardCell renders one dataset item as a colored card. It keeps only what
// the draw pass needs: the current color and the pixel-space rectangle.
type cardCell struct {
	scrollview.CellBase[cardItem, listContext]
	color uint32
	y     float32
}

func (c *cardCell) UpdateContent(item cardItem) {
	c.color = item.Color
}

func (c *cardCell) UpdatePosition(position float32) {
	c.y = position * windowHeight
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1) // vsync

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	renderer, err := opengl.NewRenderer(windowWidth, windowHeight)
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer renderer.Delete()

	input := opengl.NewScrollInput(window)

	// The factory records every created cell so the draw pass can walk the
	// pool; the core itself never draws.
	var cells []*cardCell
	view := scrollview.New[cardItem, listContext](
		scrollview.CellTemplate{
			Name: "card",
			New: func() any {
				c := &cardCell{}
				cells = append(cells, c)
				return c
			},
		},
		scrollview.WithCellInterval(0.15),
		scrollview.WithScrollOffset(0.5),
	)

	if err := view.UpdateContents(makeItems(40)); err != nil {
		return fmt.Errorf("update contents: %w", err)
	}

	// Live-reload the layout configuration while the window is open.
	var fileWatcher *scrollview.FileWatcher
	if fw, err := scrollview.WatchConfigFile(view, "example/scrollview.toml"); err == nil {
		fileWatcher = fw
		defer fw.Close()
	}

	position := float32(0)
	loopHeld := false

	for !window.ShouldClose() {
		glfw.PollEvents()

		if fileWatcher != nil {
			if _, err := fileWatcher.Apply(); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		}

		// L toggles looping, applied through the view's config surface.
		if input.KeyPressed(glfw.KeyL) {
			if !loopHeld {
				cfg := view.Config()
				cfg.Loop = !cfg.Loop
				view.SetConfig(cfg)
				if err := view.Relayout(); err != nil {
					return err
				}
			}
			loopHeld = true
		} else {
			loopHeld = false
		}

		_, wheelY := input.ConsumeWheel()
		position -= wheelY * 0.25
		if err := view.SetPosition(position); err != nil {
			return fmt.Errorf("layout: %w", err)
		}

		w, h := window.GetFramebufferSize()
		gl.Viewport(0, 0, int32(w), int32(h))
		gl.ClearColor(0.10, 0.10, 0.12, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		renderer.Resize(w, h)
		renderer.Begin()
		cardHeight := view.Config().CellInterval*windowHeight - 8
		for _, cell := range cells {
			if !cell.Visible() {
				continue
			}
			renderer.AddQuad(cardMargin, cell.y, cardWidth, cardHeight, cell.color)
		}
		if err := renderer.Flush(); err != nil {
			return fmt.Errorf("render: %w", err)
		}

		window.SwapBuffers()
	}

	return nil
}

// makeItems builds n cards cycling through a small palette.
func makeItems(n int) []cardItem {
	palette := []uint32{
		opengl.RGBA(0xE6, 0x5A, 0x5A, 0xFF),
		opengl.RGBA(0xE6, 0xA8, 0x5A, 0xFF),
		opengl.RGBA(0xC8, 0xE6, 0x5A, 0xFF),
		opengl.RGBA(0x5A, 0xE6, 0x8C, 0xFF),
		opengl.RGBA(0x5A, 0xC8, 0xE6, 0xFF),
		opengl.RGBA(0x8C, 0x5A, 0xE6, 0xFF),
	}
	items := make([]cardItem, n)
	for i := range items {
		items[i] = cardItem{
			Label: fmt.Sprintf("card %d", i),
			Color: palette[i%len(palette)],
		}
	}
	return items
}
