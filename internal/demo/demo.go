// Package demo wires the window, renderers and sequencer into the frame
// loop.
package demo

import (
	"context"
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/orbits/internal/assets"
	"github.com/Faultbox/orbits/internal/config"
	"github.com/Faultbox/orbits/internal/engine/debug"
	"github.com/Faultbox/orbits/internal/engine/input"
	"github.com/Faultbox/orbits/internal/engine/renderer"
	"github.com/Faultbox/orbits/internal/engine/scene"
	"github.com/Faultbox/orbits/internal/engine/ui2d"
	"github.com/Faultbox/orbits/internal/engine/window"
	"github.com/Faultbox/orbits/internal/headings"
	"github.com/Faultbox/orbits/internal/logger"
	"github.com/Faultbox/orbits/internal/orbit"
	"github.com/Faultbox/orbits/internal/sequencer"
	"github.com/Faultbox/orbits/internal/stage"
)

// Title is the window title.
const Title = "Orbits"

// Demo is the running demo instance.
type Demo struct {
	cfg     *config.Config
	running bool
	log     *zap.Logger

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	scene    *scene.Scene
	overlay  *ui2d.Renderer

	stage     *stage.Stage
	sequencer *sequencer.Sequencer

	assets     *assets.Manager
	pending    <-chan assets.Result
	stopAssets context.CancelFunc

	headingTex  [headings.Count]ui2d.Texture
	screenshots *debug.ScreenshotCapture
	capture     bool
}

// New creates the window, GL resources and animation state, and starts
// loading assets in the background.
func New(cfg *config.Config) (*Demo, error) {
	d := &Demo{
		cfg: cfg,
		log: logger.Named("demo"),
	}

	var err error
	d.window, err = window.New(window.Config{
		Title:      Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderers work in pixels, which differ from window coordinates on
	// high-DPI displays
	width, height, outW, outH := d.renderSize()

	d.renderer, err = renderer.New(renderer.Config{
		Width:        width,
		Height:       height,
		OutputWidth:  outW,
		OutputHeight: outH,
	})
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	var titles [headings.Count]string
	copy(titles[:], cfg.Headings.Titles)
	d.stage = stage.New(titles, width, height)

	d.scene, err = scene.New(d.stage.Orbit, width, height)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("failed to create scene: %w", err)
	}
	d.stage.Rotator = d.scene

	d.overlay, err = ui2d.New(width, height)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("failed to create overlay: %w", err)
	}

	if err := d.renderHeadings(); err != nil {
		d.Close()
		return nil, err
	}

	d.sequencer = sequencer.New(time.Now, d.stage, sequencer.WithLogger(logger.Named("sequencer")))
	d.input = input.New()
	d.screenshots = debug.NewScreenshotCapture(cfg.Debug.ScreenshotDir, "orbits")

	d.startAssets()

	d.log.Info("demo initialized",
		zap.Int("width", width),
		zap.Int("height", height))
	return d, nil
}

// renderSize returns the capped render size and the drawable size.
func (d *Demo) renderSize() (width, height, outW, outH int) {
	ww, wh := d.window.GetSize()
	outW, outH = d.window.DrawableSize()
	width, height = orbit.RenderSize(ww, wh, outW, outH)
	return width, height, outW, outH
}

// renderHeadings rasterizes the titles once, scaled for the render pixel
// density.
func (d *Demo) renderHeadings() error {
	ww, _ := d.window.GetSize()
	rw, _, _, _ := d.renderSize()
	scale := 1.0
	if ww > 0 && rw > 0 {
		scale = float64(rw) / float64(ww)
	}

	raster, err := headings.NewRasterizer(d.cfg.Headings.FontSize * scale)
	if err != nil {
		return err
	}
	defer raster.Close()

	for i, img := range raster.RenderSet(d.stage.Headings) {
		d.headingTex[i] = d.overlay.Upload(img)
	}
	return nil
}

// Run runs the frame loop until the window closes or Escape is pressed.
func (d *Demo) Run() error {
	d.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := lastTime

	d.log.Info("starting frame loop")

	for d.running {
		now := time.Now()
		dt := now.Sub(lastTime)
		lastTime = now

		if d.input.Update() {
			d.running = false
			break
		}
		d.handleEvents()
		d.pollAssets()

		d.stage.Update(dt)

		d.renderer.Begin()
		d.scene.AdvanceFrame(dt)
		d.drawOverlay()
		d.renderer.End()

		if d.capture {
			d.capture = false
			d.saveScreenshot()
		}

		d.window.SwapBuffers()

		frameCount++
		if elapsed := time.Since(fpsTimer); elapsed >= time.Second {
			fps := float64(frameCount) / elapsed.Seconds()
			d.log.Debug("fps", zap.Float64("fps", fps), zap.Duration("dt", dt))
			if d.cfg.Debug.ShowFPS {
				d.window.SetTitle(fmt.Sprintf("%s - %.0f FPS", Title, fps))
			}
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (d *Demo) handleEvents() {
	for _, event := range d.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			d.resize()
		case input.EventWheel:
			d.sequencer.OnWheel(event.WheelDelta)
		}
	}

	if d.input.IsKeyPressed(sdl.SCANCODE_ESCAPE) {
		d.running = false
	}
	if d.input.IsKeyPressed(sdl.SCANCODE_F12) {
		d.capture = true
	}
}

// resize propagates the render size to every consumer.
func (d *Demo) resize() {
	width, height, outW, outH := d.renderSize()
	if width <= 0 || height <= 0 {
		return
	}
	d.renderer.Resize(width, height, outW, outH)
	d.scene.OnResize(width, height)
	d.overlay.Resize(width, height)
}

func (d *Demo) drawOverlay() {
	width, height := d.overlay.GetScreenSize()

	d.overlay.Begin()
	for _, p := range d.stage.Headings.Layout(width, height) {
		if p.Visible {
			d.overlay.DrawTextureCentered(d.headingTex[p.Index], p.CenterX, p.CenterY, ui2d.ColorWhite)
		}
	}
	d.drawStepIndicator(width, height)
	d.overlay.End()
}

// drawStepIndicator draws one marker per heading along the right edge,
// highlighting the heading in view.
func (d *Demo) drawStepIndicator(width, height int) {
	const size, gap, margin = 8, 16, 32
	current := d.stage.Headings.Current()
	x := float32(width - margin - size)
	top := float32(height)/2 - float32(headings.Count*gap)/2
	for i := 0; i < headings.Count; i++ {
		c := ui2d.ColorTextDim.WithAlpha(0.5)
		if i == current {
			c = ui2d.ColorWhite
		}
		d.overlay.DrawRect(x, top+float32(i*gap), size, size, c)
	}
}

func (d *Demo) saveScreenshot() {
	pixels, width, height := d.renderer.Capture()
	path, err := d.screenshots.CaptureFromPixels(pixels, width, height)
	if err != nil {
		d.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	d.log.Info("screenshot saved", zap.String("path", path))
}

// Close cleans up demo resources.
func (d *Demo) Close() {
	d.log.Info("closing demo")

	if d.stopAssets != nil {
		d.stopAssets()
	}
	if d.assets != nil {
		d.assets.Close()
	}
	if d.overlay != nil {
		for i := range d.headingTex {
			d.overlay.Release(&d.headingTex[i])
		}
		d.overlay.Close()
	}
	if d.scene != nil {
		d.scene.Destroy()
	}
	if d.renderer != nil {
		d.renderer.Close()
	}
	if d.window != nil {
		d.window.Close()
	}
}
