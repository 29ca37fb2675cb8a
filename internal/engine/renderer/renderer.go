// Package renderer initializes OpenGL and composes each frame offscreen
// before presenting it to the window.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/orbits/internal/engine/framebuffer"
	"github.com/Faultbox/orbits/internal/logger"
)

// Config holds renderer configuration.
type Config struct {
	// Render size in pixels
	Width  int
	Height int

	// Drawable size the frame is scaled to when presented. Zero means the
	// render size.
	OutputWidth  int
	OutputHeight int
}

// Renderer owns the GL state shared by all passes of a frame.
type Renderer struct {
	config  Config
	frame   *framebuffer.Framebuffer
	restore func()
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	if cfg.OutputWidth <= 0 || cfg.OutputHeight <= 0 {
		cfg.OutputWidth, cfg.OutputHeight = cfg.Width, cfg.Height
	}
	r := &Renderer{
		config: cfg,
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)

	var err error
	r.frame, err = framebuffer.New(int32(cfg.Width), int32(cfg.Height))
	if err != nil {
		return nil, err
	}

	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.frame != nil {
		r.frame.Destroy()
	}
}

// Resize handles window size changes: the frame is rendered at width x
// height and presented at outputWidth x outputHeight. Zero sizes are
// ignored.
func (r *Renderer) Resize(width, height, outputWidth, outputHeight int) {
	if width <= 0 || height <= 0 || outputWidth <= 0 || outputHeight <= 0 {
		return
	}
	r.config.Width = width
	r.config.Height = height
	r.config.OutputWidth = outputWidth
	r.config.OutputHeight = outputHeight
	r.frame.Resize(int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("output_width", outputWidth),
		zap.Int("output_height", outputHeight),
	)
}

// Begin starts a new frame: subsequent drawing goes to the offscreen frame.
func (r *Renderer) Begin() {
	r.restore = r.frame.Bind()
	r.frame.Clear(0, 0, 0, 1)
}

// End finishes the frame and copies it to the window's back buffer.
func (r *Renderer) End() {
	if r.restore != nil {
		r.restore()
		r.restore = nil
	}
	r.frame.Present(int32(r.config.OutputWidth), int32(r.config.OutputHeight))
}

// Capture reads back the last composed frame as RGBA rows, bottom row
// first.
func (r *Renderer) Capture() ([]byte, int, int) {
	w, h := r.frame.Size()
	return r.frame.ReadPixels(), int(w), int(h)
}
