// Package ui2d draws the 2D overlay over the 3D scene: textured quads in
// screen pixels with the origin at the top-left corner.
package ui2d

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/orbits/internal/engine/shader"
	"github.com/Faultbox/orbits/pkg/math"
)

// Vertex format: x, y, u, v, r, g, b, a
const floatsPerVertex = 8

// Texture is an uploaded overlay image.
type Texture struct {
	ID     uint32
	Width  int
	Height int
}

// batch is a run of quads sharing one texture.
type batch struct {
	texture uint32
	first   int32
	count   int32
}

// Renderer handles 2D overlay rendering with OpenGL.
type Renderer struct {
	screenWidth  int
	screenHeight int

	program *shader.Program
	vao     uint32
	vbo     uint32

	vertices []float32
	batches  []batch

	// 1x1 white texture for solid quads
	white uint32
}

// New creates a new 2D renderer.
func New(width, height int) (*Renderer, error) {
	r := &Renderer{
		screenWidth:  width,
		screenHeight: height,
		vertices:     make([]float32, 0, 1024),
	}

	var err error
	r.program, err = shader.NewProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return nil, fmt.Errorf("create overlay shader: %w", err)
	}

	r.createBuffers()

	white := image.NewRGBA(image.Rect(0, 0, 1, 1))
	copy(white.Pix, []byte{255, 255, 255, 255})
	r.white = r.Upload(white).ID

	return r, nil
}

func (r *Renderer) createBuffers() {
	gl.GenVertexArrays(1, &r.vao)
	gl.GenBuffers(1, &r.vbo)

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

	stride := int32(floatsPerVertex * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, 2*4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 4, gl.FLOAT, false, stride, 4*4)

	gl.BindVertexArray(0)
}

// Upload creates a texture from a premultiplied RGBA image, top row first.
// Empty images yield a zero Texture, which draws nothing.
func (r *Renderer) Upload(img *image.RGBA) Texture {
	t := Texture{Width: img.Rect.Dx(), Height: img.Rect.Dy()}
	if t.Width <= 0 || t.Height <= 0 || len(img.Pix) == 0 {
		return Texture{}
	}

	gl.GenTextures(1, &t.ID)
	gl.BindTexture(gl.TEXTURE_2D, t.ID)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(t.Width), int32(t.Height), 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return t
}

// Release deletes a texture created by Upload.
func (r *Renderer) Release(t *Texture) {
	if t.ID != 0 {
		gl.DeleteTextures(1, &t.ID)
		t.ID = 0
	}
}

// Resize updates the screen dimensions.
func (r *Renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.screenWidth = width
	r.screenHeight = height
}

// GetScreenSize returns the current screen dimensions.
func (r *Renderer) GetScreenSize() (int, int) {
	return r.screenWidth, r.screenHeight
}

// Begin starts a new overlay frame.
func (r *Renderer) Begin() {
	r.vertices = r.vertices[:0]
	r.batches = r.batches[:0]
}

// DrawRect draws a filled rectangle.
func (r *Renderer) DrawRect(x, y, width, height float32, color Color) {
	r.addQuad(r.white, x, y, width, height, color)
}

// DrawTexture draws t with its top-left corner at (x, y), scaled to
// width x height and tinted by color.
func (r *Renderer) DrawTexture(t Texture, x, y, width, height float32, color Color) {
	if t.ID == 0 {
		return
	}
	r.addQuad(t.ID, x, y, width, height, color)
}

// DrawTextureCentered draws t at its natural size centered on (cx, cy).
func (r *Renderer) DrawTextureCentered(t Texture, cx, cy float32, color Color) {
	w, h := float32(t.Width), float32(t.Height)
	r.DrawTexture(t, cx-w/2, cy-h/2, w, h, color)
}

func (r *Renderer) addQuad(tex uint32, x, y, w, h float32, c Color) {
	c = c.premultiplied()
	first := int32(len(r.vertices) / floatsPerVertex)

	// Two triangles forming a quad
	r.vertices = append(r.vertices,
		x, y, 0, 0, c.R, c.G, c.B, c.A,
		x+w, y, 1, 0, c.R, c.G, c.B, c.A,
		x+w, y+h, 1, 1, c.R, c.G, c.B, c.A,
		x, y, 0, 0, c.R, c.G, c.B, c.A,
		x+w, y+h, 1, 1, c.R, c.G, c.B, c.A,
		x, y+h, 0, 1, c.R, c.G, c.B, c.A,
	)

	if n := len(r.batches); n > 0 && r.batches[n-1].texture == tex {
		r.batches[n-1].count += 6
		return
	}
	r.batches = append(r.batches, batch{texture: tex, first: first, count: 6})
}

// End renders everything queued since Begin over the current framebuffer.
func (r *Renderer) End() {
	if len(r.vertices) == 0 {
		return
	}

	var prevBlend, prevDepth, prevCull int32
	gl.GetIntegerv(gl.BLEND, &prevBlend)
	gl.GetIntegerv(gl.DEPTH_TEST, &prevDepth)
	gl.GetIntegerv(gl.CULL_FACE, &prevCull)

	// Premultiplied alpha
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)

	proj := math.Ortho(0, float32(r.screenWidth), float32(r.screenHeight), 0, -1, 1)

	r.program.Use()
	r.program.SetMat4("uProjection", &proj[0])
	r.program.SetInt("uTexture", 0)
	gl.ActiveTexture(gl.TEXTURE0)

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(r.vertices)*4, unsafe.Pointer(&r.vertices[0]), gl.STREAM_DRAW)

	for _, b := range r.batches {
		gl.BindTexture(gl.TEXTURE_2D, b.texture)
		gl.DrawArrays(gl.TRIANGLES, b.first, b.count)
	}

	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.UseProgram(0)

	if prevBlend == gl.FALSE {
		gl.Disable(gl.BLEND)
	}
	if prevDepth == gl.TRUE {
		gl.Enable(gl.DEPTH_TEST)
	}
	if prevCull == gl.TRUE {
		gl.Enable(gl.CULL_FACE)
	}
}

// Close releases renderer resources.
func (r *Renderer) Close() {
	if r.white != 0 {
		gl.DeleteTextures(1, &r.white)
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.program != nil {
		r.program.Delete()
	}
}

const vertexShaderSource = `
	#version 410 core

	layout (location = 0) in vec2 aPos;
	layout (location = 1) in vec2 aTexCoord;
	layout (location = 2) in vec4 aColor;

	uniform mat4 uProjection;

	out vec2 vTexCoord;
	out vec4 vColor;

	void main() {
		gl_Position = uProjection * vec4(aPos, 0.0, 1.0);
		vTexCoord = aTexCoord;
		vColor = aColor;
	}
`

const fragmentShaderSource = `
	#version 410 core

	uniform sampler2D uTexture;

	in vec2 vTexCoord;
	in vec4 vColor;
	out vec4 FragColor;

	void main() {
		FragColor = texture(uTexture, vTexCoord) * vColor;
	}
`
