// Package scene renders the orbit scene: a textured starfield sphere seen
// from inside and the orbiting bodies, lit by an HDR environment.
package scene

import (
	"fmt"
	"image"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/orbits/internal/engine/mesh"
	"github.com/Faultbox/orbits/internal/engine/scene/shaders"
	"github.com/Faultbox/orbits/internal/engine/shader"
	"github.com/Faultbox/orbits/internal/engine/texture"
	"github.com/Faultbox/orbits/internal/engine/tween"
	"github.com/Faultbox/orbits/internal/orbit"
	"github.com/Faultbox/orbits/pkg/math"
)

// Scene draws an orbit.System. It owns all GL objects of the 3D pass and
// must only be used on the render thread.
type Scene struct {
	system *orbit.System

	program *shader.Program
	body    *gpuMesh
	stars   *gpuMesh

	bodyTex [orbit.BodyCount]uint32
	starTex uint32

	envTex    uint32
	envLevels int32
	// Ambient light used until the environment arrives.
	Ambient [3]float32

	Exposure float32

	fallbackTex uint32
	width       int
	height      int
}

// New creates GPU resources for sys and sizes the scene to width x height.
func New(sys *orbit.System, width, height int) (*Scene, error) {
	s := &Scene{
		system:   sys,
		Ambient:  [3]float32{0.25, 0.25, 0.28},
		Exposure: 1.0,
	}

	var err error
	s.program, err = shader.NewProgram(shaders.OrbitVertexShader, shaders.OrbitFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("orbit shader: %w", err)
	}

	s.body = uploadMesh(mesh.Sphere(orbit.BodyRadius, orbit.Segments, orbit.Segments))
	s.stars = uploadMesh(mesh.Sphere(orbit.StarRadius, orbit.Segments, orbit.Segments))

	s.fallbackTex = uploadRGBA(texture.Placeholder(), true)
	s.starTex = s.fallbackTex
	for i := range s.bodyTex {
		s.bodyTex[i] = s.fallbackTex
	}

	s.OnResize(width, height)
	return s, nil
}

// AdvanceFrame applies idle spin for elapsed time and draws the frame.
func (s *Scene) AdvanceFrame(elapsed time.Duration) {
	s.system.Advance(elapsed)
	s.Draw()
}

// RotateGroupBy starts an eased rotation of the body group about Y.
func (s *Scene) RotateGroupBy(delta float32, d time.Duration, easing tween.Easing) {
	s.system.RotateGroupBy(delta, d, easing)
}

// OnResize updates the camera and viewport. Repeating a size is a no-op;
// zero sizes are ignored.
func (s *Scene) OnResize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.width, s.height = width, height
	s.system.Resize(width, height)
	gl.Viewport(0, 0, int32(width), int32(height))
}

// SetBodyTexture replaces the color map of body i.
func (s *Scene) SetBodyTexture(i int, img *image.RGBA) error {
	if i < 0 || i >= len(s.bodyTex) {
		return fmt.Errorf("body index %d out of range", i)
	}
	s.replaceTexture(&s.bodyTex[i], img)
	return nil
}

// SetStarfield replaces the starfield texture.
func (s *Scene) SetStarfield(img *image.RGBA) {
	s.replaceTexture(&s.starTex, img)
}

func (s *Scene) replaceTexture(slot *uint32, img *image.RGBA) {
	if *slot != s.fallbackTex {
		gl.DeleteTextures(1, slot)
	}
	texture.FlipVertical(img)
	*slot = uploadRGBA(img, true)
}

// SetEnvironment uploads the HDR environment used for lighting.
func (s *Scene) SetEnvironment(env *texture.HDR) {
	if s.envTex != 0 {
		gl.DeleteTextures(1, &s.envTex)
	}
	s.envTex, s.envLevels = uploadHDR(env)
	s.Ambient = env.Average()
}

// Draw renders the starfield then the bodies into the bound framebuffer.
func (s *Scene) Draw() {
	viewProj := s.system.Camera.ViewProjection()

	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	s.program.Use()
	s.program.SetMat4("uViewProj", &viewProj[0])
	s.program.SetVec3("uCameraPos", s.system.Camera.Position.Array())
	s.program.SetVec3("uAmbient", s.Ambient)
	s.program.SetFloat("uExposure", s.Exposure)
	s.program.SetInt("uColorMap", 0)
	s.program.SetInt("uEnvMap", 1)

	gl.ActiveTexture(gl.TEXTURE1)
	if s.envTex != 0 {
		gl.BindTexture(gl.TEXTURE_2D, s.envTex)
		s.program.SetInt("uHasEnv", 1)
		s.program.SetFloat("uEnvMaxLod", float32(s.envLevels-1))
	} else {
		gl.BindTexture(gl.TEXTURE_2D, s.fallbackTex)
		s.program.SetInt("uHasEnv", 0)
	}
	gl.ActiveTexture(gl.TEXTURE0)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)

	// Starfield: inside faces only, translucent, behind everything. It is
	// lit by the environment like the bodies.
	gl.CullFace(gl.FRONT)
	gl.DepthMask(false)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	s.program.SetFloat("uOpacity", orbit.StarOpacity)
	s.drawMesh(s.stars, s.system.StarMatrix(), s.starTex)

	gl.CullFace(gl.BACK)
	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
	s.program.SetFloat("uOpacity", 1)
	for i := range s.system.Bodies {
		s.drawMesh(s.body, s.system.BodyMatrix(i), s.bodyTex[i])
	}

	gl.Disable(gl.CULL_FACE)
	gl.BindVertexArray(0)
}

func (s *Scene) drawMesh(m *gpuMesh, model math.Mat4, tex uint32) {
	normal := model.Mat3x3()
	s.program.SetMat4("uModel", &model[0])
	s.program.SetMat3("uNormalMatrix", &normal)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	m.draw()
}

// Destroy releases all resources.
func (s *Scene) Destroy() {
	for i := range s.bodyTex {
		if s.bodyTex[i] != s.fallbackTex {
			gl.DeleteTextures(1, &s.bodyTex[i])
		}
	}
	if s.starTex != s.fallbackTex {
		gl.DeleteTextures(1, &s.starTex)
	}
	if s.envTex != 0 {
		gl.DeleteTextures(1, &s.envTex)
	}
	if s.fallbackTex != 0 {
		gl.DeleteTextures(1, &s.fallbackTex)
	}
	if s.body != nil {
		s.body.destroy()
	}
	if s.stars != nil {
		s.stars.destroy()
	}
	if s.program != nil {
		s.program.Delete()
	}
}
