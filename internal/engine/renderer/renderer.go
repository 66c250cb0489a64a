// Package renderer presents the RGB565 framebuffer in the window through
// OpenGL.
package renderer

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/pocketsprite/internal/engine/display"
	"github.com/Faultbox/pocketsprite/internal/logger"
)

// Config holds renderer configuration.
type Config struct {
	// Window drawable size.
	Width  int
	Height int
	// Framebuffer size.
	SourceWidth  int
	SourceHeight int
}

// Renderer uploads the framebuffer into a texture attached to a read
// framebuffer object and blits it, scaled with nearest filtering, into the
// default framebuffer.
type Renderer struct {
	config Config

	texture uint32
	fbo     uint32
	pixels  []byte

	viewport image.Rectangle
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		pixels: make([]byte, cfg.SourceWidth*cfg.SourceHeight*4),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.ClearColor(0, 0, 0, 1)

	gl.GenTextures(1, &r.texture)
	gl.BindTexture(gl.TEXTURE_2D, r.texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8,
		int32(cfg.SourceWidth), int32(cfg.SourceHeight), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, nil)

	gl.GenFramebuffers(1, &r.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, r.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, r.texture, 0)
	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		r.Close()
		return nil, fmt.Errorf("framebuffer incomplete: 0x%x", status)
	}

	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, r.fbo)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.fbo != 0 {
		gl.DeleteFramebuffers(1, &r.fbo)
		r.fbo = 0
	}
	if r.texture != 0 {
		gl.DeleteTextures(1, &r.texture)
		r.texture = 0
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	r.viewport = display.Fit(width, height, r.config.SourceWidth, r.config.SourceHeight)
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Stringer("viewport", r.viewport),
	)
}

// Present draws fb into the window. The caller swaps buffers.
func (r *Renderer) Present(fb *display.Framebuffer) {
	fb.ReadRGBA(r.pixels)

	gl.Clear(gl.COLOR_BUFFER_BIT)

	gl.BindTexture(gl.TEXTURE_2D, r.texture)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0,
		int32(r.config.SourceWidth), int32(r.config.SourceHeight),
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(r.pixels))

	// Row 0 of the texture is the top of the screen, while GL window
	// coordinates grow upwards, so the destination Y range is inverted.
	v := r.viewport
	h := int32(r.config.Height)
	gl.BlitFramebuffer(
		0, 0, int32(r.config.SourceWidth), int32(r.config.SourceHeight),
		int32(v.Min.X), h-int32(v.Min.Y), int32(v.Max.X), h-int32(v.Max.Y),
		gl.COLOR_BUFFER_BIT, gl.NEAREST)
}
