package graphics

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// ShadowMap is a depth-only framebuffer rendered from the light's point of view.
type ShadowMap struct {
	FBO     uint32
	Texture uint32
	Size    int32
}

// NewShadowMap allocates a size x size depth texture and its framebuffer.
func NewShadowMap(size int32) (*ShadowMap, error) {
	s := &ShadowMap{Size: size}

	gl.GenTextures(1, &s.Texture)
	gl.BindTexture(gl.TEXTURE_2D, s.Texture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.DEPTH_COMPONENT24, size, size, 0, gl.DEPTH_COMPONENT, gl.FLOAT, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_BORDER)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_BORDER)
	border := []float32{1, 1, 1, 1}
	gl.TexParameterfv(gl.TEXTURE_2D, gl.TEXTURE_BORDER_COLOR, &border[0])

	gl.GenFramebuffers(1, &s.FBO)
	gl.BindFramebuffer(gl.FRAMEBUFFER, s.FBO)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.TEXTURE_2D, s.Texture, 0)
	gl.DrawBuffer(gl.NONE)
	gl.ReadBuffer(gl.NONE)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		s.Dispose()
		return nil, fmt.Errorf("shadow framebuffer incomplete: 0x%x", status)
	}
	return s, nil
}

// Begin binds the depth framebuffer and clears it.
func (s *ShadowMap) Begin() {
	gl.Viewport(0, 0, s.Size, s.Size)
	gl.BindFramebuffer(gl.FRAMEBUFFER, s.FBO)
	gl.Clear(gl.DEPTH_BUFFER_BIT)
}

// End restores the default framebuffer with the given viewport.
func (s *ShadowMap) End(width, height int32) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, width, height)
}

// Bind attaches the depth texture to the given texture unit.
func (s *ShadowMap) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, s.Texture)
}

func (s *ShadowMap) Dispose() {
	if s.FBO != 0 {
		gl.DeleteFramebuffers(1, &s.FBO)
	}
	if s.Texture != 0 {
		gl.DeleteTextures(1, &s.Texture)
	}
	s.FBO, s.Texture = 0, 0
}
