package graphics

import (
	"fmt"
	"image"
	"image/draw"
	"math"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// FontCharacter describes a single character's placement and metrics within the atlas
type FontCharacter struct {
	AtlasX   float32
	AtlasY   float32
	Width    float32
	Height   float32
	BearingX float32
	BearingY float32
	Advance  int
}

// FontAtlas holds rasterized glyphs and their metrics. TextureID is zero
// until Upload is called.
type FontAtlas struct {
	TextureID  uint32
	AtlasW     int
	AtlasH     int
	LineHeight int
	Characters map[rune]FontCharacter
	Image      *image.Alpha
}

const atlasWidth = 512

// BuildFontAtlas rasterizes printable ASCII from a TrueType/OpenType font at
// fontPixels size. No GL calls are made.
func BuildFontAtlas(fontBytes []byte, fontPixels int) (*FontAtlas, error) {
	f, err := opentype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: float64(fontPixels), DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	defer func() { _ = face.Close() }()

	const padding = 1
	characters := make(map[rune]FontCharacter)

	// First pass: place glyphs in rows to find the atlas height
	type placed struct {
		r      rune
		x, y   int
		dr     image.Rectangle
		mask   image.Image
		maskp  image.Point
		adv    fixed.Int26_6
		hasBmp bool
	}
	var glyphs []placed
	offsetX, offsetY, rowHeight := 0, 0, 0
	for r := rune(32); r <= 126; r++ {
		dr, mask, maskp, advance, ok := face.Glyph(fixed.P(0, 0), r)
		if !ok {
			continue
		}
		g := placed{r: r, dr: dr, mask: mask, maskp: maskp, adv: advance}
		gw, gh := dr.Dx(), dr.Dy()
		if mask != nil && gw > 0 && gh > 0 {
			if offsetX+gw > atlasWidth {
				offsetX = 0
				offsetY += rowHeight + padding
				rowHeight = 0
			}
			g.x, g.y, g.hasBmp = offsetX, offsetY, true
			offsetX += gw + padding
			rowHeight = max(rowHeight, gh)
		}
		glyphs = append(glyphs, g)
	}
	atlasH := offsetY + rowHeight + padding

	atlasImg := image.NewAlpha(image.Rect(0, 0, atlasWidth, atlasH))
	for _, g := range glyphs {
		fc := FontCharacter{
			AtlasX:   float32(g.x),
			AtlasY:   float32(g.y),
			BearingX: float32(g.dr.Min.X),
			BearingY: float32(-g.dr.Min.Y),
			Advance:  int(math.Round(float64(g.adv) / 64.0)),
		}
		if g.hasBmp {
			dst := image.Rect(g.x, g.y, g.x+g.dr.Dx(), g.y+g.dr.Dy())
			draw.Draw(atlasImg, dst, g.mask, g.maskp, draw.Src)
			fc.Width = float32(g.dr.Dx())
			fc.Height = float32(g.dr.Dy())
		}
		characters[g.r] = fc
	}

	return &FontAtlas{
		AtlasW:     atlasWidth,
		AtlasH:     atlasH,
		LineHeight: face.Metrics().Height.Round(),
		Characters: characters,
		Image:      atlasImg,
	}, nil
}

// DefaultFontAtlas rasterizes the embedded Go Regular font.
func DefaultFontAtlas(fontPixels int) (*FontAtlas, error) {
	return BuildFontAtlas(goregular.TTF, fontPixels)
}

// Upload creates the GL_RED texture for the atlas.
func (a *FontAtlas) Upload() {
	gl.GenTextures(1, &a.TextureID)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, a.TextureID)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RED, int32(a.AtlasW), int32(a.AtlasH), 0, gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(a.Image.Pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Measure returns the width and tallest glyph height of text at scale.
func (a *FontAtlas) Measure(text string, scale float32) (float32, float32) {
	var width, maxH float32
	for _, r := range text {
		fc, ok := a.Characters[r]
		if !ok {
			fc = a.Characters[' ']
		}
		width += float32(fc.Advance) * scale
		maxH = max(maxH, fc.Height*scale)
	}
	return width, maxH
}

// Vertices builds two triangles per glyph (x, y, u, v per vertex) with the
// baseline at y, in a top-left-origin pixel space.
func (a *FontAtlas) Vertices(text string, x, y, scale float32) []float32 {
	vertices := make([]float32, 0, len(text)*6*4)
	for _, r := range text {
		fc, ok := a.Characters[r]
		if !ok {
			x += float32(a.Characters[' '].Advance) * scale
			continue
		}
		if fc.Width > 0 && fc.Height > 0 {
			xPos := x + fc.BearingX*scale
			yPos := y - fc.BearingY*scale
			w := fc.Width * scale
			h := fc.Height * scale

			u0 := fc.AtlasX / float32(a.AtlasW)
			v0 := fc.AtlasY / float32(a.AtlasH)
			u1 := u0 + fc.Width/float32(a.AtlasW)
			v1 := v0 + fc.Height/float32(a.AtlasH)

			vertices = append(vertices,
				xPos, yPos+h, u0, v1,
				xPos, yPos, u0, v0,
				xPos+w, yPos, u1, v0,
				xPos, yPos+h, u0, v1,
				xPos+w, yPos, u1, v0,
				xPos+w, yPos+h, u1, v1,
			)
		}
		x += float32(fc.Advance) * scale
	}
	return vertices
}

// FontRenderer draws text from an uploaded atlas
type FontRenderer struct {
	atlas      *FontAtlas
	shader     *Shader
	projection mgl32.Mat4
	vao        uint32
	vbo        uint32
}

// NewFontRenderer uploads the atlas and compiles the font shader
func NewFontRenderer(atlas *FontAtlas) (*FontRenderer, error) {
	if atlas == nil || len(atlas.Characters) == 0 {
		return nil, fmt.Errorf("invalid font atlas")
	}
	shader, err := NewShader("font")
	if err != nil {
		return nil, err
	}
	if atlas.TextureID == 0 {
		atlas.Upload()
	}
	fr := &FontRenderer{atlas: atlas, shader: shader}
	gl.GenVertexArrays(1, &fr.vao)
	gl.GenBuffers(1, &fr.vbo)
	gl.BindVertexArray(fr.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, fr.vbo)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 4, gl.FLOAT, false, 4*4, gl.PtrOffset(0))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return fr, nil
}

// SetViewport sets the pixel-space projection (top-left origin).
func (fr *FontRenderer) SetViewport(width, height float32) {
	fr.projection = mgl32.Ortho(0, width, height, 0, -1, 1)
}

// Atlas exposes glyph metrics for layout.
func (fr *FontRenderer) Atlas() *FontAtlas {
	return fr.atlas
}

// Measure returns the pixel size text will occupy at scale.
func (fr *FontRenderer) Measure(text string, scale float32) (float32, float32) {
	return fr.atlas.Measure(text, scale)
}

// Render draws text with its baseline at (x, y).
func (fr *FontRenderer) Render(text string, x, y, scale float32, color mgl32.Vec3) {
	fr.draw(fr.atlas.Vertices(text, x, y, scale), color)
}

// RenderLines draws several lines in one call, lineStep pixels apart.
func (fr *FontRenderer) RenderLines(lines []string, x, yStart, lineStep, scale float32, color mgl32.Vec3) {
	var vertices []float32
	y := yStart
	for _, line := range lines {
		vertices = append(vertices, fr.atlas.Vertices(line, x, y, scale)...)
		y += lineStep
	}
	fr.draw(vertices, color)
}

func (fr *FontRenderer) draw(vertices []float32, color mgl32.Vec3) {
	if len(vertices) == 0 {
		return
	}
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	fr.shader.Use()
	fr.shader.SetVector3("textColor", color)
	fr.shader.SetMatrix4("projection", fr.projection)
	fr.shader.SetInt("text", 0)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, fr.atlas.TextureID)
	gl.BindVertexArray(fr.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, fr.vbo)

	// orphan then fill to avoid stalls on the previous frame's buffer
	size := len(vertices) * 4
	gl.BufferData(gl.ARRAY_BUFFER, size, nil, gl.DYNAMIC_DRAW)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, gl.Ptr(vertices))
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(vertices)/4))

	gl.BindVertexArray(0)
	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
}

func (fr *FontRenderer) Dispose() {
	if fr.vbo != 0 {
		gl.DeleteBuffers(1, &fr.vbo)
	}
	if fr.vao != 0 {
		gl.DeleteVertexArrays(1, &fr.vao)
	}
	if fr.atlas.TextureID != 0 {
		gl.DeleteTextures(1, &fr.atlas.TextureID)
	}
	fr.shader.Delete()
}
