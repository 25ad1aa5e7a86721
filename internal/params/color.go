package params

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// Color is a packed 0xRRGGBB value, the form the panel edits.
type Color uint32

// RGB returns the channels in [0,1].
func (c Color) RGB() (r, g, b float32) {
	return float32((c>>16)&0xff) / 255, float32((c>>8)&0xff) / 255, float32(c&0xff) / 255
}

// Vec3 returns the color as a shader-ready vector.
func (c Color) Vec3() mgl32.Vec3 {
	r, g, b := c.RGB()
	return mgl32.Vec3{r, g, b}
}

// Channel returns one 8-bit channel (0=red, 1=green, 2=blue).
func (c Color) Channel(i int) uint8 {
	return uint8(c >> (8 * (2 - i)))
}

// WithChannel returns c with channel i replaced by v.
func (c Color) WithChannel(i int, v uint8) Color {
	shift := 8 * (2 - i)
	return (c &^ (0xff << shift)) | Color(v)<<shift
}

func (c Color) String() string {
	return fmt.Sprintf("#%06x", uint32(c)&0xffffff)
}

// ParseColor accepts "#rrggbb", "0xrrggbb" or "rrggbb".
func ParseColor(s string) (Color, error) {
	h := strings.TrimSpace(s)
	h = strings.TrimPrefix(h, "#")
	h = strings.TrimPrefix(strings.TrimPrefix(h, "0x"), "0X")
	if len(h) != 6 {
		return 0, fmt.Errorf("color %q: want 6 hex digits", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("color %q: %w", s, err)
	}
	return Color(v), nil
}

func (c Color) MarshalYAML() (any, error) {
	return c.String(), nil
}

func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	if node.Tag == "!!int" {
		var v uint32
		if err := node.Decode(&v); err != nil {
			return err
		}
		*c = Color(v & 0xffffff)
		return nil
	}
	parsed, err := ParseColor(node.Value)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
