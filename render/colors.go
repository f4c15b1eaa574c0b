// Package render draws engine frames onto a tcell screen
package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// RGB stores explicit 8-bit color channels, decoupled from tcell
type RGB struct {
	R, G, B uint8
}

// Palette
var (
	RgbBackground = RGB{26, 27, 38}    // Tokyo Night background
	RgbCard       = RGB{40, 42, 58}    // card face
	RgbCardBorder = RGB{122, 162, 247} // resting border
	RgbNextCard   = RGB{33, 35, 48}
	RgbText       = RGB{192, 202, 245}
	RgbTextDim    = RGB{86, 95, 137}
	RgbLike       = RGB{158, 206, 106} // green
	RgbIgnore     = RGB{247, 118, 142} // red
	RgbDetails    = RGB{125, 207, 255} // cyan
	RgbSheet      = RGB{36, 40, 59}
	RgbHandle     = RGB{169, 177, 214}
	RgbImage      = RGB{65, 72, 104}
	RgbStatusBar  = RGB{22, 22, 30}
	RgbHintDim    = RGB{60, 66, 96}
	RgbHintBright = RGB{224, 175, 104}
)

// Tcell converts to a tcell color
func (c RGB) Tcell() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Blend performs alpha blending: result = src*alpha + dst*(1-alpha)
func (dst RGB) Blend(src RGB, alpha float64) RGB {
	if alpha <= 0 {
		return dst
	}
	if alpha >= 1 {
		return src
	}
	inv := 1.0 - alpha
	return RGB{
		R: uint8(float64(src.R)*alpha + float64(dst.R)*inv),
		G: uint8(float64(src.G)*alpha + float64(dst.G)*inv),
		B: uint8(float64(src.B)*alpha + float64(dst.B)*inv),
	}
}

// BlendLab interpolates in CIE-Lab so pulses stay saturated through the midpoint
func (dst RGB) BlendLab(src RGB, t float64) RGB {
	if t <= 0 {
		return dst
	}
	if t >= 1 {
		return src
	}
	r, g, b := dst.colorful().BlendLab(src.colorful(), t).Clamped().RGB255()
	return RGB{r, g, b}
}

func (c RGB) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func style(fg, bg RGB) tcell.Style {
	return tcell.StyleDefault.Foreground(fg.Tcell()).Background(bg.Tcell())
}
