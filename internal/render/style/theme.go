// Package style holds the visual contract shared by the HTML and native
// render adapters: alignment mapping, the background theme and inline CSS
// declaration handling.
package style

import "github.com/goliatone/go-famhome/internal/homemd"

// DefaultDimmerColor darkens background images on every platform.
const DefaultDimmerColor = "rgba(0,0,0,0.55)"

// Theme collects the constants both adapters draw from. Web values are CSS
// strings; native values are numbers in density-independent pixels.
type Theme struct {
	DimmerColor string
	TextColor   string
	ShadowColor string

	ShadowOffsetY int
	ShadowRadius  int

	BackgroundMinHeight int

	WebPadding      string
	WebRadius       int
	NativePadding   int
	NativeRadius    int
	PlainPadding    int
	ImageHeight     int
	ImageRadius     int
	ImageMargin     int
	TextMargin      int
	TextLayerZIndex int
}

// DefaultTheme returns the stock theme.
func DefaultTheme() Theme {
	return Theme{
		DimmerColor:         DefaultDimmerColor,
		TextColor:           "#ffffff",
		ShadowColor:         "rgba(0,0,0,0.8)",
		ShadowOffsetY:       2,
		ShadowRadius:        12,
		BackgroundMinHeight: 450,
		WebPadding:          "80px 40px",
		WebRadius:           24,
		NativePadding:       20,
		NativeRadius:        12,
		PlainPadding:        12,
		ImageHeight:         200,
		ImageRadius:         12,
		ImageMargin:         15,
		TextMargin:          10,
		TextLayerZIndex:     1,
	}
}

// WithDimmer returns a copy of t using color as the dimmer. Blank values
// keep the current color.
func (t Theme) WithDimmer(color string) Theme {
	if color != "" {
		t.DimmerColor = color
	}
	return t
}

// TextShadowCSS renders the text shadow as a CSS value.
func (t Theme) TextShadowCSS() string {
	return "0 " + px(t.ShadowOffsetY) + " " + px(t.ShadowRadius) + " " + t.ShadowColor
}

// FlexAlign maps an alignment onto the flexbox cross-axis value used for
// aligned containers.
func FlexAlign(align homemd.Align) string {
	switch align {
	case homemd.AlignRight:
		return "flex-end"
	case homemd.AlignCenter:
		return "center"
	default:
		return "flex-start"
	}
}

// TextAlign maps an alignment onto a text-align value.
func TextAlign(align homemd.Align) string {
	switch align {
	case homemd.AlignRight, homemd.AlignCenter:
		return string(align)
	default:
		return string(homemd.AlignLeft)
	}
}
