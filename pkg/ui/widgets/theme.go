package widgets

import "github.com/odvcencio/persistui/pkg/ui/backend"

// Button palettes.
var (
	ThemeBlue = backend.Palette{
		Text:       backend.ColorRGB(16, 24, 48),
		Background: backend.ColorRGB(48, 72, 144),
		Highlight:  backend.ColorRGB(64, 96, 192),
		Shadow:     backend.ColorRGB(32, 48, 96),
	}
	ThemeRed = backend.Palette{
		Text:       backend.ColorRGB(48, 16, 16),
		Background: backend.ColorRGB(144, 48, 48),
		Highlight:  backend.ColorRGB(192, 64, 64),
		Shadow:     backend.ColorRGB(96, 32, 32),
	}
	ThemeGreen = backend.Palette{
		Text:       backend.ColorRGB(16, 48, 16),
		Background: backend.ColorRGB(48, 144, 48),
		Highlight:  backend.ColorRGB(64, 192, 64),
		Shadow:     backend.ColorRGB(32, 96, 32),
	}
)
