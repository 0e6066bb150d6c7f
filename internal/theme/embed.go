package theme

import "embed"

// EmbeddedThemes contains the bundled stylesheets.
//
//go:embed themes/*.css
var EmbeddedThemes embed.FS

// DefaultThemeName is the name of the bundled stylesheet.
const DefaultThemeName = "osd"

// CSS classes applied to the overlay window.
const (
	ClassWindow      = "osd"
	ClassTranslucent = "translucent"
)

// GetEmbeddedTheme retrieves a bundled stylesheet by name.
func GetEmbeddedTheme(name string) (string, bool) {
	data, err := EmbeddedThemes.ReadFile("themes/" + name + ".css")
	if err != nil {
		return "", false
	}
	return string(data), true
}

