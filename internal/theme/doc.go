// Package theme supplies the stylesheet for the overlay window. A bundled
// stylesheet is embedded; a user stylesheet at ~/.config/osd/style.css
// replaces it and may @import the bundled one.
package theme
