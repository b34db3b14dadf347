// Package funnify implements the humor transform pipeline: probabilistic
// word substitution, emoji sprinkling, and fake-citation injection, driven
// by a named style preset and an explicit random source.
package funnify

// Style is a named humor preset selecting a transform intensity.
type Style string

const (
	// StyleMild applies gentle, low-probability transforms.
	StyleMild Style = "mild"
	// StyleSpicy applies moderately aggressive transforms.
	StyleSpicy Style = "spicy"
	// StyleChaotic applies the most aggressive transforms.
	StyleChaotic Style = "chaotic"
)

// Intensity returns the transform probability in [0,1] for the style.
// Intensities increase monotonically from mild to chaotic. Unknown styles
// fall back to mild.
func (s Style) Intensity() float64 {
	switch s {
	case StyleMild:
		return 0.2
	case StyleSpicy:
		return 0.5
	case StyleChaotic:
		return 0.9
	default:
		return 0.2
	}
}

// ParseStyle maps a style label to a Style, falling back to mild for
// anything unrecognized.
func ParseStyle(label string) Style {
	switch Style(label) {
	case StyleMild, StyleSpicy, StyleChaotic:
		return Style(label)
	default:
		return StyleMild
	}
}

// Styles lists all known styles in increasing intensity order.
func Styles() []Style {
	return []Style{StyleMild, StyleSpicy, StyleChaotic}
}
