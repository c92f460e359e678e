// Package renderer turns ledger aggregates into markdown reports. Every view
// returns a plain markdown string; the caller decides whether to print it raw
// or through a terminal renderer.
package renderer

import (
	"fmt"

	"github.com/etnz/klocking"
)

// rowLabel renders the duration cell of a chart row honoring the user's
// minute/hour display preference.
func rowLabel(mins int, settings klocking.Settings) string {
	return klocking.FormatMinutes(mins, settings.ShowMinutes)
}

// colorDot renders the small color swatch prefixed to activity names.
func colorDot(color string) string {
	if color == "" {
		return ""
	}
	return fmt.Sprintf("`%s`", color)
}
