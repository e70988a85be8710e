// Package clockface maps wall-clock time to the Unicode clock-face emoji and
// rewrites display names so they carry exactly one trailing clock glyph.
package clockface

import (
	"strings"
	"time"
	"unicode"
)

// Face holds the two glyphs for one hour position on the dial.
type Face struct {
	OnHour   string
	HalfPast string
}

// faces is indexed by hour-of-12, where index 0 is twelve o'clock.
var faces = [12]Face{
	{"🕛", "🕧"}, // twelve
	{"🕐", "🕜"},
	{"🕑", "🕝"},
	{"🕒", "🕞"},
	{"🕓", "🕟"},
	{"🕔", "🕠"},
	{"🕕", "🕡"},
	{"🕖", "🕢"},
	{"🕗", "🕣"},
	{"🕘", "🕤"},
	{"🕙", "🕥"},
	{"🕚", "🕦"},
}

// ForTime returns the glyph for t: the half-past form once the minute hand
// reaches 30, the on-hour form before that.
func ForTime(t time.Time) string {
	f := faces[t.Hour()%12]
	if t.Minute() >= 30 {
		return f.HalfPast
	}
	return f.OnHour
}

// Strip removes a trailing clock glyph from name, matching against the full
// 24-glyph set so a stale glyph from hours ago is still recognized, then
// trims trailing whitespace. A name with no trailing glyph (including one
// shorter than a glyph) comes back unchanged.
func Strip(name string) string {
	for _, f := range faces {
		for _, g := range [2]string{f.OnHour, f.HalfPast} {
			if strings.HasSuffix(name, g) {
				return strings.TrimRightFunc(name[:len(name)-len(g)], unicode.IsSpace)
			}
		}
	}
	return name
}

// Compose appends glyph to the cleaned name with a single separating space.
func Compose(name, glyph string) string {
	return name + " " + glyph
}
