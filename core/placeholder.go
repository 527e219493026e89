package core

import (
	"fmt"
	"html"
	"strings"
)

// PlaceholderSVG generates the fallback glyph: a size×size gray square with
// the uppercased first character of domain centered in it. The letter comes
// from the original requested domain, not the normalized one.
func PlaceholderSVG(domain string, size int) []byte {
	var letter string
	for _, r := range domain {
		letter = strings.ToUpper(string(r))
		break
	}

	svg := fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 100 100">`+
			`<rect width="100" height="100" fill="#8a8a8a"/>`+
			`<text x="50" y="50" font-family="sans-serif" font-size="60" fill="#ffffff" text-anchor="middle" dominant-baseline="central">%s</text>`+
			`</svg>`,
		size, size, html.EscapeString(letter))

	return []byte(svg)
}
