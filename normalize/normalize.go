// Package normalize canonicalizes query names before source lookups.
package normalize

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// combiningMarks covers the Unicode combining diacritical marks block
// (U+0300 through U+036F).
var combiningMarks = &unicode.RangeTable{
	R16: []unicode.Range16{{Lo: 0x0300, Hi: 0x036f, Stride: 1}},
}

// String decomposes s (NFKD) and strips combining diacritical marks so
// accented names match unaccented source text. Idempotent: normalizing
// an already normalized string returns it unchanged. Safe for
// concurrent use.
func String(s string) string {
	// Chained transformers carry internal buffers, so each call gets
	// a fresh one; a shared package-level chain is not goroutine-safe.
	stripMarks := transform.Chain(norm.NFKD, runes.Remove(runes.In(combiningMarks)))
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		return s
	}
	return out
}
