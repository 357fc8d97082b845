// Package normalize cleans free text taken from utterance tokens before it is
// classified or turned into a search term
// Pipeline order for Text
// 1 UTF-8 repair drop invalid bytes
// 2 Unicode NFC composition
// 3 Remove format chars (ZWJ, ZWNJ, BOM) and control chars
// 4 Collapse every whitespace run to one space and trim
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// pool of fresh transformer chains, a chain is stateful and not shareable
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFC,
			runes.Remove(runes.In(unicode.Cf)),
			runes.Remove(runes.Predicate(isStrayControl)),
		)
	},
}

// lowerPool holds language neutral lower casers
var lowerPool = sync.Pool{
	New: func() any { c := cases.Lower(language.Und); return &c },
}

// Text returns s cleaned as described in the package doc
func Text(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToValidUTF8(s, "")

	tr := chainPool.Get().(transform.Transformer)
	ns, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		ns = s
	}
	return collapseSpaces(ns)
}

// Lower lower-cases s without locale specific rules
func Lower(s string) string {
	if s == "" {
		return ""
	}
	c := lowerPool.Get().(*cases.Caser)
	out := c.String(s)
	lowerPool.Put(c)
	return out
}

// isStrayControl matches control runes other than whitespace, which collapseSpaces handles
func isStrayControl(r rune) bool {
	return unicode.IsControl(r) && !unicode.IsSpace(r)
}

// collapseSpaces converts whitespace runs (newlines included) to a single ASCII space and trims
func collapseSpaces(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inWS := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			continue
		}
		if inWS && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inWS = false
		b.WriteRune(r)
	}
	return b.String()
}
