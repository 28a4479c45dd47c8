// Package unicodesvc implements the Unicode Service (C1):
// character-level normalization (NFC, homoglyph folding, apostrophe
// and dash unification, combining-mark stripping, invisible-character
// removal). Grounded on the teacher's text_normalizer_v2.go step
// sequence and foden303-moderation's x/text transform chain.
package unicodesvc

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// YoPolicy controls how Russian ё is handled in character mapping.
type YoPolicy string

const (
	YoFold     YoPolicy = "fold"     // ё -> е (default)
	YoPreserve YoPolicy = "preserve" // leave ё as-is
)

// Options configures a single Normalize call.
type Options struct {
	NormalizeHomoglyphs bool
	Yo                  YoPolicy
}

// DefaultOptions returns the options used when the caller has no
// opinion: homoglyph folding on, yo folded (spec §4.1 step 3 default).
func DefaultOptions() Options {
	return Options{NormalizeHomoglyphs: true, Yo: YoFold}
}

// Result is C1's output contract.
type Result struct {
	Normalized       string
	Confidence       float64
	ChangesCount     int
	CharReplacements int
	Idempotent       bool
}

var apostropheVariants = []rune{'’', 'ʼ', '`', '´'}
var quoteVariants = []rune{'“', '”', '«', '»'}
var dashVariants = []rune{'–', '—', '−'}

var invisibleChars = map[rune]bool{
	'​': true, // ZWSP
	'‌': true, // ZWNJ
	'‍': true, // ZWJ
	0xFEFF: true, // BOM
	'‪': true, // LRE
	'‫': true, // RLE
	'‬': true, // PDF
	'‭': true, // LRO
	'‮': true, // RLO
	'⁠': true, // word joiner
}

// Normalize is the Unicode Service's single entry point. It never
// panics and never returns an empty Normalized for non-empty input
// unless every character was invisible/removed; on internal error it
// falls back to returning the input unchanged (spec §4.1 failure
// mode). Case is never modified here.
func Normalize(text string, opts Options) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{Normalized: text, Confidence: 0}
		}
	}()

	s := applyPasses(text, opts)

	res.Normalized = s
	if s != text {
		res.ChangesCount = 1
	}
	if opts.NormalizeHomoglyphs {
		_, res.CharReplacements = foldHomoglyphs(mapCharacters(text, opts.Yo))
	}
	res.Confidence = 1.0
	// Idempotence check: a second pass must be a fixpoint. This is a
	// plain re-application, not recursion into Normalize itself.
	res.Idempotent = applyPasses(s, opts) == s
	return res
}

// applyPasses runs the ordered, side-effect-free transform pipeline
// once. Shared between Normalize and its own idempotence check.
func applyPasses(text string, opts Options) string {
	s := RecoverEncoding(text)

	if opts.NormalizeHomoglyphs {
		s, _ = foldHomoglyphs(s)
	}
	s = mapCharacters(s, opts.Yo)
	s = norm.NFC.String(s)
	s = stripCombiningMarks(s, opts.Yo)
	s = removeInvisibles(s)
	s = collapseWhitespace(s)
	return s
}

func mapCharacters(s string, yo YoPolicy) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case containsRune(apostropheVariants, r):
			b.WriteRune('\'')
		case containsRune(quoteVariants, r):
			b.WriteRune('"')
		case containsRune(dashVariants, r):
			b.WriteRune('-')
		case r == 'ё' && yo == YoFold:
			b.WriteRune('е')
		case r == 'Ё' && yo == YoFold:
			b.WriteRune('Е')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func containsRune(set []rune, r rune) bool {
	for _, c := range set {
		if c == r {
			return true
		}
	}
	return false
}

func stripCombiningMarks(s string, yo YoPolicy) string {
	d := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(d))
	var base rune
	for _, r := range d {
		if unicode.Is(unicode.Mn, r) {
			// Breve and diaeresis on a Cyrillic base form й, ї and ё;
			// they are kept so NFC recomposes those letters (ё only
			// under yo=preserve).
			keep := unicode.Is(unicode.Cyrillic, base) && (r == '̆' || r == '̈')
			if yo == YoFold && (base == 'е' || base == 'Е') {
				keep = false
			}
			if keep {
				b.WriteRune(r)
			}
			continue
		}
		base = r
		b.WriteRune(r)
	}
	return norm.NFC.String(b.String())
}

func removeInvisibles(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if invisibleChars[r] {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func collapseWhitespace(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}

// NFKCFold applies NFKC compatibility normalization. The main C1
// pipeline does not call it (it only applies NFC, per spec §4.1 step
// 4), and the pattern generator's AC fold applies norm.NFKC itself.
func NFKCFold(s string) string {
	return norm.NFKC.String(s)
}
