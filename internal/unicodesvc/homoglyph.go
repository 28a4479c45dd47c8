package unicodesvc

// cyrillicToLatin maps a Cyrillic homoglyph to its Latin look-alike.
// Only visually-identical single-codepoint pairs are included; this
// is not a full confusables table, just the set that shows up in
// real payment-description noise.
var cyrillicToLatin = map[rune]rune{
	'а': 'a', 'А': 'A',
	'е': 'e', 'Е': 'E',
	'о': 'o', 'О': 'O',
	'р': 'p', 'Р': 'P',
	'с': 'c', 'С': 'C',
	'у': 'y', 'У': 'Y',
	'х': 'x', 'Х': 'X',
	'і': 'i', 'І': 'I',
	'ј': 'j', 'Ј': 'J',
	'к': 'k', // visually close in some fonts; intentionally conservative otherwise
	'В': 'B',
	'Н': 'H',
	'М': 'M',
	'Т': 'T',
}

var latinToCyrillic map[rune]rune

func init() {
	latinToCyrillic = make(map[rune]rune, len(cyrillicToLatin))
	for cyr, lat := range cyrillicToLatin {
		// Keep the first mapping found for a given Latin target so the
		// fold is a true inverse for the common case.
		if _, exists := latinToCyrillic[lat]; !exists {
			latinToCyrillic[lat] = cyr
		}
	}
}

// homoglyphCounts returns the number of Cyrillic and Latin letters in
// s, counting only letters (not digits or punctuation).
func homoglyphCounts(s string) (cyr, lat int) {
	for _, r := range s {
		switch {
		case isCyrillicLetter(r):
			cyr++
		case isLatinLetter(r):
			lat++
		}
	}
	return
}

func isCyrillicLetter(r rune) bool {
	return (r >= 0x0400 && r <= 0x04FF)
}

func isLatinLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// foldHomoglyphs folds confusable characters of the minority script
// into the dominant script, per spec §4.1 step 2. On an exact tie
// (equal counts) it makes no change — the documented safe default
// (SPEC_FULL.md §9, open question 3).
//
// Returns the folded text and the number of characters replaced.
func foldHomoglyphs(s string) (string, int) {
	cyr, lat := homoglyphCounts(s)
	if cyr == lat {
		return s, 0
	}

	// Cyrillic dominates -> fold minority Latin into Cyrillic, and
	// vice versa.
	var table map[rune]rune
	if cyr > lat {
		table = latinToCyrillic
	} else {
		table = cyrillicToLatin
	}

	replaced := 0
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if mapped, ok := table[r]; ok {
			out = append(out, mapped)
			replaced++
		} else {
			out = append(out, r)
		}
	}
	if replaced == 0 {
		return s, 0
	}
	return string(out), replaced
}
