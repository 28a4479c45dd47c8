package patterngen

import (
	"strings"
	"testing"

	"github.com/dariadocs/namescreen/internal/dictionaries"
	"github.com/dariadocs/namescreen/internal/nametrace"
)

func testDicts(t *testing.T) *dictionaries.Set {
	t.Helper()
	d, err := dictionaries.Load()
	if err != nil {
		t.Fatalf("loading dictionaries: %v", err)
	}
	return d
}

func TestTier0MatchesIBAN(t *testing.T) {
	t.Parallel()
	hits := Tier0Matches("account UA213223130000026007233566001 belongs to")
	found := false
	for _, h := range hits {
		if h.kind == "iban" {
			found = true
		}
	}
	if !found {
		t.Error("expected an IBAN tier-0 hit")
	}
}

func TestGenerateFullNameIsTier1(t *testing.T) {
	t.Parallel()
	dicts := testDicts(t)
	seeds := []NameSeed{{Given: "Александр", Surname: "Петров", Language: "ru"}}
	patterns := Generate("", seeds, dicts, DefaultOptions())

	var full *nametrace.UnifiedPattern
	for i := range patterns {
		if patterns[i].Pattern == "Александр Петров" {
			full = &patterns[i]
		}
	}
	if full == nil {
		t.Fatal("expected the full given+surname pattern to survive generation")
	}
	if full.RecallTier != nametrace.Tier1 {
		t.Errorf("expected tier 1, got %v", full.RecallTier)
	}
}

func TestGenerateIncludesInitialsPermutation(t *testing.T) {
	t.Parallel()
	dicts := testDicts(t)
	seeds := []NameSeed{{Given: "Александр", Surname: "Петров", Language: "ru"}}
	patterns := Generate("", seeds, dicts, DefaultOptions())

	found := false
	for _, p := range patterns {
		if p.Pattern == "Петров А." {
			found = true
		}
	}
	if !found {
		t.Error("expected a 'Surname I.' initials permutation among generated patterns")
	}
}

func TestGenerateIncludesDiminutiveExpansion(t *testing.T) {
	t.Parallel()
	dicts := testDicts(t)
	seeds := []NameSeed{{Given: "Александр", Surname: "Петров", Language: "ru"}}
	patterns := Generate("", seeds, dicts, DefaultOptions())

	found := false
	for _, p := range patterns {
		if strings.Contains(p.Pattern, "Саша") {
			found = true
		}
	}
	if !found {
		t.Error("expected a diminutive variant (Саша) among generated patterns")
	}
}

func TestGenerateIncludesGenderSwap(t *testing.T) {
	t.Parallel()
	dicts := testDicts(t)
	seeds := []NameSeed{{Surname: "Петров", Language: "ru"}}
	patterns := Generate("", seeds, dicts, DefaultOptions())

	found := false
	for _, p := range patterns {
		if strings.Contains(p.Pattern, "Петрова") {
			found = true
		}
	}
	if !found {
		t.Error("expected a gender-swapped surname (Петрова) among generated patterns")
	}
}

func TestGenerateDeduplicatesCaseInsensitively(t *testing.T) {
	t.Parallel()
	dicts := testDicts(t)
	seeds := []NameSeed{{Given: "Иван", Surname: "Иванов", Language: "ru"}}
	patterns := Generate("", seeds, dicts, DefaultOptions())

	seen := map[string]int{}
	for _, p := range patterns {
		seen[strings.ToLower(p.Pattern)]++
	}
	for k, n := range seen {
		if n > 1 {
			t.Errorf("pattern %q appeared %d times, expected deduplication", k, n)
		}
	}
}

func TestExportForAhoCorasickFoldsToSingleAlphabet(t *testing.T) {
	t.Parallel()
	patterns := []nametrace.UnifiedPattern{
		{Pattern: "Петров", RecallTier: nametrace.Tier2, Variants: []string{"Петров"}},
		{Pattern: "Petrov", RecallTier: nametrace.Tier2, Variants: []string{"Petrov"}},
	}
	exported := ExportForAhoCorasick(patterns)
	tier2 := exported["tier_2"]
	if len(tier2) != 1 {
		t.Fatalf("expected cyrillic and latin forms to fold to one entry, got %v", tier2)
	}
	if tier2[0] != "petrov" {
		t.Errorf("got %q want petrov", tier2[0])
	}
}

func TestTransliterateRoundTrip(t *testing.T) {
	t.Parallel()
	lat := TransliterateCyrToLatin("Шевченко")
	if lat != "Shevchenko" {
		t.Errorf("got %q want Shevchenko", lat)
	}
	if back := TransliterateLatinToCyr(lat); back != "Шевченко" {
		t.Errorf("round trip: got %q want Шевченко", back)
	}
}

func TestAhoCorasickFindsFoldedMatch(t *testing.T) {
	t.Parallel()
	ac := NewAhoCorasick()
	ac.Build([]nametrace.UnifiedPattern{
		{Pattern: "Петров", RecallTier: nametrace.Tier2, PrecisionHint: 0.5, Variants: []string{"Петров"}},
	})
	matches := ac.Search("документ подписан: Petrov сегодня")
	if len(matches) == 0 {
		t.Error("expected the transliterated Latin form to match a Cyrillic-indexed pattern")
	}
}

func TestAhoCorasickHasMatch(t *testing.T) {
	t.Parallel()
	ac := NewAhoCorasick()
	ac.Build([]nametrace.UnifiedPattern{
		{Pattern: "Иванов", RecallTier: nametrace.Tier2, Variants: []string{"Иванов"}},
	})
	if !ac.HasMatch("справка на Иванова выдана") {
		t.Error("expected a substring match against a declined form containing the indexed stem")
	}
	if ac.HasMatch("совершенно другой текст") {
		t.Error("expected no match for unrelated text")
	}
}
