package morphology

import (
	"testing"

	"github.com/dariadocs/namescreen/internal/dictionaries"
	"github.com/dariadocs/namescreen/internal/flags"
	"github.com/dariadocs/namescreen/internal/nametrace"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	dicts, err := dictionaries.Load()
	if err != nil {
		t.Fatalf("loading dictionaries: %v", err)
	}
	return New(dicts)
}

// --- diminutive resolution ---

func TestDiminutiveResolvedRussian(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t)
	f := flags.Defaults()
	out, trace := e.NormalizeToken(nametrace.Token{Surface: "Сашка", Role: nametrace.RoleGiven}, "ru", f)
	if out != "Александр" {
		t.Errorf("got %q want Александр", out)
	}
	if trace.Rule != "morph.diminutive_resolved" {
		t.Errorf("expected diminutive_resolved rule, got %q", trace.Rule)
	}
}

func TestDiminutiveResolvedUkrainian(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t)
	f := flags.Defaults()
	out, _ := e.NormalizeToken(nametrace.Token{Surface: "Сашко", Role: nametrace.RoleGiven}, "uk", f)
	if out != "Олександр" {
		t.Errorf("got %q want Олександр", out)
	}
}

func TestDiminutiveDictionaryOnlyDisablesFuzzy(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t)
	f := flags.Defaults()
	f.UseDiminutivesDictionaryOnly = true
	// "сашкаа" is a near-miss misspelling, not a dictionary key.
	out, _ := e.NormalizeToken(nametrace.Token{Surface: "Сашкаа", Role: nametrace.RoleGiven}, "ru", f)
	if out == "Александр" {
		t.Error("fuzzy fallback should be disabled by use_diminutives_dictionary_only")
	}
}

func TestEnglishNicknameExpansion(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t)
	f := flags.Defaults()
	out, _ := e.NormalizeToken(nametrace.Token{Surface: "Bill", Role: nametrace.RoleGiven}, "en", f)
	if out != "William" {
		t.Errorf("got %q want William", out)
	}
}

// --- feminine surname preservation ---

func TestPreserveFeminineSurnameRu(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t)
	f := flags.Defaults()
	f.PreserveFeminineSurnames = true
	out, trace := e.NormalizeToken(nametrace.Token{Surface: "Петрова", Role: nametrace.RoleSurname}, "ru", f)
	if out != "Петрова" {
		t.Errorf("feminine surname must not be masculinized, got %q", out)
	}
	if trace.Rule != "morph.preserve_feminine_suffix_ru" {
		t.Errorf("expected feminine preservation trace, got %q", trace.Rule)
	}
}

func TestPreserveFeminineSurnameUk(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t)
	f := flags.Defaults()
	out, _ := e.NormalizeToken(nametrace.Token{Surface: "Ковальська", Role: nametrace.RoleSurname}, "uk", f)
	if out != "Ковальська" {
		t.Errorf("got %q want Ковальська (unchanged)", out)
	}
}

// --- initials / org passthrough ---

func TestInitialPreserved(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t)
	out, _ := e.NormalizeToken(nametrace.Token{Surface: "И.", Role: nametrace.RoleInitial}, "ru", flags.Defaults())
	if out != "И." {
		t.Errorf("got %q want И.", out)
	}
}

func TestOrgLegalFormUppercased(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t)
	out, _ := e.NormalizeToken(nametrace.Token{Surface: "ооо", Role: nametrace.RoleOrgLegalForm}, "ru", flags.Defaults())
	if out != "ООО" {
		t.Errorf("got %q want ООО", out)
	}
}
