package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"

	"github.com/dariadocs/namescreen/internal/flags"
)

// outputAffectingFlags is the subset of the full flag set that can
// actually change a NormalizationResult's shape — spec §4.9 keys the
// cache on "(input, language, subset-of-flags-that-affect-output)",
// not the full flag dictionary, since flags like debug_tracing or
// enable_accuracy_monitoring only affect observability, not output.
var outputAffectingFlags = []string{
	"use_factory_normalizer",
	"fix_initials_double_dot",
	"preserve_hyphenated_case",
	"strict_stopwords",
	"enable_ascii_fastpath",
	"enable_nameparser_en",
	"enable_en_nicknames",
	"en_use_nameparser",
	"enable_en_nickname_expansion",
	"filter_titles_suffixes",
	"enable_enhanced_diminutives",
	"enable_enhanced_gender_rules",
	"preserve_feminine_suffix_uk",
	"enforce_nominative",
	"preserve_feminine_surnames",
	"use_diminutives_dictionary_only",
	"diminutives_allow_cross_lang",
}

// Fingerprint builds the cache key: a SHA-256 hex digest of the input
// text, detected/requested language, and the sorted key=value pairs of
// the output-affecting flag subset.
func Fingerprint(text, language string, f flags.FeatureFlags) string {
	m := f.ToMap()
	pairs := make([]string, 0, len(outputAffectingFlags))
	for _, name := range outputAffectingFlags {
		pairs = append(pairs, name+"="+strconv.FormatBool(m[name]))
	}
	sort.Strings(pairs)

	h := sha256.New()
	h.Write([]byte(text))
	h.Write([]byte{0})
	h.Write([]byte(language))
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(pairs, "&")))
	return hex.EncodeToString(h.Sum(nil))
}
