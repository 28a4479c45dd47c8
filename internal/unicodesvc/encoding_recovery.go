package unicodesvc

import "strings"

// mojibakeToCyrillic maps byte-sequence fragments that show up when
// CP-1251/CP-1252 bytes get mis-decoded through the wrong codepage
// and re-encoded as UTF-8 ("Ð°", "Ñ€", ...). RecoverEncoding repairs
// these when doing so increases the Cyrillic letter count, per
// spec §4.1 step 1.
var mojibakeToCyrillic = map[string]string{
	"Ð°": "а", "Ð±": "б", "Ð²": "в", "Ð³": "г", "Ð´": "д",
	"Ðµ": "е", "Ð¶": "ж", "Ð·": "з", "Ð¸": "и", "Ð¹": "й",
	"Ðº": "к", "Ð»": "л", "Ð¼": "м", "Ð½": "н", "Ð¾": "о",
	"Ð¿": "п", "Ñ€": "р", "Ñ": "с", "Ñ‚": "т", "Ñƒ": "у",
	"Ñ„": "ф", "Ñ…": "х", "Ñ†": "ц", "Ñ‡": "ч", "Ñˆ": "ш",
	"Ñ‰": "щ",
}

// RecoverEncoding attempts to repair CP-1251/CP-1252 mojibake.
// Returns the input unchanged if no repair increases the Cyrillic
// letter count.
func RecoverEncoding(s string) string {
	if !strings.Contains(s, "Ð") && !strings.Contains(s, "Ñ") {
		return s
	}

	repaired := s
	for bad, good := range mojibakeToCyrillic {
		repaired = strings.ReplaceAll(repaired, bad, good)
	}

	origCyr, _ := homoglyphCounts(s)
	newCyr, _ := homoglyphCounts(repaired)
	if newCyr > origCyr {
		return repaired
	}
	return s
}
