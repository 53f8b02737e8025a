package typecast

import (
	"fmt"
	"strings"
)

// languageCodes maps common BCP-47-ish codes to the ISO 639-3 codes the
// Typecast API expects. Region subtags collapse to the base language.
var languageCodes = map[string]string{
	"en":    "eng",
	"en-us": "eng",
	"en-gb": "eng",
	"ko":    "kor",
	"ko-kr": "kor",
	"ja":    "jpn",
	"ja-jp": "jpn",
	"zh":    "zho",
	"zh-cn": "zho",
	"es":    "spa",
	"fr":    "fra",
	"de":    "deu",
}

// known ISO 639-3 codes accepted verbatim. Keeping this explicit surfaces
// typos as errors instead of shipping them to the API.
var iso639_3 = map[string]bool{
	"eng": true, "kor": true, "jpn": true, "zho": true,
	"spa": true, "fra": true, "deu": true,
}

// LanguageCode maps code to the ISO 639-3 form the API expects. Codes already
// in ISO 639-3 pass through unchanged. Unknown codes are rejected with an
// error naming the offending value.
func LanguageCode(code string) (string, error) {
	c := strings.ToLower(strings.TrimSpace(code))
	if mapped, ok := languageCodes[c]; ok {
		return mapped, nil
	}
	if iso639_3[c] {
		return c, nil
	}
	return "", fmt.Errorf("typecast: unsupported language code %q", code)
}
