package manifest

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

const slugMaxLen = 80

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// Slugify lower-cases s, replaces runs of filesystem-unsafe characters with a
// single dash, and truncates to 80 characters.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.Trim(unsafeChars.ReplaceAllString(s, "-"), "-")
	if len(s) > slugMaxLen {
		s = s[:slugMaxLen]
	}
	return s
}

// ShortHash returns the first 8 hex characters of the SHA-1 of s. Used to
// make derived filenames track their text: same text, same name; changed
// text, changed name.
func ShortHash(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])[:8]
}

// DeriveFilename builds the deterministic output filename for a line without
// an explicit one: slug of "{set}-{key}", the text hash, and the format as
// extension.
func DeriveFilename(set, key, text, format string) string {
	return fmt.Sprintf("%s-%s.%s", Slugify(set+"-"+key), ShortHash(text), format)
}
