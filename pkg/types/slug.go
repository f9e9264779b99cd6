package types

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func foldDiacritics(value string) string {
	out, _, err := transform.String(deaccent, value)
	if err != nil {
		return value
	}
	return out
}

// Slugify is the loose slug form: lowercase, diacritics folded, every
// run of non-alphanumerics collapsed to a single hyphen.
func Slugify(value string) string {
	folded := strings.ToLower(foldDiacritics(value))
	var b strings.Builder
	lastHyphen := true
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}

// SlugifyName is the primary slug form used for person names: like
// Slugify but intra-word punctuation (apostrophes and the like) is
// dropped instead of hyphenated, so "O'Keeffe" becomes "okeeffe" rather
// than "o-keeffe".
func SlugifyName(value string) string {
	folded := strings.ToLower(foldDiacritics(value))
	var b strings.Builder
	lastHyphen := true
	for _, r := range folded {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastHyphen = false
		case unicode.IsSpace(r):
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
