package util

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var asciiFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// specialFold covers letters that do not decompose into base + combining mark.
var specialFold = strings.NewReplacer(
	"ß", "ss",
	"Æ", "AE", "æ", "ae",
	"Ø", "O", "ø", "o",
	"Đ", "D", "đ", "d",
	"Ł", "L", "ł", "l",
	"Þ", "Th", "þ", "th",
	"Œ", "OE", "œ", "oe",
)

// Transliterate converts accented characters to their closest ASCII
// equivalents, for diacritic-insensitive search.
func Transliterate(s string) string {
	folded, _, err := transform.String(asciiFold, s)
	if err != nil {
		folded = s
	}
	return specialFold.Replace(folded)
}
