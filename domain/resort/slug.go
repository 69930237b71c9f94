package resort

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// slugFallback is returned when all slug inputs are blank.
const slugFallback = "resort"

// stripAccents removes combining marks after canonical decomposition,
// reducing accented letters to their base Latin form.
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// asciiFold covers letters that canonical decomposition leaves untouched.
var asciiFold = strings.NewReplacer(
	"ł", "l", "Ł", "L",
	"ø", "o", "Ø", "O",
	"ß", "ss",
)

// Slug builds a lowercase, URL-safe identifier from a resort's name, city and
// region. Blank parts are skipped; the remaining parts are space-joined in
// that order, accent-stripped, and non-alphanumeric runs collapse to single
// hyphens. An all-blank input yields a fixed fallback token. Deterministic
// and pure: the same inputs always produce the same slug.
func Slug(name, city, region string) string {
	var parts []string
	for _, p := range []string{name, city, region} {
		if t := strings.TrimSpace(p); t != "" {
			parts = append(parts, t)
		}
	}

	joined := asciiFold.Replace(strings.Join(parts, " "))
	if folded, _, err := transform.String(stripAccents, joined); err == nil {
		joined = folded
	}

	var b strings.Builder
	b.Grow(len(joined))
	lastWasHyphen := false
	for _, r := range strings.ToLower(joined) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastWasHyphen = false
		default:
			if !lastWasHyphen {
				b.WriteRune('-')
				lastWasHyphen = true
			}
		}
	}

	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return slugFallback
	}
	return slug
}

// DetailKey combines the slug with the resort ID ("slug--id") so that
// detail-page links stay unique even when slugs collide.
func DetailKey(name, city, region string, id int64) string {
	return fmt.Sprintf("%s--%d", Slug(name, city, region), id)
}
