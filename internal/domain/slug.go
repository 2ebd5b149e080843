package domain

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// Décomposition NFD puis suppression des marques combinantes : "é" -> "e".
	slugNormalizer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	slugNonWord = regexp.MustCompile(`[^\w\s-]`)
	slugSpaces  = regexp.MustCompile(`\s+`)
	slugHyphens = regexp.MustCompile(`-{2,}`)
)

// Slugify dérive un slug URL-safe d'un nom d'affichage : minuscules,
// accents supprimés, caractères non alphanumériques retirés, espaces en tirets.
// "Électronique & Gadgets" -> "electronique-gadgets".
func Slugify(nom string) string {
	s := strings.ToLower(strings.TrimSpace(nom))
	if out, _, err := transform.String(slugNormalizer, s); err == nil {
		s = out
	}
	s = slugNonWord.ReplaceAllString(s, "")
	s = slugSpaces.ReplaceAllString(s, "-")
	s = slugHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
