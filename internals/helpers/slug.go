// file: internals/helpers/slug.go
package helper

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"unicode"
)

const (
	SlugMinLen = 3
	SlugMaxLen = 50
)

var slugRe = regexp.MustCompile(`^[a-z0-9-]+$`)

// IsValidSlug reports whether s is lowercase alphanumeric + hyphen, length 3-50.
func IsValidSlug(s string) bool {
	if len(s) < SlugMinLen || len(s) > SlugMaxLen {
		return false
	}
	return slugRe.MatchString(s)
}

// GenerateSlug normalizes a string into a slug:
// - lower-case
// - spaces & non-alnum become "-"
// - collapse runs of "-" into one
// - trim "-" at both ends
func GenerateSlug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	lastDash := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastDash = false
		} else {
			if !lastDash {
				b.WriteRune('-')
				lastDash = true
			}
		}
	}
	out := strings.Trim(b.String(), "-")
	if len(out) > SlugMaxLen {
		out = strings.Trim(out[:SlugMaxLen], "-")
	}
	return out
}

// SuggestSlug returns a randomized numeric-suffix alternative for a taken
// slug. The suggestion is advisory only; the caller must re-check it.
func SuggestSlug(slug string) string {
	return fmt.Sprintf("%s-%d", slug, rand.Intn(1000))
}
