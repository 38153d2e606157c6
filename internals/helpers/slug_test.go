package helper

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"My Awesome Academy", "my-awesome-academy"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"Weird!!Chars##Here", "weird-chars-here"},
		{"already-a-slug", "already-a-slug"},
		{"UPPER case 123", "upper-case-123"},
		{"---dashes---", "dashes"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, GenerateSlug(tc.in), "input %q", tc.in)
	}
}

func TestGenerateSlugCapsLength(t *testing.T) {
	long := ""
	for i := 0; i < 20; i++ {
		long += "abcde "
	}
	out := GenerateSlug(long)
	assert.LessOrEqual(t, len(out), SlugMaxLen)
	assert.True(t, IsValidSlug(out))
}

func TestIsValidSlug(t *testing.T) {
	assert.True(t, IsValidSlug("abc"))
	assert.True(t, IsValidSlug("my-school-42"))

	assert.False(t, IsValidSlug("ab"), "below minimum length")
	assert.False(t, IsValidSlug("UPPER"), "uppercase not allowed")
	assert.False(t, IsValidSlug("has space"))
	assert.False(t, IsValidSlug("under_score"))
	assert.False(t, IsValidSlug(""))
}

func TestSuggestSlug(t *testing.T) {
	re := regexp.MustCompile(`^taken-\d+$`)
	for i := 0; i < 10; i++ {
		assert.Regexp(t, re, SuggestSlug("taken"))
	}
}
