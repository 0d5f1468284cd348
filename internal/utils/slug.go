package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var bengaliToLatin = map[rune]string{
	// vowels
	'অ': "o", 'আ': "a", 'ই': "i", 'ঈ': "i", 'উ': "u", 'ঊ': "u",
	'ঋ': "ri", 'এ': "e", 'ঐ': "oi", 'ও': "o", 'ঔ': "ou",

	// consonants
	'ক': "k", 'খ': "kh", 'গ': "g", 'ঘ': "gh", 'ঙ': "ng",
	'চ': "ch", 'ছ': "chh", 'জ': "j", 'ঝ': "jh", 'ঞ': "n",
	'ট': "t", 'ঠ': "th", 'ড': "d", 'ঢ': "dh", 'ণ': "n",
	'ত': "t", 'থ': "th", 'দ': "d", 'ধ': "dh", 'ন': "n",
	'প': "p", 'ফ': "ph", 'ব': "b", 'ভ': "bh", 'ম': "m",
	'য': "j", 'র': "r", 'ল': "l", 'শ': "sh", 'ষ': "sh",
	'স': "s", 'হ': "h", '\u09DC': "r", '\u09DD': "rh", '\u09DF': "y",
	'ৎ': "t", 'ং': "ng", 'ঃ': "h", 'ঁ': "",

	// vowel signs
	'া': "a", 'ি': "i", 'ী': "i", 'ু': "u", 'ূ': "u",
	'ৃ': "ri", 'ে': "e", 'ৈ': "oi", 'ো': "o", 'ৌ': "ou",
	'্': "",

	// digits
	'০': "0", '১': "1", '২': "2", '৩': "3", '৪': "4",
	'৫': "5", '৬': "6", '৭': "7", '৮': "8", '৯': "9",
}

// nukta sequences folded into their precomposed letters
var nuktaFolder = strings.NewReplacer(
	"\u09A1\u09BC", "\u09DC",
	"\u09A2\u09BC", "\u09DD",
	"\u09AF\u09BC", "\u09DF",
)

var (
	nonWordPattern    = regexp.MustCompile(`[^\w\s-]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	hyphensPattern    = regexp.MustCompile(`-+`)
	validSlugPattern  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// GenerateSlug transliterates Bangla text into a URL-safe slug. Latin input
// is lowercased and kept; anything without a mapping is dropped.
func GenerateSlug(text string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(nuktaFolder.Replace(text)) {
		if latin, ok := bengaliToLatin[r]; ok {
			b.WriteString(latin)
			continue
		}
		// underscores separate words like spaces do
		if unicode.IsSpace(r) || r == '_' {
			b.WriteByte(' ')
			continue
		}
		b.WriteRune(r)
	}

	slug := nonWordPattern.ReplaceAllString(b.String(), "")
	slug = whitespacePattern.ReplaceAllString(strings.TrimSpace(slug), "-")
	slug = hyphensPattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// GenerateUniqueSlug returns the slug for text, suffixed with -1, -2, ...
// until exists reports it free.
func GenerateUniqueSlug(text string, exists func(slug string) (bool, error)) (string, error) {
	base := GenerateSlug(text)
	if base == "" {
		return "", nil
	}

	slug := base
	for n := 1; ; n++ {
		taken, err := exists(slug)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, n)
	}
}

func IsValidSlug(slug string) bool {
	return validSlugPattern.MatchString(slug)
}
