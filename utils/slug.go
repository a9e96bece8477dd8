package utils

import (
	"regexp"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	slugMaxLength    = 80
	slugSuffixLength = 6
	slugAlphabet     = "abcdefghijklmnopqrstuvwxyz0123456789"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9-]+`)
	slugDashRuns     = regexp.MustCompile(`-{2,}`)

	// Türkçe karakterler slug'da ASCII karşılıklarına çevrilir.
	slugReplacer = strings.NewReplacer(
		"ç", "c", "ğ", "g", "ı", "i", "ö", "o", "ş", "s", "ü", "u",
		"Ç", "c", "Ğ", "g", "İ", "i", "Ö", "o", "Ş", "s", "Ü", "u",
	)
)

// NormalizeSlug verilen değeri geçerli bir slug'a dönüştürür:
// küçük harf, ascii, tire ile ayrılmış. Boş sonuç dönerse slug geçersizdir.
func NormalizeSlug(raw string) string {
	s := strings.TrimSpace(raw)
	s = slugReplacer.Replace(s)
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "-")
	s = slugInvalidChars.ReplaceAllString(s, "")
	s = slugDashRuns.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > slugMaxLength {
		s = s[:slugMaxLength]
		s = strings.Trim(s, "-")
	}
	return s
}

// SuggestSlug isimden slug önerir; çakışma ihtimaline karşı kısa bir
// nanoid son eki ekler. Çağıran benzersizliği yine de kontrol etmelidir.
func SuggestSlug(name string) (string, error) {
	base := NormalizeSlug(name)
	suffix, err := gonanoid.Generate(slugAlphabet, slugSuffixLength)
	if err != nil {
		return "", err
	}
	if base == "" {
		return suffix, nil
	}
	if len(base) > slugMaxLength-slugSuffixLength-1 {
		base = base[:slugMaxLength-slugSuffixLength-1]
		base = strings.Trim(base, "-")
	}
	return base + "-" + suffix, nil
}
