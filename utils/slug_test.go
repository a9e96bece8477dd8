package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSlug(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"kucuk harfe cevirir", "Acme Kartvizit", "acme-kartvizit"},
		{"turkce karakterleri donusturur", "Çiğdem Şükrü Öz", "cigdem-sukru-oz"},
		{"buyuk turkce karakterler", "İSTANBUL ĞÜL", "istanbul-gul"},
		{"gecersiz karakterleri atar", "jane.doe@acme!", "janedoeacme"},
		{"tire dizilerini teke indirir", "a  --  b", "a-b"},
		{"bas ve son tireleri kirpar", "--acme--", "acme"},
		{"bosluklari kirpar", "  acme  ", "acme"},
		{"bos girdi bos doner", "!!!", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeSlug(tc.in))
		})
	}
}

func TestNormalizeSlugTruncatesLongInput(t *testing.T) {
	long := strings.Repeat("a", 200)
	got := NormalizeSlug(long)
	assert.Len(t, got, 80)
}

func TestSuggestSlug(t *testing.T) {
	got, err := SuggestSlug("Jane Doe")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "jane-doe-"))
	assert.Len(t, got, len("jane-doe-")+6)
	assert.LessOrEqual(t, len(got), 80)

	// Aynı isimden üretilen öneriler son ek sayesinde farklıdır.
	again, err := SuggestSlug("Jane Doe")
	require.NoError(t, err)
	assert.NotEqual(t, got, again)
}

func TestSuggestSlugEmptyName(t *testing.T) {
	got, err := SuggestSlug("???")
	require.NoError(t, err)
	assert.Len(t, got, 6)
}