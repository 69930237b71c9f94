package resort

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		name     string
		resort   string
		city     string
		region   string
		expected string
	}{
		{"all_parts", "Kotelnica", "Białka Tatrzańska", "Małopolska", "kotelnica-bialka-tatrzanska-malopolska"},
		{"accents_stripped", "Łysa Góra", "Sopot", "", "lysa-gora-sopot"},
		{"polish_letters", "Żar", "Międzybrodzie Żywieckie", "Śląskie", "zar-miedzybrodzie-zywieckie-slaskie"},
		{"punctuation_collapsed", "SkiArena (Szrenica)", "", "", "skiarena-szrenica"},
		{"blank_parts_skipped", "Harenda", "  ", "", "harenda"},
		{"only_city", "", "Zakopane", "", "zakopane"},
		{"all_blank_fallback", "", "  ", "", "resort"},
		{"symbols_only_fallback", "!!!", "???", "", "resort"},
		{"numbers_kept", "Stacja 2", "", "", "stacja-2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slug(tt.resort, tt.city, tt.region))
		})
	}
}

func TestSlug_Deterministic(t *testing.T) {
	first := Slug("Czarna Góra", "Sienna", "Dolnośląskie")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Slug("Czarna Góra", "Sienna", "Dolnośląskie"))
	}
}

func TestDetailKey(t *testing.T) {
	assert.Equal(t, "harenda-zakopane--17", DetailKey("Harenda", "Zakopane", "", 17))

	// Colliding slugs stay unique thanks to the ID suffix.
	a := DetailKey("Gubałówka", "", "", 1)
	b := DetailKey("Gubałówka", "", "", 2)
	assert.NotEqual(t, a, b)
}
