package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"pt", "pt"},
		{"pt-BR", "pt"},
		{"en", "en"},
		{"en-US", "en"},
		{"es", "es"},
		{"fr", "fr"},
		{"it", "it"},
		{"", "pt"},
		{"de", "pt"},
		{"not a language", "pt"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.code))
		})
	}
}

func TestCatalogFor(t *testing.T) {
	assert.Contains(t, CatalogFor("en").WelcomeMessage, "Hello")
	assert.Contains(t, CatalogFor("es").ThankYou, "Gracias")
	assert.Contains(t, CatalogFor("xx").WelcomeMessage, "Olá")
}

func TestTranslateSubstitutesCommonPhrases(t *testing.T) {
	tr := StaticTranslator{}

	got := tr.Translate("Olá! Nosso tratamento aceita convênio.", "en")
	assert.Contains(t, got, "Hello")
	assert.Contains(t, got, "treatment")
	assert.Contains(t, got, "health insurance")
	assert.NotContains(t, got, "tratamento")
}

func TestTranslateIsIdentityForPortugueseAndUnknown(t *testing.T) {
	tr := StaticTranslator{}
	text := "Olá! Como posso ajudar?"

	assert.Equal(t, text, tr.Translate(text, "pt"))
	assert.Equal(t, text, tr.Translate(text, "de"))
	assert.Equal(t, text, tr.Translate(text, ""))
}

func TestSupportedLanguages(t *testing.T) {
	langs := SupportedLanguages()
	assert.Len(t, langs, 5)
	assert.Equal(t, "Português", langs["pt"])
}
