package textutil

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain ascii", "tratamento", "tratamento"},
		{"strips accents", "internação involuntária", "internacao involuntaria"},
		{"lowercases", "EMERGÊNCIA", "emergencia"},
		{"strips punctuation", "socorro!!! preciso de ajuda???", "socorro preciso de ajuda"},
		{"collapses whitespace", "  como   funciona\t o tratamento ", "como funciona o tratamento"},
		{"keeps digits", "atendimento 24h", "atendimento 24h"},
		{"mixed diacritics and case", "COMO IDENTIFICAR ALGUÉM VICIADO", "como identificar alguem viciado"},
		{"cedilla", "reabilitação", "reabilitacao"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeOutputAlphabet(t *testing.T) {
	valid := regexp.MustCompile(`^[a-z0-9 ]*$`)
	inputs := []string{
		"", "Olá, tudo bem?", "preço do tratamento é R$ 1.000,00",
		"çãõéêíóúü", "!!!???...", "日本語テキスト", "a\tb\nc",
	}
	for _, in := range inputs {
		out := Normalize(in)
		assert.True(t, valid.MatchString(out), "output %q for input %q", out, in)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Quero saber sobre TRATAMENTO!", "emergência agora", "  spaced   out  ", "",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once))
	}
}

func TestContainsKeyword(t *testing.T) {
	assert.True(t, ContainsKeyword("Preciso de INTERNAÇÃO urgente", "internacao"))
	assert.True(t, ContainsKeyword("preciso de internacao", "internação"))
	assert.False(t, ContainsKeyword("bom dia", "internação"))

	// Substring containment is intentional: "já" matches inside "jantar"
	// once normalized ("ja" in "jantar").
	assert.True(t, ContainsKeyword("vou jantar agora", "já"))
}

func TestContainsAnyKeyword(t *testing.T) {
	keywords := []string{"convênio", "plano", "preço"}
	assert.True(t, ContainsAnyKeyword("qual o PREÇO do tratamento?", keywords))
	assert.False(t, ContainsAnyKeyword("olá, bom dia", keywords))
	assert.False(t, ContainsAnyKeyword("", keywords))
}
