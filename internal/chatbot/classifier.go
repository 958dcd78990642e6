// Package chatbot implements the response pipeline for the clinic's web
// chat: keyword intent classification, canned Portuguese templates, an AI
// provider chain with fallback and per-session conversation history.
package chatbot

import "github.com/espacovida/clinic-chatbot/internal/textutil"

// Category is the intent bucket a message falls into. Every category except
// CategoryTreatment maps to a canned template; treatment questions are
// answered by the AI provider chain because templates are too shallow for
// them.
type Category string

const (
	CategoryIdentification Category = "identification"
	CategoryTreatment      Category = "treatment"
	CategoryAdmission      Category = "admission"
	CategoryInsurance      Category = "insurance"
	CategoryEmergency      Category = "emergency"
	CategoryContact        Category = "contact"
	CategoryGeneric        Category = "generic"
)

// NeedsAI reports whether the category has no canned answer and must go
// through the provider chain.
func (c Category) NeedsAI() bool { return c == CategoryTreatment }

var treatmentKeywords = []string{
	"tratamento", "terapia", "ajuda", "tratar", "curar", "cura", "recuperacao", "recuperação",
	"reabilitacao", "reabilitação", "dependencia", "dependência", "vicio", "vício",
	"drogas", "alcool", "álcool", "medicamento", "remedio", "remédio", "psicologia",
	"psiquiatria", "medico", "médico", "doutor", "doutora", "terapeuta",
	"12 passos", "doze passos", "programa", "desintoxicacao", "desintoxicação",
	"tcc", "cognitivo", "comportamental", "individual", "grupo", "familiar",
	"psiquiatrico", "psiquiátrico", "apoio", "grupos", "mais sobre", "fale mais",
	"explique", "detalhe", "detalhes",
}

var dependencyKeywords = []string{
	"dependente", "viciado", "adicto", "usuario", "usuário", "consumidor",
	"crack", "cocaina", "cocaína", "maconha", "cannabis", "heroina", "heroína",
	"ecstasy", "lsd", "anfetamina", "metanfetamina", "opioides", "morfina",
	"codeina", "codeína", "tramadol", "rivotril", "clonazepam", "alprazolam",
}

var admissionKeywords = []string{
	"internacao", "internação", "internar", "como funciona", "funcionamento",
	"processo", "procedimento", "admissao", "admissão", "entrada", "ingresso",
	"clinica", "clínica", "hospital", "instituicao", "instituição", "centro",
	"unidade", "estabelecimento", "local", "onde", "endereco", "endereço",
}

var insuranceKeywords = []string{
	"convenio", "convênio", "plano", "preco", "preço", "valor", "custo", "quanto custa",
	"pagamento", "pagar", "dinheiro", "financeiro", "orcamento", "orçamento",
	"seguro", "saude", "saúde", "unimed", "bradesco", "sulamerica", "amil",
	"particular", "sus", "gratuito", "gratis", "grátis",
}

var emergencyKeywords = []string{
	"emergencia", "emergência", "urgente", "urgencia", "urgência", "crise",
	"socorro", "ajuda imediata", "agora", "rapido", "rápido", "ja", "já",
	"desespero", "desesperad", "suicidio", "suicídio", "morte", "morrer",
	"overdose", "intoxicacao", "intoxicação", "24 horas", "24h", "plantao", "plantão",
}

var identificationKeywords = []string{
	"identificar", "identifico", "reconhecer", "perceber", "notar", "descobrir",
	"sinais", "sintomas", "comportamento", "mudancas", "mudanças", "indicios", "indícios",
	"como saber", "como sei", "como descobrir", "como perceber", "como identificar",
	"pessoa viciada", "alguem viciado", "alguém viciado", "familiar viciado",
	"caracteristicas", "características", "manifestacoes", "manifestações",
	"evidencias", "evidências", "pistas", "alertas", "avisos",
}

var contactKeywords = []string{
	"telefone", "fone", "numero", "número", "contato", "ligar", "falar",
	"comunicar", "entrar em contato", "como falar", "como ligar",
	"telefone da clinica", "telefone da clínica", "numero da clinica", "número da clínica",
	"contato da clinica", "contato da clínica", "como entrar em contato",
	"whatsapp", "celular", "fixo", "ramal", "atendimento", "recepcao", "recepção",
}

// Classify maps a message to an intent category. Checks run in a fixed
// order and the first matching list wins, so a message mentioning both
// signs of addiction and prices is answered as an identification question.
func Classify(message string) Category {
	switch {
	case textutil.ContainsAnyKeyword(message, identificationKeywords):
		return CategoryIdentification
	case textutil.ContainsAnyKeyword(message, treatmentKeywords),
		textutil.ContainsAnyKeyword(message, dependencyKeywords):
		return CategoryTreatment
	case textutil.ContainsAnyKeyword(message, admissionKeywords):
		return CategoryAdmission
	case textutil.ContainsAnyKeyword(message, insuranceKeywords):
		return CategoryInsurance
	case textutil.ContainsAnyKeyword(message, emergencyKeywords):
		return CategoryEmergency
	case textutil.ContainsAnyKeyword(message, contactKeywords):
		return CategoryContact
	default:
		return CategoryGeneric
	}
}
