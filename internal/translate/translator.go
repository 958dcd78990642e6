// Package translate renders resolved Portuguese replies in the other
// supported languages through static phrase catalogs. It is deliberately
// offline: no external translation API is involved, and any unknown
// language falls back to the Portuguese original.
package translate

import (
	"strings"

	"golang.org/x/text/language"
)

// DefaultLanguage is the language replies are authored in.
const DefaultLanguage = "pt"

var supportedTags = []language.Tag{
	language.BrazilianPortuguese,
	language.English,
	language.Spanish,
	language.French,
	language.Italian,
}

var supportedCodes = []string{"pt", "en", "es", "fr", "it"}

var matcher = language.NewMatcher(supportedTags)

// SupportedLanguages maps the supported ISO 639-1 codes to their native
// names, as shown by the language picker.
func SupportedLanguages() map[string]string {
	return map[string]string{
		"pt": "Português",
		"en": "English",
		"es": "Español",
		"fr": "Français",
		"it": "Italiano",
	}
}

// Resolve maps an arbitrary language code ("en-US", "pt-BR", "de") to the
// closest supported code, defaulting to Portuguese.
func Resolve(code string) string {
	if strings.TrimSpace(code) == "" {
		return DefaultLanguage
	}
	tag, err := language.Parse(code)
	if err != nil {
		return DefaultLanguage
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return DefaultLanguage
	}
	return supportedCodes[idx]
}

// Catalog holds the canned phrases of one language.
type Catalog struct {
	WelcomeMessage      string `json:"welcome_message"`
	EmergencyDetected   string `json:"emergency_detected"`
	ContactInfo         string `json:"contact_info"`
	TreatmentInfo       string `json:"treatment_info"`
	InsuranceAccepted   string `json:"insurance_accepted"`
	ScheduleAppointment string `json:"schedule_appointment"`
	ThankYou            string `json:"thank_you"`
	ErrorMessage        string `json:"error_message"`
	Goodbye             string `json:"goodbye"`
}

var catalogs = map[string]Catalog{
	"pt": {
		WelcomeMessage:      "Olá! Bem-vindo à Clínica Espaço Vida. Como posso ajudá-lo hoje?",
		EmergencyDetected:   "Detectei que você pode estar passando por uma situação de emergência. Nossa equipe está disponível 24h.",
		ContactInfo:         "Para contato imediato: (27) 999637447",
		TreatmentInfo:       "Oferecemos tratamento especializado em dependência química e saúde mental.",
		InsuranceAccepted:   "Aceitamos diversos convênios médicos.",
		ScheduleAppointment: "Gostaria de agendar uma avaliação?",
		ThankYou:            "Obrigado por entrar em contato conosco.",
		ErrorMessage:        "Desculpe, ocorreu um erro. Tente novamente.",
		Goodbye:             "Tenha um ótimo dia! Estamos aqui quando precisar.",
	},
	"en": {
		WelcomeMessage:      "Hello! Welcome to Clínica Espaço Vida. How can I help you today?",
		EmergencyDetected:   "I detected that you might be going through an emergency situation. Our team is available 24/7.",
		ContactInfo:         "For immediate contact: +55 (27) 999637447",
		TreatmentInfo:       "We offer specialized treatment for chemical dependency and mental health.",
		InsuranceAccepted:   "We accept various health insurance plans.",
		ScheduleAppointment: "Would you like to schedule an evaluation?",
		ThankYou:            "Thank you for contacting us.",
		ErrorMessage:        "Sorry, an error occurred. Please try again.",
		Goodbye:             "Have a great day! We are here when you need us.",
	},
	"es": {
		WelcomeMessage:      "¡Hola! Bienvenido a Clínica Espaço Vida. ¿Cómo puedo ayudarte hoy?",
		EmergencyDetected:   "Detecté que podrías estar pasando por una situación de emergencia. Nuestro equipo está disponible 24h.",
		ContactInfo:         "Para contacto inmediato: +55 (27) 999637447",
		TreatmentInfo:       "Ofrecemos tratamiento especializado en dependencia química y salud mental.",
		InsuranceAccepted:   "Aceptamos varios seguros médicos.",
		ScheduleAppointment: "¿Te gustaría programar una evaluación?",
		ThankYou:            "Gracias por contactarnos.",
		ErrorMessage:        "Lo siento, ocurrió un error. Inténtalo de nuevo.",
		Goodbye:             "¡Que tengas un gran día! Estamos aquí cuando nos necesites.",
	},
	"fr": {
		WelcomeMessage:      "Bonjour! Bienvenue à la Clínica Espaço Vida. Comment puis-je vous aider aujourd'hui?",
		EmergencyDetected:   "J'ai détecté que vous pourriez traverser une situation d'urgence. Notre équipe est disponible 24h/24.",
		ContactInfo:         "Pour un contact immédiat: +55 (27) 999637447",
		TreatmentInfo:       "Nous offrons un traitement spécialisé en dépendance chimique et santé mentale.",
		InsuranceAccepted:   "Nous acceptons diverses assurances médicales.",
		ScheduleAppointment: "Souhaiteriez-vous programmer une évaluation?",
		ThankYou:            "Merci de nous avoir contactés.",
		ErrorMessage:        "Désolé, une erreur s'est produite. Veuillez réessayer.",
		Goodbye:             "Bonne journée! Nous sommes là quand vous en avez besoin.",
	},
	"it": {
		WelcomeMessage:      "Ciao! Benvenuto alla Clínica Espaço Vida. Come posso aiutarti oggi?",
		EmergencyDetected:   "Ho rilevato che potresti trovarti in una situazione di emergenza. Il nostro team è disponibile 24h.",
		ContactInfo:         "Per contatto immediato: +55 (27) 999637447",
		TreatmentInfo:       "Offriamo trattamento specializzato per dipendenza chimica e salute mentale.",
		InsuranceAccepted:   "Accettiamo varie assicurazioni mediche.",
		ScheduleAppointment: "Vorresti programmare una valutazione?",
		ThankYou:            "Grazie per averci contattato.",
		ErrorMessage:        "Spiacente, si è verificato un errore. Riprova.",
		Goodbye:             "Buona giornata! Siamo qui quando hai bisogno.",
	},
}

// CatalogFor returns the phrase catalog of a language, or the Portuguese
// one for unsupported codes.
func CatalogFor(code string) Catalog {
	if catalog, ok := catalogs[Resolve(code)]; ok {
		return catalog
	}
	return catalogs[DefaultLanguage]
}

// Common Portuguese phrases and their localized equivalents. Pairs are
// replaced longest-first by strings.NewReplacer, so "Obrigado por" style
// prefixes do not shadow the single word.
var phrasePairs = map[string][]string{
	"en": {
		"Olá", "Hello",
		"Obrigado", "Thank you",
		"obrigado", "thank you",
		"emergência", "emergency",
		"tratamento", "treatment",
		"convênio", "health insurance",
		"internação", "inpatient admission",
	},
	"es": {
		"Olá", "¡Hola",
		"Obrigado", "Gracias",
		"obrigado", "gracias",
		"emergência", "emergencia",
		"tratamento", "tratamiento",
		"convênio", "seguro médico",
		"internação", "internación",
	},
	"fr": {
		"Olá", "Bonjour",
		"Obrigado", "Merci",
		"obrigado", "merci",
		"emergência", "urgence",
		"tratamento", "traitement",
		"convênio", "assurance médicale",
		"internação", "hospitalisation",
	},
	"it": {
		"Olá", "Ciao",
		"Obrigado", "Grazie",
		"obrigado", "grazie",
		"emergência", "emergenza",
		"tratamento", "trattamento",
		"convênio", "assicurazione medica",
		"internação", "ricovero",
	},
}

var replacers = buildReplacers()

func buildReplacers() map[string]*strings.Replacer {
	out := make(map[string]*strings.Replacer, len(phrasePairs))
	for code, pairs := range phrasePairs {
		out[code] = strings.NewReplacer(pairs...)
	}
	return out
}

// StaticTranslator translates replies by phrase substitution.
type StaticTranslator struct{}

// Translate rewrites the common Portuguese phrases of a reply into the
// target language. Portuguese and unsupported targets return the text
// unchanged.
func (StaticTranslator) Translate(text, code string) string {
	resolved := Resolve(code)
	if resolved == DefaultLanguage {
		return text
	}
	replacer, ok := replacers[resolved]
	if !ok {
		return text
	}
	return replacer.Replace(text)
}
