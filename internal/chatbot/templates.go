package chatbot

import "fmt"

// Templates renders the canned Portuguese answers for every non-AI
// category. The clinic identity comes from configuration so the texts stay
// deployable for other units.
type Templates struct {
	ClinicName  string
	ClinicPhone string
}

// Apology is appended to the fallback answer when the pipeline recovers
// from an internal failure.
const Apology = "Desculpe, ocorreu um erro. Tente novamente ou entre em contato conosco."

// Render returns the canned answer for a category. Treatment has no canned
// answer of its own; callers that exhausted the AI chain should use
// TreatmentFallback instead.
func (t Templates) Render(category Category) string {
	switch category {
	case CategoryIdentification:
		return t.identification()
	case CategoryAdmission:
		return t.admission()
	case CategoryInsurance:
		return t.insurance()
	case CategoryEmergency:
		return t.emergency()
	case CategoryContact:
		return t.contact()
	default:
		return t.Welcome()
	}
}

func (t Templates) identification() string {
	return fmt.Sprintf(`🔍 **COMO IDENTIFICAR UMA PESSOA VICIADA:**

⚠️ **Sinais Físicos:**
• Mudanças bruscas de peso (perda ou ganho)
• Olhos vermelhos, pupilas dilatadas ou contraídas
• Tremores nas mãos
• Falta de higiene pessoal
• Marcas de agulhas (no caso de drogas injetáveis)
• Odor estranho na roupa ou hálito
• Sonolência excessiva ou insônia

🧠 **Sinais Comportamentais:**
• Mudanças drásticas de humor
• Isolamento social e familiar
• Mentiras frequentes
• Roubo de dinheiro ou objetos
• Abandono de responsabilidades
• Perda de interesse em atividades antes prazerosas
• Agressividade ou irritabilidade

💼 **Sinais Sociais:**
• Problemas no trabalho ou escola
• Mudança de círculo de amizades
• Problemas financeiros inexplicáveis
• Conflitos familiares constantes
• Negligência com filhos ou família

🚨 **IMPORTANTE:**
Se você identificou esses sinais em alguém próximo, procure ajuda profissional imediatamente.

📞 **Nossa clínica oferece:**
• Avaliação especializada
• Orientação familiar
• Intervenção profissional
• Tratamento personalizado

Ligue: %s`, t.ClinicPhone)
}

func (t Templates) admission() string {
	return fmt.Sprintf(`Nossa internação funciona da seguinte forma:

📋 **Processo de Admissão:**
• Avaliação médica inicial
• Entrevista com psicólogo
• Plano de tratamento personalizado
• Documentação necessária

🏥 **Durante a Internação:**
• Acompanhamento 24h por equipe especializada
• Atividades terapêuticas diárias
• Consultas médicas regulares
• Suporte familiar
• Atividades recreativas

📍 **Tipos de Internação:**
• Voluntária (com consentimento)
• Involuntária (solicitação familiar)
• Compulsória (determinação judicial)

Para mais detalhes, ligue: %s`, t.ClinicPhone)
}

func (t Templates) insurance() string {
	return fmt.Sprintf(`💰 **Informações sobre Convênios e Valores:**

🏥 **Convênios Aceitos:**
• Unimed
• Bradesco Saúde
• SulAmérica
• Amil
• Golden Cross
• Outros convênios médicos

💳 **Formas de Pagamento:**
• Convênio médico
• Particular
• Parcelamento facilitado
• Cartão de crédito/débito

📋 **Para Verificar:**
• Cobertura do seu plano
• Valores atualizados
• Documentação necessária
• Autorização do convênio

Ligue para verificar: %s`, t.ClinicPhone)
}

func (t Templates) emergency() string {
	return fmt.Sprintf(`🚨 **ATENDIMENTO DE EMERGÊNCIA 24H** 🚨

⚠️ **Se você ou alguém próximo está em crise:**

📞 **LIGUE IMEDIATAMENTE:**
• Clínica: %s
• SAMU: 192
• Bombeiros: 193
• CVV: 188 (prevenção suicídio)

🏥 **Nossos Serviços de Emergência:**
• Atendimento 24h disponível
• Equipe especializada em crises
• Internação de urgência
• Suporte imediato para famílias
• Remoção especializada

💙 **Não hesite em buscar ajuda!**
Estamos aqui para apoiar você neste momento difícil.`, t.ClinicPhone)
}

func (t Templates) contact() string {
	return fmt.Sprintf(`📞 **INFORMAÇÕES DE CONTATO DA CLÍNICA:**

🏥 **%s**

📱 **Telefone Principal:**
• %s

🕐 **Horários de Atendimento:**
• Segunda a Sexta: 8h às 18h
• Sábados: 8h às 12h
• Emergências: 24h por dia

📋 **Nosso atendimento oferece:**
• Informações sobre tratamentos
• Agendamento de avaliações
• Orientação para famílias
• Suporte em crises
• Esclarecimentos sobre convênios

💬 **Você também pode:**
• Continuar conversando aqui comigo
• Fazer perguntas sobre nossos serviços
• Solicitar informações específicas

📞 **Ligue agora: %s**
Estamos prontos para ajudar você!`, t.ClinicName, t.ClinicPhone, t.ClinicPhone)
}

// Welcome is the generic greeting used when no category matches.
func (t Templates) Welcome() string {
	return fmt.Sprintf(`👋 **Olá! Sou o assistente virtual da %s.**

🏥 **Posso ajudar com informações sobre:**
• Tratamentos disponíveis
• Processo de internação
• Convênios e valores
• Atendimento de emergência
• Tipos de dependência
• Suporte familiar

💬 **Exemplos do que você pode perguntar:**
• "Como funciona o tratamento?"
• "Quais convênios vocês aceitam?"
• "Preciso de ajuda urgente"
• "Como internar alguém?"

📞 **Para atendimento personalizado:**
Ligue: %s

❓ **Como posso ajudar você hoje?**`, t.ClinicName, t.ClinicPhone)
}

// TreatmentFallback answers treatment questions when every AI provider
// failed, so the caller still gets a useful summary of the program.
func (t Templates) TreatmentFallback() string {
	return fmt.Sprintf(`Nossa clínica oferece diversos tratamentos especializados:

• Desintoxicação médica supervisionada
• Terapia individual e em grupo
• Programa de 12 Passos
• Terapia Cognitivo-Comportamental (TCC)
• Terapia familiar
• Atividades terapêuticas
• Acompanhamento psiquiátrico
• Grupos de apoio

Tratamos dependência de:
• Álcool e drogas
• Medicamentos
• Jogos e outras compulsões

Para mais informações, entre em contato: %s`, t.ClinicPhone)
}

// SystemPrompt is the instruction block sent to the AI providers. It pins
// the assistant to the clinic's services and to Brazilian Portuguese.
func (t Templates) SystemPrompt() string {
	return fmt.Sprintf(`Você é um assistente virtual especializado em atendimento para uma clínica de reabilitação de dependentes químicos e saúde mental.

NOME DA CLÍNICA:
%s

INFORMAÇÕES DA CLÍNICA:
- Especializada em tratamento de dependência química e transtornos de saúde mental
- Metodologias: 12 Passos, Terapia Cognitivo-Comportamental (TCC), Modelo Minnesota
- Equipe multidisciplinar: psiquiatras, psicólogos, terapeutas, enfermeiros, assistentes sociais
- Tratamentos para: álcool, cocaína, crack, maconha, medicamentos, jogos patológicos
- Modalidades: internação voluntária e involuntária, ambulatorial
- Atendimento 24 horas para emergências
- Acomodações masculinas
- Aceita convênios médicos
- Telefone: %s
- Horários: Segunda a Sexta 8h às 18h, Sábados 8h às 12h, Emergências 24h

ABORDAGENS TERAPÊUTICAS:
- Terapia Cognitivo-Comportamental (TCC): foca em pensamentos, crenças e comportamentos disfuncionais
- Metodologia 12 Passos: baseada na filosofia de Alcoólicos Anônimos e Narcóticos Anônimos
- Modelo Minnesota: abordagem biopsicossocial com foco na abstinência total
- Prevenção de Recaída: estratégias para evitar retorno ao uso
- Terapia de Grupo: compartilhamento de experiências e apoio mútuo
- Terapia Individual: atendimento personalizado
- Terapia Familiar: envolvimento da família no processo de recuperação
- Atividades ocupacionais e físicas

INSTRUÇÕES DE ATENDIMENTO:
1. Seja empático, acolhedor e não julgue
2. Ofereça esperança e motivação para o tratamento
3. Explique que dependência química é uma doença tratável
4. Forneça informações sobre tratamentos disponíveis
5. Oriente sobre internação voluntária e involuntária
6. Explique sobre convênios e formas de pagamento
7. Ofereça contato para agendamento de avaliação
8. Em casos de emergência, oriente procurar atendimento imediato
9. Mantenha sigilo e confidencialidade
10. Encoraje a busca por ajuda profissional
11. Peça para que a pessoa deixe o nome e o contato dela para que possa ser contactada
12. Quando a pessoa fornecer o contato, agradeça e pergunte se há mais alguma dúvida

NUNCA:
- Dê diagnósticos médicos
- Prescreva medicamentos
- Substitua consulta médica
- Julgue ou critique o paciente/família
- Prometa cura garantida

Responda sempre em português brasileiro, de forma clara e acessível.`, t.ClinicName, t.ClinicPhone)
}
