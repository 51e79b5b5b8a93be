package funnel

const (
	IntentRequestQuote = "solicitar_cotacao_plano"
	IntentQuoteData    = "informar_dado_para_cotacao"
	IntentGreeting     = "saudacao"
	IntentFarewell     = "despedida"
	IntentThanks       = "agradecimento"
)

const (
	msgDefaultAskName   = "Vamos começar sua cotação. Qual seu nome completo?"
	msgNotUnderstood    = "Não entendi muito bem. Pode tentar reformular?"
	msgFlowProblem      = "Desculpe, houve um problema em nosso fluxo. Poderia tentar novamente?"
	msgNoResponse       = "Desculpe, não tenho uma resposta para isso no momento."
	msgPendingInfo      = "(informação pendente)"
	msgQuoteSubmitted   = "! Sua cotação anterior já foi processada. Nossos consultores devem entrar em contato em breve. Posso ajudar com mais alguma dúvida geral ou FAQ?"
	msgAnonymousOpening = "Olá"
)

// fallbackByIntent answers generic intents that have no dataset entry.
var fallbackByIntent = map[string]string{
	IntentGreeting: "Olá! Como posso te ajudar com planos de saúde hoje?",
	IntentFarewell: "Até logo! Se precisar de mais alguma coisa, é só chamar.",
	IntentThanks:   "De nada! Fico feliz em ajudar.",
}

var genericIntents = map[string]bool{
	IntentGreeting: true,
	IntentFarewell: true,
	IntentThanks:   true,
}
