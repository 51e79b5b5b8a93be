package funnel

import (
	"ChatbotFunil/internal/entity"
	"ChatbotFunil/pkg/nlp"
	"fmt"
	"strconv"
	"strings"
)

const (
	EntityName = "nome_usuario"
	EntityAge  = nlp.EntityAge
	EntityCity = "cidade_cotacao"
)

const (
	keyFinalWithDependents    = "final_com_dependentes"
	keyFinalWithoutDependents = "final_sem_dependentes"
)

// slotRule describes how one collection step reads its answer and which
// step follows it.
type slotRule struct {
	entityType  string
	questionKey string
	store       func(q *entity.QuoteData, answer string)
	next        func(q entity.QuoteData) entity.Step
}

func nextStep(step entity.Step) func(entity.QuoteData) entity.Step {
	return func(entity.QuoteData) entity.Step { return step }
}

var collectionFlow = map[entity.Step]slotRule{
	entity.StepAskName: {
		entityType:  EntityName,
		questionKey: "ask_nome",
		store:       func(q *entity.QuoteData, answer string) { q.Name = answer },
		next:        nextStep(entity.StepAskAge),
	},
	entity.StepAskAge: {
		entityType:  EntityAge,
		questionKey: "ask_idade",
		store:       func(q *entity.QuoteData, answer string) { q.Age = answer },
		next:        nextStep(entity.StepAskCity),
	},
	entity.StepAskCity: {
		entityType:  EntityCity,
		questionKey: "ask_cidade",
		store:       func(q *entity.QuoteData, answer string) { q.City = answer },
		next:        nextStep(entity.StepAskHasDependents),
	},
	entity.StepAskHasDependents: {
		questionKey: "ask_dependentes_sim_nao",
		store: func(q *entity.QuoteData, answer string) {
			q.HasDependents = entity.DependentsNo
			if isAffirmative(answer) {
				q.HasDependents = entity.DependentsYes
			}
		},
		next: func(q entity.QuoteData) entity.Step {
			if q.HasDependents == entity.DependentsYes {
				return entity.StepAskDependentDetails
			}
			return entity.StepFinalize
		},
	},
	entity.StepAskDependentDetails: {
		questionKey: "ask_dependentes_detalhes",
		store:       func(q *entity.QuoteData, answer string) { q.DependentDetails = answer },
		next:        nextStep(entity.StepFinalize),
	},
}

var (
	affirmativeWords = map[string]bool{"sim": true, "s": true, "tenho": true, "possuo": true, "claro": true, "yes": true}
	negativeWords    = map[string]bool{"não": true, "nao": true, "n": true, "nenhum": true, "nenhuma": true, "sem": true, "no": true}
	countWords       = map[string]bool{
		"um": true, "uma": true, "dois": true, "duas": true, "três": true, "tres": true,
		"quatro": true, "cinco": true, "seis": true, "sete": true, "oito": true, "nove": true, "dez": true,
	}
)

// isAffirmative reads a yes/no answer word by word. Any negative word wins;
// a positive count of dependents counts as yes.
func isAffirmative(answer string) bool {
	words := strings.FieldsFunc(strings.ToLower(answer), func(r rune) bool {
		return strings.ContainsRune(" \t\n.,;:!?()", r)
	})

	affirmative := false
	for _, word := range words {
		if negativeWords[word] {
			return false
		}
		if n, err := strconv.Atoi(word); err == nil {
			if n <= 0 {
				return false
			}
			affirmative = true
			continue
		}
		if affirmativeWords[word] || countWords[word] {
			affirmative = true
		}
	}
	return affirmative
}

// answerFor prefers the entity the step expects and falls back to the raw
// utterance.
func answerFor(rule slotRule, turn Turn) string {
	if rule.entityType != "" {
		if found, ok := nlp.FirstOfType(turn.Entities, rule.entityType); ok {
			return fmt.Sprint(found.Value)
		}
	}
	return strings.TrimSpace(turn.Text)
}

func finalKey(q entity.QuoteData) string {
	if q.HasDependents == entity.DependentsYes {
		return keyFinalWithDependents
	}
	return keyFinalWithoutDependents
}
