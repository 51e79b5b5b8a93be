package funnel

import (
	"ChatbotFunil/internal/entity"
	"ChatbotFunil/pkg/nlp"
	"time"

	"github.com/sirupsen/logrus"
)

type Rule string

const (
	RuleReset          Rule = "reset"
	RuleCollection     Rule = "collection"
	RulePostCompletion Rule = "post_completion"
	RuleLookup         Rule = "lookup"
)

type Turn struct {
	Intent   string
	Entities []nlp.ExtractedEntity
	Text     string
}

type Result struct {
	Template string
	Rule     Rule
	// Final is set on the turn that completes the quote.
	Final bool
}

type IMachine interface {
	Step(s *entity.UserSession, turn Turn) Result
}

type Machine struct {
	log       *logrus.Logger
	entries   map[string]entity.DatasetEntry
	questions map[string]string
	now       func() time.Time
}

func New(log *logrus.Logger, dataset entity.Dataset) *Machine {
	entries := make(map[string]entity.DatasetEntry, len(dataset.Entries))
	for _, e := range dataset.Entries {
		if _, dup := entries[e.Intent]; !dup {
			entries[e.Intent] = e
		}
	}

	questions := map[string]string{}
	if e, ok := entries[IntentQuoteData]; ok && e.SequentialQuoteResponses != nil {
		questions = e.SequentialQuoteResponses
	} else {
		log.WithFields(logrus.Fields{
			"intent": IntentQuoteData,
		}).Warn("Sequential quote responses not found in dataset")
	}

	return &Machine{
		log:       log,
		entries:   entries,
		questions: questions,
		now:       time.Now,
	}
}

// Step decides the transition for one turn, writes it into the session as a
// single update with one history entry and returns the raw reply template.
func (m *Machine) Step(s *entity.UserSession, turn Turn) Result {
	var (
		update entity.SessionUpdate
		result Result
	)

	switch {
	case turn.Intent == IntentRequestQuote:
		update, result = m.reset()
	case s.FunnelStage == entity.StageBoFu && inCollection(s.CurrentCollectionStep):
		update, result = m.collect(s, turn)
	case s.FunnelStage == entity.StageBoFuQuoteComplete && !genericIntents[turn.Intent]:
		update, result = m.alreadySubmitted(s)
	default:
		update, result = m.lookup(s, turn.Intent)
	}

	intent := turn.Intent
	update.HistoryIntent = &intent
	s.Apply(update, m.now())

	m.log.WithFields(logrus.Fields{
		"user_id": s.UserID,
		"intent":  turn.Intent,
		"rule":    result.Rule,
		"stage":   s.FunnelStage.String(),
		"step":    s.CurrentCollectionStep.String(),
	}).Debug("Funnel transition applied")

	return result
}

func inCollection(step entity.Step) bool {
	_, ok := collectionFlow[step]
	return ok
}

func (m *Machine) reset() (entity.SessionUpdate, Result) {
	stage := entity.StageBoFu
	step := entity.StepAskName

	question, ok := m.questions[collectionFlow[step].questionKey]
	if !ok {
		question = msgDefaultAskName
	}

	return entity.SessionUpdate{
		Stage:     &stage,
		Step:      &step,
		ResetData: true,
	}, Result{Template: question, Rule: RuleReset}
}

func (m *Machine) collect(s *entity.UserSession, turn Turn) (entity.SessionUpdate, Result) {
	rule := collectionFlow[s.CurrentCollectionStep]

	var patch entity.QuoteData
	rule.store(&patch, answerFor(rule, turn))

	merged := s.CollectedQuoteData
	merged.Merge(patch)
	next := rule.next(merged)

	update := entity.SessionUpdate{Step: &next, QuoteData: &patch}

	if next == entity.StepFinalize {
		stage := entity.StageBoFuQuoteComplete
		update.Stage = &stage
		return update, Result{
			Template: m.question(finalKey(merged)),
			Rule:     RuleCollection,
			Final:    true,
		}
	}

	return update, Result{
		Template: m.question(collectionFlow[next].questionKey),
		Rule:     RuleCollection,
	}
}

func (m *Machine) question(key string) string {
	if text, ok := m.questions[key]; ok && text != "" {
		return text
	}
	m.log.WithFields(logrus.Fields{
		"step_key": key,
	}).Warn("Response text not found for collection step")
	return msgFlowProblem
}

func (m *Machine) alreadySubmitted(s *entity.UserSession) (entity.SessionUpdate, Result) {
	opening := msgAnonymousOpening
	if s.CollectedQuoteData.Name != "" {
		opening = "[nome_usuario]"
	}
	return entity.SessionUpdate{}, Result{
		Template: opening + msgQuoteSubmitted,
		Rule:     RulePostCompletion,
	}
}

func (m *Machine) lookup(s *entity.UserSession, intent string) (entity.SessionUpdate, Result) {
	if e, ok := m.entries[intent]; ok {
		if e.Response == "" {
			m.log.WithFields(logrus.Fields{
				"intent": intent,
			}).Warn("Dataset entry has no response template")
			return entity.SessionUpdate{}, Result{Template: msgNoResponse, Rule: RuleLookup}
		}

		var update entity.SessionUpdate
		if e.FunnelStage != entity.StageFAQ {
			if suggested, known := entity.ParseStage(e.FunnelStage); known && suggested.Index() > s.FunnelStage.Index() {
				update.Stage = &suggested
			}
		}
		return update, Result{Template: e.Response, Rule: RuleLookup}
	}

	if text, ok := fallbackByIntent[intent]; ok {
		return entity.SessionUpdate{}, Result{Template: text, Rule: RuleLookup}
	}

	m.log.WithFields(logrus.Fields{
		"intent": intent,
	}).Warn("No dataset entry or fallback for intent")
	return entity.SessionUpdate{}, Result{Template: msgNotUnderstood, Rule: RuleLookup}
}
