package entity

import "time"

const MaxHistoryEntries = 10

type Stage uint8

const (
	StageToFu Stage = iota
	StageMoFu
	StageBoFu
	StageBoFuQuoteComplete
)

// StageFAQ is the dataset sentinel meaning "keep the current stage".
const StageFAQ = "FAQ"

var StageMap = map[Stage]string{
	StageToFu:              "ToFu",
	StageMoFu:              "MoFu",
	StageBoFu:              "BoFu",
	StageBoFuQuoteComplete: "BoFu_CotacaoConcluida",
}

func (s Stage) String() string {
	return StageMap[s]
}

func (s Stage) Index() int {
	return int(s)
}

func (s Stage) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ParseStage resolves a dataset stage name. The FAQ sentinel and unknown
// names are reported as not ok.
func ParseStage(name string) (Stage, bool) {
	for stage, stageName := range StageMap {
		if stageName == name {
			return stage, true
		}
	}
	if name == "BoFu_QuoteComplete" {
		return StageBoFuQuoteComplete, true
	}
	return StageToFu, false
}

type Step uint8

const (
	StepNone Step = iota
	StepAskName
	StepAskAge
	StepAskCity
	StepAskHasDependents
	StepAskDependentDetails
	StepFinalize
)

var StepMap = map[Step]string{
	StepNone:                "none",
	StepAskName:             "ask_name",
	StepAskAge:              "ask_age",
	StepAskCity:             "ask_city",
	StepAskHasDependents:    "ask_has_dependents",
	StepAskDependentDetails: "ask_dependent_details",
	StepFinalize:            "finalize",
}

func (s Step) String() string {
	return StepMap[s]
}

func (s Step) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type Dependents uint8

const (
	DependentsUnset Dependents = iota
	DependentsYes
	DependentsNo
)

var DependentsMap = map[Dependents]string{
	DependentsUnset: "",
	DependentsYes:   "sim",
	DependentsNo:    "nao",
}

func (d Dependents) String() string {
	return DependentsMap[d]
}

func (d Dependents) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// QuoteData holds the slots collected by the quote flow. An empty string
// means the slot has not been answered yet.
type QuoteData struct {
	Name             string     `json:"nome_usuario,omitempty"`
	Age              string     `json:"idade,omitempty"`
	City             string     `json:"cidade_cotacao,omitempty"`
	HasDependents    Dependents `json:"tem_dependentes"`
	DependentDetails string     `json:"info_dependentes,omitempty"`
}

// Placeholders returns the populated slots keyed by their template
// placeholder name.
func (q QuoteData) Placeholders() map[string]string {
	values := map[string]string{
		"nome_usuario":     q.Name,
		"idade":            q.Age,
		"cidade_cotacao":   q.City,
		"tem_dependentes":  q.HasDependents.String(),
		"info_dependentes": q.DependentDetails,
	}
	for key, value := range values {
		if value == "" {
			delete(values, key)
		}
	}
	return values
}

// Merge overwrites every slot that is populated in patch.
func (q *QuoteData) Merge(patch QuoteData) {
	if patch.Name != "" {
		q.Name = patch.Name
	}
	if patch.Age != "" {
		q.Age = patch.Age
	}
	if patch.City != "" {
		q.City = patch.City
	}
	if patch.HasDependents != DependentsUnset {
		q.HasDependents = patch.HasDependents
	}
	if patch.DependentDetails != "" {
		q.DependentDetails = patch.DependentDetails
	}
}

type HistoryEntry struct {
	Intent            string    `json:"intent"`
	OldStage          Stage     `json:"old_etapa"`
	NewStage          Stage     `json:"new_etapa"`
	OldStep           Step      `json:"old_step"`
	NewStep           Step      `json:"new_step"`
	QuoteDataSnapshot QuoteData `json:"quote_data_snapshot"`
	Timestamp         time.Time `json:"timestamp"`
}

type UserSession struct {
	UserID                string         `json:"user_id"`
	FunnelStage           Stage          `json:"etapa_funil"`
	CurrentCollectionStep Step           `json:"current_collection_step"`
	CollectedQuoteData    QuoteData      `json:"collected_quote_data"`
	History               []HistoryEntry `json:"history"`
}

func NewUserSession(userID string) UserSession {
	return UserSession{
		UserID:                userID,
		FunnelStage:           StageToFu,
		CurrentCollectionStep: StepNone,
		History:               []HistoryEntry{},
	}
}

// Clone returns a deep copy so a turn can be computed without touching the
// stored session.
func (s UserSession) Clone() UserSession {
	history := make([]HistoryEntry, len(s.History))
	copy(history, s.History)
	s.History = history
	return s
}

// SessionUpdate is a partial update. Nil fields are left untouched.
type SessionUpdate struct {
	Stage         *Stage
	Step          *Step
	ResetData     bool
	QuoteData     *QuoteData
	HistoryIntent *string
}

// Apply writes the update into the session. When HistoryIntent is set a
// history entry describing the before/after state is appended and the
// history is trimmed to the most recent MaxHistoryEntries.
func (s *UserSession) Apply(u SessionUpdate, now time.Time) {
	oldStage := s.FunnelStage
	oldStep := s.CurrentCollectionStep

	if u.Stage != nil {
		s.FunnelStage = *u.Stage
	}
	if u.Step != nil {
		s.CurrentCollectionStep = *u.Step
	}
	if u.ResetData {
		s.CollectedQuoteData = QuoteData{}
	}
	if u.QuoteData != nil {
		s.CollectedQuoteData.Merge(*u.QuoteData)
	}

	if u.HistoryIntent == nil {
		return
	}

	s.History = append(s.History, HistoryEntry{
		Intent:            *u.HistoryIntent,
		OldStage:          oldStage,
		NewStage:          s.FunnelStage,
		OldStep:           oldStep,
		NewStep:           s.CurrentCollectionStep,
		QuoteDataSnapshot: s.CollectedQuoteData,
		Timestamp:         now,
	})
	if overflow := len(s.History) - MaxHistoryEntries; overflow > 0 {
		s.History = append([]HistoryEntry(nil), s.History[overflow:]...)
	}
}
