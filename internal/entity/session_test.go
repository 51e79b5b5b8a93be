package entity

import (
	"fmt"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserSession_ApplyTrimsHistoryOldestFirst(t *testing.T) {
	s := NewUserSession("u1")
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 15; i++ {
		intent := fmt.Sprintf("intent_%d", i)
		s.Apply(SessionUpdate{HistoryIntent: &intent}, now)
		assert.LessOrEqual(t, len(s.History), MaxHistoryEntries)
	}

	require.Len(t, s.History, MaxHistoryEntries)
	assert.Equal(t, "intent_5", s.History[0].Intent)
	assert.Equal(t, "intent_14", s.History[MaxHistoryEntries-1].Intent)
}

func TestUserSession_ApplyRecordsTransition(t *testing.T) {
	s := NewUserSession("u1")
	stage := StageBoFu
	step := StepAskName
	intent := "solicitar_cotacao_plano"

	s.Apply(SessionUpdate{Stage: &stage, Step: &step, HistoryIntent: &intent}, time.Now())

	require.Len(t, s.History, 1)
	entry := s.History[0]
	assert.Equal(t, StageToFu, entry.OldStage)
	assert.Equal(t, StageBoFu, entry.NewStage)
	assert.Equal(t, StepNone, entry.OldStep)
	assert.Equal(t, StepAskName, entry.NewStep)
}

func TestUserSession_ApplyResetThenMerge(t *testing.T) {
	s := NewUserSession("u1")
	s.CollectedQuoteData = QuoteData{Name: "Ana", City: "Recife"}

	s.Apply(SessionUpdate{ResetData: true, QuoteData: &QuoteData{Age: "40"}}, time.Now())

	assert.Equal(t, QuoteData{Age: "40"}, s.CollectedQuoteData)
	assert.Empty(t, s.History)
}

func TestUserSession_CloneIsIndependent(t *testing.T) {
	s := NewUserSession("u1")
	intent := "saudacao"
	s.Apply(SessionUpdate{HistoryIntent: &intent}, time.Now())

	clone := s.Clone()
	clone.History[0].Intent = "changed"
	clone.CollectedQuoteData.Name = "Ana"

	assert.Equal(t, "saudacao", s.History[0].Intent)
	assert.Empty(t, s.CollectedQuoteData.Name)
}

func TestQuoteData_Placeholders(t *testing.T) {
	q := QuoteData{Name: "João", HasDependents: DependentsNo}

	assert.Equal(t, map[string]string{
		"nome_usuario":    "João",
		"tem_dependentes": "nao",
	}, q.Placeholders())
}

func TestParseStage(t *testing.T) {
	tests := []struct {
		name   string
		want   Stage
		wantOK bool
	}{
		{name: "ToFu", want: StageToFu, wantOK: true},
		{name: "MoFu", want: StageMoFu, wantOK: true},
		{name: "BoFu", want: StageBoFu, wantOK: true},
		{name: "BoFu_CotacaoConcluida", want: StageBoFuQuoteComplete, wantOK: true},
		{name: "BoFu_QuoteComplete", want: StageBoFuQuoteComplete, wantOK: true},
		{name: StageFAQ, want: StageToFu, wantOK: false},
		{name: "", want: StageToFu, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseStage(tt.name)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUserSession_MarshalsNames(t *testing.T) {
	s := NewUserSession("u1")
	s.FunnelStage = StageBoFu
	s.CurrentCollectionStep = StepAskCity

	raw, err := jsoniter.Marshal(s)
	require.NoError(t, err)

	assert.Contains(t, string(raw), `"etapa_funil":"BoFu"`)
	assert.Contains(t, string(raw), `"current_collection_step":"ask_city"`)
}
