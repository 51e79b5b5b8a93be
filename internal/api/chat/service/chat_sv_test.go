package chatService

import (
	"ChatbotFunil/internal/api/chat"
	"ChatbotFunil/internal/entity"
	"ChatbotFunil/internal/funnel"
	"ChatbotFunil/internal/session"
	"ChatbotFunil/pkg/nlp"
	"ChatbotFunil/pkg/utils"
	"context"
	"sync"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProcessor map[string]*nlp.Analysis

func (s stubProcessor) Analyze(text string) *nlp.Analysis {
	if analysis, ok := s[text]; ok {
		return analysis
	}
	return &nlp.Analysis{Tokens: []string{}, Intent: nlp.IntentUnknown, Entities: []nlp.ExtractedEntity{}}
}

type recordingLeadService struct {
	mu    sync.Mutex
	leads []entity.Lead
}

func (r *recordingLeadService) Dispatch(l entity.Lead) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leads = append(r.leads, l)
	return true
}

func (r *recordingLeadService) GetLeadsByUserID(ctx context.Context, userID string) ([]entity.Lead, error) {
	return nil, nil
}

func (r *recordingLeadService) Start(ctx context.Context) {}

func (r *recordingLeadService) Stop() {}

type panickingMachine struct{}

func (panickingMachine) Step(s *entity.UserSession, turn funnel.Turn) funnel.Result {
	s.FunnelStage = entity.StageBoFu
	panic("template index out of range")
}

func analysis(intent string, entities ...nlp.ExtractedEntity) *nlp.Analysis {
	if entities == nil {
		entities = []nlp.ExtractedEntity{}
	}
	return &nlp.Analysis{Tokens: []string{}, Intent: intent, Entities: entities}
}

func testDataset() entity.Dataset {
	return entity.Dataset{Entries: []entity.DatasetEntry{
		{
			Intent:      funnel.IntentQuoteData,
			FunnelStage: "BoFu",
			SequentialQuoteResponses: map[string]string{
				"ask_nome":                "Qual seu nome?",
				"ask_idade":               "[nome_usuario], qual sua idade?",
				"ask_cidade":              "Qual sua cidade?",
				"ask_dependentes_sim_nao": "Possui dependentes?",
				"final_sem_dependentes":   "Pronto, [nome_usuario]! Cotação para [cidade_cotacao] enviada.",
			},
		},
		{Intent: "duvida_preco", FunnelStage: "MoFu", Response: "Depende da idade."},
	}}
}

func newTestService(t *testing.T, machine funnel.IMachine) (IChatService, session.Store, *recordingLeadService) {
	t.Helper()
	logger, _ := test.NewNullLogger()

	processor := stubProcessor{
		"Olá":               analysis(funnel.IntentGreeting),
		"quero uma cotação": analysis(funnel.IntentRequestQuote),
		"João":              analysis(funnel.IntentQuoteData),
		"tenho 35 anos":     analysis(funnel.IntentQuoteData, nlp.ExtractedEntity{Type: nlp.EntityAge, Value: 35, RawMatchInText: "35 anos"}),
		"Curitiba":          analysis(funnel.IntentQuoteData),
		"não":               analysis(funnel.IntentQuoteData),
		"quanto custa":      analysis("duvida_preco"),
	}
	if machine == nil {
		machine = funnel.New(logger, testDataset())
	}
	store := session.New(logger)
	leads := &recordingLeadService{}

	return NewChatService(logger, processor, machine, store, leads, utils.New()), store, leads
}

func TestChatService_ProcessMessageGreeting(t *testing.T) {
	svc, _, _ := newTestService(t, nil)

	res, err := svc.ProcessMessage(context.Background(), "u1", chat.ChatRequest{Message: "Olá"})
	require.NoError(t, err)

	assert.Equal(t, "Olá", res.UserInput)
	assert.Equal(t, funnel.IntentGreeting, res.DetectedIntent)
	assert.Equal(t, []nlp.ExtractedEntity{}, res.ExtractedEntities)
	assert.Equal(t, "Olá! Como posso te ajudar com planos de saúde hoje?", res.IAReply)
	assert.Equal(t, chat.ConversationState{UserID: "u1", CurrentEtapaFunil: "ToFu"}, res.ConversationState)
}

func TestChatService_QuoteFlowDispatchesLead(t *testing.T) {
	svc, store, leads := newTestService(t, nil)
	ctx := context.Background()

	replies := []string{}
	for _, msg := range []string{"quero uma cotação", "João", "tenho 35 anos", "Curitiba", "não"} {
		res, err := svc.ProcessMessage(ctx, "u1", chat.ChatRequest{Message: msg})
		require.NoError(t, err)
		replies = append(replies, res.IAReply)
	}

	assert.Equal(t, []string{
		"Qual seu nome?",
		"João, qual sua idade?",
		"Qual sua cidade?",
		"Possui dependentes?",
		"Pronto, João! Cotação para Curitiba enviada.",
	}, replies)

	s := store.Get("u1")
	assert.Equal(t, entity.StageBoFuQuoteComplete, s.FunnelStage)
	assert.Equal(t, "35", s.CollectedQuoteData.Age)
	assert.Len(t, s.History, 5)

	require.Len(t, leads.leads, 1)
	lead := leads.leads[0]
	assert.NotEmpty(t, lead.ID)
	assert.Equal(t, "u1", lead.UserID)
	assert.Equal(t, "João", lead.Name)
	assert.Equal(t, "Curitiba", lead.City)
	assert.Equal(t, "nao", lead.Dependents)

	res, err := svc.ProcessMessage(ctx, "u1", chat.ChatRequest{Message: "quanto custa"})
	require.NoError(t, err)
	assert.Contains(t, res.IAReply, "João! Sua cotação anterior já foi processada.")
	assert.Equal(t, "BoFu_CotacaoConcluida", res.ConversationState.CurrentEtapaFunil)
	assert.Len(t, leads.leads, 1)
}

func TestChatService_SessionsAreIsolated(t *testing.T) {
	svc, store, _ := newTestService(t, nil)
	ctx := context.Background()

	_, err := svc.ProcessMessage(ctx, "u1", chat.ChatRequest{Message: "quero uma cotação"})
	require.NoError(t, err)
	_, err = svc.ProcessMessage(ctx, "u2", chat.ChatRequest{Message: "quanto custa"})
	require.NoError(t, err)

	assert.Equal(t, entity.StageBoFu, store.Get("u1").FunnelStage)
	assert.Equal(t, entity.StageMoFu, store.Get("u2").FunnelStage)
}

func TestChatService_InvalidInput(t *testing.T) {
	svc, _, _ := newTestService(t, nil)

	_, err := svc.ProcessMessage(context.Background(), "u1", chat.ChatRequest{Message: "   "})
	assert.ErrorIs(t, err, chat.ErrInvalidMessage)

	_, err = svc.ProcessMessage(context.Background(), "", chat.ChatRequest{Message: "Olá"})
	assert.ErrorIs(t, err, chat.ErrMissingUserID)

	_, err = svc.GetSession(context.Background(), "")
	assert.ErrorIs(t, err, chat.ErrMissingUserID)
}

func TestChatService_FailedTurnIsNotCommitted(t *testing.T) {
	svc, store, _ := newTestService(t, panickingMachine{})

	_, err := svc.ProcessMessage(context.Background(), "u1", chat.ChatRequest{Message: "Olá"})

	assert.ErrorIs(t, err, chat.ErrChatProcessingFailed)
	s := store.Get("u1")
	assert.Equal(t, entity.StageToFu, s.FunnelStage)
	assert.Empty(t, s.History)
}

func TestChatService_GetSession(t *testing.T) {
	svc, _, _ := newTestService(t, nil)

	_, err := svc.ProcessMessage(context.Background(), "u1", chat.ChatRequest{Message: "quero uma cotação"})
	require.NoError(t, err)

	s, err := svc.GetSession(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, entity.StepAskName, s.CurrentCollectionStep)
	require.Len(t, s.History, 1)
	assert.Equal(t, funnel.IntentRequestQuote, s.History[0].Intent)
}
