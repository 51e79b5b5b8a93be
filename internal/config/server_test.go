package config

import (
	"ChatbotFunil/internal/api/chat"
	"ChatbotFunil/internal/entity"
	"ChatbotFunil/pkg/artifact"
	"ChatbotFunil/pkg/log"
	"ChatbotFunil/pkg/nlp"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBundle() *artifact.Bundle {
	normalizer := nlp.NewNormalizer(nil)
	quoteToken := normalizer.Normalize("cotação")[0]
	greetingToken := normalizer.Normalize("olá")[0]
	norm := nlp.NormL2

	return &artifact.Bundle{
		Dataset: chatDataset(),
		Tfidf: &nlp.TfidfModel{
			Vocabulary: map[string]int{quoteToken: 0, greetingToken: 1},
			IDF:        []float64{1, 1},
			NgramRange: []int{1, 1},
			Norm:       &norm,
		},
		Classifier: &nlp.ClassifierModel{
			Coef:      [][]float64{{0, 1}, {1, 0}},
			Intercept: []float64{0.01, 0},
			Classes:   []string{"saudacao", "solicitar_cotacao_plano"},
		},
		Entities: nlp.EntityDictionary{"cidade_cotacao": {"Curitiba"}},
	}
}

func newTestServer(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("APP_ENV", "test")
	t.Setenv("DATABASE_URL", "")
	log.NewLogger()

	logger, _ := test.NewNullLogger()
	server, err := NewServer(
		WithFiber(NewFiber(logger)),
		WithLogger(logger),
		WithValidator(NewValidator()),
		WithArtifacts(testBundle()),
		WithDatabase(),
		WithMiddleware(),
		WithUtils(),
	)
	require.NoError(t, err)

	server.RegisterHandler()
	app := server.App()
	t.Cleanup(func() { _ = server.Shutdown() })
	return app
}

func postChat(t *testing.T, app *fiber.App, body string) (*http.Response, []byte) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, "/api/v1/chat", strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func TestServer_ChatRoundTrip(t *testing.T) {
	app := newTestServer(t)

	resp, raw := postChat(t, app, `{"message": "Quero uma cotação"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))

	var res chat.ChatResponse
	require.NoError(t, jsoniter.Unmarshal(raw, &res))
	assert.Equal(t, "Quero uma cotação", res.UserInput)
	assert.Equal(t, "solicitar_cotacao_plano", res.DetectedIntent)
	assert.Equal(t, "Qual seu nome?", res.IAReply)
	assert.Equal(t, chat.ConversationState{UserID: chat.DefaultUserID, CurrentEtapaFunil: "BoFu"}, res.ConversationState)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	resp, raw = postChat(t, app, `{"message": "Ana", "userId": "other"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NoError(t, jsoniter.Unmarshal(raw, &res))
	assert.Equal(t, "other", res.ConversationState.UserID)
	assert.Equal(t, "ToFu", res.ConversationState.CurrentEtapaFunil)
}

func TestServer_ChatRejectsInvalidMessage(t *testing.T) {
	app := newTestServer(t)

	for _, body := range []string{`{"message": "   "}`, `{"userId": "u1"}`, `{"message": 42}`, `not json`} {
		resp, raw := postChat(t, app, body)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, body)
		assert.Contains(t, string(raw), `"error"`)
	}
}

func TestServer_SessionInspection(t *testing.T) {
	app := newTestServer(t)
	postChat(t, app, `{"message": "quero cotação", "userId": "u1"}`)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/session/u1", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"etapa_funil":"BoFu"`)
	assert.Contains(t, string(raw), `"current_collection_step":"ask_name"`)
}

func TestServer_LeadsWithoutDatabase(t *testing.T) {
	app := newTestServer(t)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/leads/u1", nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestServer_HealthAndMetrics(t *testing.T) {
	app := newTestServer(t)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/health", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var health chat.HealthResponse
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, jsoniter.Unmarshal(raw, &health))
	assert.Equal(t, "UP", health.Status)

	postChat(t, app, `{"message": "olá"}`)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	raw, _ = io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), "chat_turns_total")
}

func chatDataset() entity.Dataset {
	return entity.Dataset{Entries: []entity.DatasetEntry{
		{
			Intent:      "informar_dado_para_cotacao",
			FunnelStage: "BoFu",
			SequentialQuoteResponses: map[string]string{
				"ask_nome": "Qual seu nome?",
			},
		},
	}}
}

func TestServer_UnknownRoute(t *testing.T) {
	app := newTestServer(t)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/nope", nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), `"error"`)
}
