package chatService

import (
	"ChatbotFunil/internal/api/chat"
	"ChatbotFunil/internal/entity"
	"ChatbotFunil/internal/funnel"
	contextPkg "ChatbotFunil/pkg/context"
	"ChatbotFunil/pkg/metrics"
	"ChatbotFunil/pkg/nlp"
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

func (s *chatService) ProcessMessage(
	ctx context.Context,
	userID string,
	req chat.ChatRequest,
) (*chat.ChatResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)
	start := time.Now()
	defer func() {
		metrics.TurnDuration.Observe(time.Since(start).Seconds())
	}()

	if strings.TrimSpace(req.Message) == "" {
		return nil, chat.ErrInvalidMessage
	}
	if userID == "" {
		return nil, chat.ErrMissingUserID
	}

	analysis := s.nlpProcessor.Analyze(req.Message)
	if isFallbackIntent(analysis.Intent) {
		metrics.FallbackIntents.WithLabelValues(analysis.Intent).Inc()
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    userID,
			"intent":     analysis.Intent,
			"tokens":     analysis.Tokens,
		}).Warn("Intent could not be determined, using fallback")
	}

	var (
		reply    string
		result   funnel.Result
		oldStage entity.Stage
	)
	snapshot, err := s.sessions.Update(userID, func(sess *entity.UserSession) error {
		oldStage = sess.FunnelStage
		result = s.machine.Step(sess, funnel.Turn{
			Intent:   analysis.Intent,
			Entities: analysis.Entities,
			Text:     req.Message,
		})
		reply = funnel.Render(result.Template, sess.CollectedQuoteData)
		return nil
	})
	if err != nil {
		metrics.ChatTurnsFailed.Inc()
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    userID,
			"error":      err.Error(),
		}).Error("Failed to process chat turn")
		return nil, chat.ErrChatProcessingFailed
	}

	metrics.ChatTurns.WithLabelValues(analysis.Intent, string(result.Rule)).Inc()
	if oldStage != snapshot.FunnelStage {
		metrics.StageTransitions.WithLabelValues(oldStage.String(), snapshot.FunnelStage.String()).Inc()
	}
	if result.Final {
		metrics.QuotesCompleted.Inc()
		s.dispatchLead(requestID, snapshot)
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"user_id":    userID,
		"intent":     analysis.Intent,
		"etapa":      snapshot.FunnelStage.String(),
		"reply":      reply,
	}).Info("Chat turn processed")

	return &chat.ChatResponse{
		UserInput:         req.Message,
		DetectedIntent:    analysis.Intent,
		ExtractedEntities: analysis.Entities,
		IAReply:           reply,
		ConversationState: chat.ConversationState{
			UserID:            snapshot.UserID,
			CurrentEtapaFunil: snapshot.FunnelStage.String(),
		},
	}, nil
}

func (s *chatService) GetSession(ctx context.Context, userID string) (entity.UserSession, error) {
	if userID == "" {
		return entity.UserSession{}, chat.ErrMissingUserID
	}
	return s.sessions.Get(userID), nil
}

func (s *chatService) dispatchLead(requestID string, snapshot entity.UserSession) {
	if s.leadService == nil {
		return
	}

	now := time.Now()
	leadID, err := s.utils.NewULIDFromTimestamp(now)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate lead ID")
		return
	}

	s.leadService.Dispatch(entity.NewLead(leadID, snapshot, now))
}

func isFallbackIntent(intent string) bool {
	switch intent {
	case nlp.IntentUnknown, nlp.IntentFallbackLenMismatch, nlp.IntentFallbackNoPrediction:
		return true
	}
	return false
}
