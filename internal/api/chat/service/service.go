package chatService

import (
	"ChatbotFunil/internal/api/chat"
	leadService "ChatbotFunil/internal/api/lead/service"
	"ChatbotFunil/internal/entity"
	"ChatbotFunil/internal/funnel"
	"ChatbotFunil/internal/session"
	"ChatbotFunil/pkg/nlp"
	"ChatbotFunil/pkg/utils"
	"context"

	"github.com/sirupsen/logrus"
)

type IChatService interface {
	ProcessMessage(ctx context.Context, userID string, req chat.ChatRequest) (*chat.ChatResponse, error)
	GetSession(ctx context.Context, userID string) (entity.UserSession, error)
}

type chatService struct {
	log          *logrus.Logger
	nlpProcessor nlp.INLPProcessor
	machine      funnel.IMachine
	sessions     session.Store
	leadService  leadService.ILeadService
	utils        utils.IUtils
}

func NewChatService(
	log *logrus.Logger,
	nlpProcessor nlp.INLPProcessor,
	machine funnel.IMachine,
	sessions session.Store,
	leadService leadService.ILeadService,
	utils utils.IUtils,
) IChatService {
	return &chatService{
		log:          log,
		nlpProcessor: nlpProcessor,
		machine:      machine,
		sessions:     sessions,
		leadService:  leadService,
		utils:        utils,
	}
}
