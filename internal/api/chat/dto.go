package chat

import "ChatbotFunil/pkg/nlp"

const DefaultUserID = "defaultUser"

type ChatRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
	UserID  string `json:"userId" validate:"omitempty,max=128"`
}

type ChatResponse struct {
	UserInput         string                `json:"userInput"`
	DetectedIntent    string                `json:"detectedIntent"`
	ExtractedEntities []nlp.ExtractedEntity `json:"extractedEntities"`
	IAReply           string                `json:"iaReply"`
	ConversationState ConversationState     `json:"conversationState"`
}

type ConversationState struct {
	UserID            string `json:"userId"`
	CurrentEtapaFunil string `json:"currentEtapaFunil"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
