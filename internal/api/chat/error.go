package chat

import "ChatbotFunil/pkg/response"

var (
	ErrInvalidMessage       = response.NewError(400, "invalid message, provide a non-empty string in the \"message\" field")
	ErrMissingUserID        = response.NewError(400, "user id is required")
	ErrChatProcessingFailed = response.NewError(500, "failed to process the message")
)
