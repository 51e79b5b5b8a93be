package lead

import "ChatbotFunil/pkg/response"

var (
	ErrLeadNotPersisted = response.NewError(500, "failed to persist lead")
	ErrLeadNotFound     = response.NewError(404, "lead not found")
)
