package chatHandler

import (
	"ChatbotFunil/internal/api/chat"
	contextPkg "ChatbotFunil/pkg/context"
	"ChatbotFunil/pkg/handlerUtil"
	"ChatbotFunil/pkg/log"
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

const requestTimeout = 10 * time.Second

func (h *ChatHandler) Chat(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), requestTimeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing chat request")

	var req chat.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, chat.ErrInvalidMessage, ctx.Path(), "parse_request_body")
	}

	if strings.TrimSpace(req.Message) == "" {
		return errHandler.Handle(ctx, requestID, chat.ErrInvalidMessage, ctx.Path(), "validate_message")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		userID = chat.DefaultUserID
	}

	res, err := h.chatService.ProcessMessage(c, userID, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "process_message")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
	}
}

func (h *ChatHandler) GetSession(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), requestTimeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	sess, err := h.chatService.GetSession(c, ctx.Params("userId"))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_session")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, sess)
	}
}
