package config

import (
	"ChatbotFunil/pkg/handlerUtil"
	"errors"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

func NewFiber(logger *logrus.Logger) *fiber.App {
	app := fiber.New(
		fiber.Config{
			AppName:           "Chatbot Funil",
			BodyLimit:         1 * 1024 * 1024,
			DisableKeepalive:  false,
			StrictRouting:     true,
			CaseSensitive:     true,
			EnablePrintRoutes: logger.IsLevelEnabled(logrus.DebugLevel),
			JSONEncoder:       jsoniter.Marshal,
			JSONDecoder:       jsoniter.Unmarshal,
			ErrorHandler:      newErrorHandler(logger),
		})

	return app
}

// newErrorHandler renders errors that escape the handlers, such as unknown
// routes or oversized bodies, with the same JSON shape as handlerUtil.
func newErrorHandler(logger *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
		}

		logger.WithFields(logrus.Fields{
			"path":   c.Path(),
			"method": c.Method(),
			"status": code,
			"error":  err.Error(),
		}).Warn("Request failed outside handler")

		return c.Status(code).JSON(handlerUtil.ErrorResponse{Error: err.Error()})
	}
}
