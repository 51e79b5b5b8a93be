package middleware

import (
	contextPkg "ChatbotFunil/pkg/context"
	"ChatbotFunil/pkg/utils"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	RequestIDKey = "X-Request-ID"

	maxRequestIDLength = 64
)

// NewRequestIDMiddleware keeps a well-formed incoming X-Request-ID and
// otherwise issues a ULID. The id is stored in the locals, the user context
// and the response header.
func NewRequestIDMiddleware() fiber.Handler {
	utilsInstance := utils.New()

	return func(c *fiber.Ctx) error {
		requestID := c.Get(RequestIDKey)

		if !validRequestID(requestID) {
			id, err := utilsInstance.NewULIDFromTimestamp(time.Now())
			if err != nil {
				id = "unknown"
			}
			requestID = id
		}

		c.Locals(RequestIDKey, requestID)
		c.SetUserContext(contextPkg.WithRequestID(c.UserContext(), requestID))
		c.Set(RequestIDKey, requestID)

		return c.Next()
	}
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for _, r := range id {
		if r < '!' || r > '~' {
			return false
		}
	}
	return true
}
