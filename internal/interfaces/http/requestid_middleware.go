package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderRequestID propaga a correlação entre cliente, logs e resposta.
const HeaderRequestID = "X-Request-ID"

// RequestIDMiddleware garante um identificador por requisição: aproveita o
// header do cliente quando presente, senão gera um UUID.
func RequestIDMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(HeaderRequestID, id)
		c.Set(HeaderRequestID, id)
		return c.Next()
	}
}
