package http

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Antonio-JDev/sistema-S3E-connect/internal/application/dto"
	"github.com/Antonio-JDev/sistema-S3E-connect/pkg/jwt"
)

// Locals keys para UserID e Perfil no Fiber.
const (
	LocalUserID = "user_id"
	LocalPerfil = "perfil"
)

// AuthMiddleware valida o Bearer Token JWT e grava UserID e Perfil em c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "header Authorization obrigatório"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vazio"})
		}
		userID, perfil, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido ou expirado"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalPerfil, perfil)
		return c.Next()
	}
}

// RequireRole restringe a rota aos perfis listados. Usar depois do AuthMiddleware.
func RequireRole(perfis ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		perfil := GetPerfil(c)
		for _, p := range perfis {
			if perfil == p {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "perfil sem permissão para esta operação"})
	}
}

// GetUserID devolve o ID numérico do usuário autenticado (0 se ausente).
func GetUserID(c *fiber.Ctx) int64 {
	v := c.Locals(LocalUserID)
	s, _ := v.(string)
	id, _ := strconv.ParseInt(s, 10, 64)
	return id
}

// GetPerfil devolve o perfil do usuário autenticado.
func GetPerfil(c *fiber.Ctx) string {
	v := c.Locals(LocalPerfil)
	s, _ := v.(string)
	return s
}
