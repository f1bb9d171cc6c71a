package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Antonio-JDev/sistema-S3E-connect/internal/application/auth"
	"github.com/Antonio-JDev/sistema-S3E-connect/internal/application/dto"
)

// AuthHandler trata login e registro de usuários.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler constrói o handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login autentica e devolve o JWT.
// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Registrar cria um usuário (rota restrita a admin no router).
// POST /api/auth/registrar
func (h *AuthHandler) Registrar(c *fiber.Ctx) error {
	var in dto.RegistrarUsuarioRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	usuario, err := h.uc.Registrar(c.Context(), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":     usuario.ID,
		"nome":   usuario.Nome,
		"email":  usuario.Email,
		"perfil": usuario.Perfil,
	})
}
