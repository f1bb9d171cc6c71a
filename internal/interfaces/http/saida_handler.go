package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/Antonio-JDev/sistema-S3E-connect/internal/application/dto"
	"github.com/Antonio-JDev/sistema-S3E-connect/internal/application/estoque"
)

// SaidaHandler trata as requisições HTTP de saídas (protegido).
type SaidaHandler struct {
	uc *estoque.SaidaUseCase
}

// NewSaidaHandler constrói o handler.
func NewSaidaHandler(uc *estoque.SaidaUseCase) *SaidaHandler {
	return &SaidaHandler{uc: uc}
}

// Create registra uma saída e baixa os saldos.
// POST /api/saidas
func (h *SaidaHandler) Create(c *fiber.Ctx) error {
	var in dto.CriarSaidaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	saida, err := h.uc.CreateSaida(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(saida)
}

// GetByID devolve a saída completa.
// GET /api/saidas/:id
func (h *SaidaHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return respondDomainError(c, err)
	}
	saida, err := h.uc.GetSaida(c.Context(), id)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(saida)
}

// List lista saídas por obra e período.
// GET /api/saidas
func (h *SaidaHandler) List(c *fiber.Ctx) error {
	var in dto.ListarSaidasRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	out, err := h.uc.ListSaidas(c.Context(), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Update atualiza o cabeçalho da saída.
// PUT /api/saidas/:id
func (h *SaidaHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return respondDomainError(c, err)
	}
	var in dto.AtualizarSaidaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	saida, err := h.uc.UpdateSaida(c.Context(), id, in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(saida)
}

// Delete exclui a saída devolvendo os saldos.
// DELETE /api/saidas/:id
func (h *SaidaHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return respondDomainError(c, err)
	}
	if err := h.uc.DeleteSaida(c.Context(), id); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Romaneio gera o PDF da guia de remessa da saída.
// GET /api/saidas/:id/romaneio
func (h *SaidaHandler) Romaneio(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return respondDomainError(c, err)
	}
	pdfBytes, err := h.uc.GerarRomaneio(c.Context(), id)
	if err != nil {
		return respondDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="romaneio-%d.pdf"`, id))
	return c.Send(pdfBytes)
}
