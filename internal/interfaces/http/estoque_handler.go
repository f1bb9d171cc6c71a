package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Antonio-JDev/sistema-S3E-connect/internal/application/dto"
	"github.com/Antonio-JDev/sistema-S3E-connect/internal/application/estoque"
)

// EstoqueHandler lado de leitura dos saldos (protegido).
type EstoqueHandler struct {
	uc *estoque.ConsultaUseCase
}

// NewEstoqueHandler constrói o handler.
func NewEstoqueHandler(uc *estoque.ConsultaUseCase) *EstoqueHandler {
	return &EstoqueHandler{uc: uc}
}

// List lista saldos; com ?abaixo_minimo=true só os itens em alerta.
// GET /api/estoques
func (h *EstoqueHandler) List(c *fiber.Ctx) error {
	var in dto.ListarEstoquesRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	out, err := h.uc.ListSaldos(c.Context(), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// GetByItem devolve o saldo de um item; item sem movimento responde zero.
// GET /api/estoques/item/:id
func (h *EstoqueHandler) GetByItem(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return respondDomainError(c, err)
	}
	out, err := h.uc.GetSaldo(c.Context(), id)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}
