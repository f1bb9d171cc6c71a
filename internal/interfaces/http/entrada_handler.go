package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Antonio-JDev/sistema-S3E-connect/internal/application/dto"
	"github.com/Antonio-JDev/sistema-S3E-connect/internal/application/estoque"
	"github.com/Antonio-JDev/sistema-S3E-connect/internal/application/nfe"
)

// EntradaHandler trata as requisições HTTP de entradas (protegido).
type EntradaHandler struct {
	uc       *estoque.EntradaUseCase
	importer *nfe.Importer
}

// NewEntradaHandler constrói o handler.
func NewEntradaHandler(uc *estoque.EntradaUseCase, importer *nfe.Importer) *EntradaHandler {
	return &EntradaHandler{uc: uc, importer: importer}
}

// Create registra uma entrada e soma os saldos.
// POST /api/entradas
func (h *EntradaHandler) Create(c *fiber.Ctx) error {
	var in dto.CriarEntradaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	entrada, err := h.uc.CreateEntrada(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entrada)
}

// GetByID devolve a entrada completa.
// GET /api/entradas/:id
func (h *EntradaHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return respondDomainError(c, err)
	}
	entrada, err := h.uc.GetEntrada(c.Context(), id)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(entrada)
}

// List lista entradas por fornecedor e período.
// GET /api/entradas
func (h *EntradaHandler) List(c *fiber.Ctx) error {
	var in dto.ListarEntradasRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	out, err := h.uc.ListEntradas(c.Context(), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Update atualiza o cabeçalho da entrada.
// PUT /api/entradas/:id
func (h *EntradaHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return respondDomainError(c, err)
	}
	var in dto.AtualizarEntradaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	entrada, err := h.uc.UpdateEntrada(c.Context(), id, in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(entrada)
}

// Delete exclui a entrada revertendo os saldos.
// DELETE /api/entradas/:id
func (h *EntradaHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return respondDomainError(c, err)
	}
	if err := h.uc.DeleteEntrada(c.Context(), id); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ImportarNFe lê o XML da nota (corpo da requisição) e devolve os dados da
// pré-importação para o operador mapear ao catálogo. Nada é persistido.
// POST /api/entradas/importar-nfe
func (h *EntradaHandler) ImportarNFe(c *fiber.Ctx) error {
	body := c.Body()
	if len(body) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "XML da NF-e obrigatório"})
	}
	pre, err := h.importer.Parse(body)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(pre)
}
