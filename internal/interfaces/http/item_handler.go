package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Antonio-JDev/sistema-S3E-connect/internal/application/cadastro"
	"github.com/Antonio-JDev/sistema-S3E-connect/internal/application/dto"
)

// ItemHandler CRUD do catálogo de itens e leitura de unidades (protegido).
type ItemHandler struct {
	uc *cadastro.UseCase
}

// NewItemHandler constrói o handler.
func NewItemHandler(uc *cadastro.UseCase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

// Create cadastra um item.
// POST /api/itens
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CriarItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	item, err := h.uc.CreateItem(c.Context(), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// GetByID devolve um item.
// GET /api/itens/:id
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return respondDomainError(c, err)
	}
	item, err := h.uc.GetItem(c.Context(), id)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(item)
}

// List lista o catálogo; ?busca= procura por código ou descrição sem acentos.
// GET /api/itens
func (h *ItemHandler) List(c *fiber.Ctx) error {
	var in dto.ListarItensRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	out, err := h.uc.ListItens(c.Context(), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Update atualiza um item (código e unidade base não mudam).
// PUT /api/itens/:id
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return respondDomainError(c, err)
	}
	var in dto.AtualizarItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	item, err := h.uc.UpdateItem(c.Context(), id, in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(item)
}

// ListUnidades lista as unidades de medida.
// GET /api/unidades
func (h *ItemHandler) ListUnidades(c *fiber.Ctx) error {
	out, err := h.uc.ListUnidades(c.Context())
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}
