package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Antonio-JDev/sistema-S3E-connect/internal/application/cadastro"
	"github.com/Antonio-JDev/sistema-S3E-connect/internal/application/dto"
)

// ObraHandler CRUD de obras (protegido).
type ObraHandler struct {
	uc *cadastro.UseCase
}

// NewObraHandler constrói o handler.
func NewObraHandler(uc *cadastro.UseCase) *ObraHandler {
	return &ObraHandler{uc: uc}
}

// Create cadastra uma obra.
// POST /api/obras
func (h *ObraHandler) Create(c *fiber.Ctx) error {
	var in dto.ObraRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	o, err := h.uc.CreateObra(c.Context(), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(o)
}

// GetByID devolve uma obra.
// GET /api/obras/:id
func (h *ObraHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return respondDomainError(c, err)
	}
	o, err := h.uc.GetObra(c.Context(), id)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(o)
}

// List lista obras; ?status= filtra por situação.
// GET /api/obras
func (h *ObraHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	list, total, err := h.uc.ListObras(c.Context(), c.Query("status"), page)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(fiber.Map{"obras": list, "total": total})
}

// Update atualiza uma obra.
// PUT /api/obras/:id
func (h *ObraHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return respondDomainError(c, err)
	}
	var in dto.ObraRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	o, err := h.uc.UpdateObra(c.Context(), id, in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(o)
}
