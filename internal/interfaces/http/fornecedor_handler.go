package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Antonio-JDev/sistema-S3E-connect/internal/application/cadastro"
	"github.com/Antonio-JDev/sistema-S3E-connect/internal/application/dto"
)

// FornecedorHandler CRUD de fornecedores (protegido).
type FornecedorHandler struct {
	uc *cadastro.UseCase
}

// NewFornecedorHandler constrói o handler.
func NewFornecedorHandler(uc *cadastro.UseCase) *FornecedorHandler {
	return &FornecedorHandler{uc: uc}
}

// Create cadastra um fornecedor.
// POST /api/fornecedores
func (h *FornecedorHandler) Create(c *fiber.Ctx) error {
	var in dto.FornecedorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	f, err := h.uc.CreateFornecedor(c.Context(), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(f)
}

// GetByID devolve um fornecedor.
// GET /api/fornecedores/:id
func (h *FornecedorHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return respondDomainError(c, err)
	}
	f, err := h.uc.GetFornecedor(c.Context(), id)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(f)
}

// List lista fornecedores; ?busca= procura por razão social ou CNPJ.
// GET /api/fornecedores
func (h *FornecedorHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	list, total, err := h.uc.ListFornecedores(c.Context(), c.Query("busca"), page)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(fiber.Map{"fornecedores": list, "total": total})
}

// Update atualiza um fornecedor.
// PUT /api/fornecedores/:id
func (h *FornecedorHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return respondDomainError(c, err)
	}
	var in dto.FornecedorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	f, err := h.uc.UpdateFornecedor(c.Context(), id, in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(f)
}
