package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/application/inventory"
)

// StockHandler maneja las vistas de existencias y los conteos físicos (protegido).
type StockHandler struct {
	stockUC *inventory.StockUseCase
	checkUC *inventory.CheckUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(stockUC *inventory.StockUseCase, checkUC *inventory.CheckUseCase) *StockHandler {
	return &StockHandler{stockUC: stockUC, checkUC: checkUC}
}

// List godoc
// @Summary      Listar existencias
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        keyword      query  string  false  "Búsqueda"
// @Param        category_id  query  string  false  "Filtrar por categoría"
// @Param        sort_by      query  string  false  "stock o name"
// @Param        order        query  string  false  "asc o desc"
// @Success      200  {object}  dto.StockListResponse
// @Router       /api/stock [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	in := dto.StockListRequest{
		Keyword:    c.Query("keyword"),
		CategoryID: c.Query("category_id"),
		SortBy:     c.Query("sort_by"),
		Order:      c.Query("order"),
		PageRequest: dto.PageRequest{
			Limit:  c.QueryInt("limit", 20),
			Offset: c.QueryInt("offset", 0),
		},
	}
	out, err := h.stockUC.List(c.Context(), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Warning godoc
// @Summary      Medicamentos en o por debajo de su stock mínimo
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StockItemResponse
// @Router       /api/stock/warning [get]
func (h *StockHandler) Warning(c *fiber.Ctx) error {
	out, err := h.stockUC.Warning(c.Context())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// CreateCheck godoc
// @Summary      Registrar un conteo físico (solo registro, no ajusta stock)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockCheckRequest  true  "Conteo"
// @Success      201   {object}  dto.StockCheckResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock/checks [post]
func (h *StockHandler) CreateCheck(c *fiber.Ctx) error {
	var in dto.CreateStockCheckRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Checker == "" {
		in.Checker = GetUsername(c)
	}
	out, err := h.checkUC.Create(c.Context(), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetCheck godoc
// @Summary      Obtener un conteo con sus líneas
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Número de conteo"
// @Success      200  {object}  dto.StockCheckResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/checks/{id} [get]
func (h *StockHandler) GetCheck(c *fiber.Ctx) error {
	out, err := h.checkUC.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "conteo no encontrado"})
	}
	return c.JSON(out)
}

// ListChecks godoc
// @Summary      Listar conteos físicos
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200  {object}  dto.StockCheckListResponse
// @Router       /api/stock/checks [get]
func (h *StockHandler) ListChecks(c *fiber.Ctx) error {
	page := dto.PageRequest{
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
	out, err := h.checkUC.List(c.Context(), page)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}
