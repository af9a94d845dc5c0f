package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Farmacia-api/internal/application/document"
	"github.com/jhoicas/Farmacia-api/internal/application/dto"
)

// DocumentHandler maneja el flujo de documentos de entrada/salida y su auditoría (protegido).
type DocumentHandler struct {
	uc    *document.UseCase
	pdfUC *document.PDFUseCase
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(uc *document.UseCase, pdfUC *document.PDFUseCase) *DocumentHandler {
	return &DocumentHandler{uc: uc, pdfUC: pdfUC}
}

// Create godoc
// @Summary      Crear documento (queda en PENDING, no toca stock)
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDocumentRequest  true  "Cabecera y líneas"
// @Success      201   {object}  dto.DocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/documents [post]
func (h *DocumentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener documento con sus líneas
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Número de documento"
// @Success      200  {object}  dto.DocumentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id} [get]
func (h *DocumentHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "documento no encontrado"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Reemplazar líneas y fijar estado de auditoría (una sola transacción)
// @Description  Si el documento estaba APPROVED su efecto se revierte primero; aprobar
// @Description  una salida verifica stock suficiente por línea contra el stock revertido.
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Número de documento"
// @Param        body  body  dto.UpdateDocumentRequest  true  "Cabecera, líneas y estado"
// @Success      200   {object}  dto.DocumentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "Stock insuficiente"
// @Router       /api/documents/{id} [put]
func (h *DocumentHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.ReplaceLinesAndSetStatus(c.Context(), GetUsername(c), c.Params("id"), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar documento (revierte su efecto si estaba APPROVED)
// @Tags         documents
// @Security     Bearer
// @Param        id  path  string  true  "Número de documento"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id} [delete]
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List godoc
// @Summary      Listar documentos de una dirección
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        direction  query  string  true   "INBOUND u OUTBOUND"
// @Param        status     query  string  false  "PENDING, APPROVED o REJECTED"
// @Param        keyword    query  string  false  "Búsqueda en número y cliente"
// @Param        from       query  string  false  "Fecha inicial YYYY-MM-DD"
// @Param        to         query  string  false  "Fecha final YYYY-MM-DD"
// @Param        limit      query  int     false  "Límite"   default(20)
// @Param        offset     query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.DocumentListResponse
// @Router       /api/documents [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	direction := strings.ToUpper(c.Query("direction"))
	in := dto.ListDocumentsRequest{
		Keyword: c.Query("keyword"),
		Status:  strings.ToUpper(c.Query("status")),
		From:    c.Query("from"),
		To:      c.Query("to"),
		PageRequest: dto.PageRequest{
			Limit:  c.QueryInt("limit", 20),
			Offset: c.QueryInt("offset", 0),
		},
	}
	out, err := h.uc.List(c.Context(), direction, in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Descargar el comprobante PDF de un documento
// @Tags         documents
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "Número de documento"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/pdf [get]
func (h *DocumentHandler) PDF(c *fiber.Ctx) error {
	id := c.Params("id")
	data, err := h.pdfUC.GeneratePDF(c.Context(), id)
	if err != nil {
		return handleError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+id+`.pdf"`)
	return c.Send(data)
}
