package http

import (
	"errors"
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/femibot-stock/internal/application/dashboard"
	"github.com/jhoicas/femibot-stock/internal/application/dto"
	"github.com/jhoicas/femibot-stock/internal/domain"
)

// StockHandler expone las vistas del tablero de stock (protegido).
type StockHandler struct {
	uc *dashboard.StockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *dashboard.StockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Inventory godoc
// @Summary      Vista de inventario
// @Description  Búsqueda libre (q) y filtros en cascada: deposito → linea → categoria → producto → medida. Los filtros aceptan el parámetro repetido.
// @Tags         stock
// @Produce      json
// @Security     BearerAuth
// @Param        q          query  string    false  "texto a buscar (sin distinguir mayúsculas)"
// @Param        deposito   query  []string  false  "depósitos"  collectionFormat(multi)
// @Param        linea      query  []string  false  "líneas"     collectionFormat(multi)
// @Param        categoria  query  []string  false  "categorías" collectionFormat(multi)
// @Param        producto   query  []string  false  "productos"  collectionFormat(multi)
// @Param        medida     query  []string  false  "medidas"    collectionFormat(multi)
// @Success      200  {object}  dto.InventoryViewDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/stock/inventory [get]
func (h *StockHandler) Inventory(c *fiber.Ctx) error {
	req, ok, err := parseFilter(c)
	if !ok {
		return err
	}
	out, err := h.uc.Inventory(c.UserContext(), req)
	if err != nil {
		return stockError(c, err)
	}
	return c.JSON(out)
}

// Expirations godoc
// @Summary      Vista de vencimientos
// @Description  Mismos filtros que inventario más estado (all | expiring_soon | expired), umbral en días (1..180) y meses de vencimiento (yyyy-mm).
// @Tags         stock
// @Produce      json
// @Security     BearerAuth
// @Param        q          query  string    false  "texto a buscar"
// @Param        deposito   query  []string  false  "depósitos"  collectionFormat(multi)
// @Param        estado     query  string    false  "all | expiring_soon | expired"
// @Param        dias       query  int       false  "umbral de próximos a vencer (default 30)"
// @Param        mes        query  []string  false  "meses yyyy-mm"  collectionFormat(multi)
// @Success      200  {object}  dto.ExpirationViewDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/stock/expirations [get]
func (h *StockHandler) Expirations(c *fiber.Ctx) error {
	req, ok, err := parseFilter(c)
	if !ok {
		return err
	}
	out, err := h.uc.Expirations(c.UserContext(), req)
	if err != nil {
		return stockError(c, err)
	}
	return c.JSON(out)
}

// ExportInventory godoc
// @Summary      Descargar inventario filtrado
// @Tags         stock
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        format  query  string  false  "xlsx (default) | pdf"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/inventory/export [get]
func (h *StockHandler) ExportInventory(c *fiber.Ctx) error {
	req, ok, err := parseFilter(c)
	if !ok {
		return err
	}
	file, err := h.uc.ExportInventory(c.UserContext(), req)
	if err != nil {
		return stockError(c, err)
	}
	return sendFile(c, file)
}

// ExportExpirations godoc
// @Summary      Descargar vencimientos filtrados
// @Tags         stock
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        format  query  string  false  "xlsx (default) | pdf"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/expirations/export [get]
func (h *StockHandler) ExportExpirations(c *fiber.Ctx) error {
	req, ok, err := parseFilter(c)
	if !ok {
		return err
	}
	file, err := h.uc.ExportExpirations(c.UserContext(), req)
	if err != nil {
		return stockError(c, err)
	}
	return sendFile(c, file)
}

// Source godoc
// @Summary      Archivo de stock vigente
// @Tags         stock
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.SourceInfoDTO
// @Router       /api/stock/source [get]
func (h *StockHandler) Source(c *fiber.Ctx) error {
	out, err := h.uc.SourceInfo(c.UserContext())
	if err != nil {
		return stockError(c, err)
	}
	return c.JSON(out)
}

// Upload godoc
// @Summary      Reemplazar el archivo de stock
// @Description  Solo admin. Acepta csv, xlsx o xls en el campo multipart "file". Si el archivo es ilegible la fuente anterior sigue vigente.
// @Tags         stock
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "archivo de stock"
// @Success      200  {object}  dto.SourceInfoDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/stock/upload [post]
func (h *StockHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "campo multipart 'file' requerido"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "no se pudo leer el archivo"})
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "no se pudo leer el archivo"})
	}
	out, err := h.uc.Upload(c.UserContext(), fh.Filename, data)
	if err != nil {
		return stockError(c, err)
	}
	return c.JSON(out)
}

// Reload godoc
// @Summary      Recargar el archivo de stock
// @Description  Solo admin. Descarta la caché y vuelve a leer la fuente.
// @Tags         stock
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.SourceInfoDTO
// @Router       /api/stock/reload [post]
func (h *StockHandler) Reload(c *fiber.Ctx) error {
	out, err := h.uc.Reload(c.UserContext())
	if err != nil {
		return stockError(c, err)
	}
	return c.JSON(out)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// parseFilter con ok=false la respuesta 400 ya fue escrita y err es el de c.JSON.
func parseFilter(c *fiber.Ctx) (dto.StockFilterRequest, bool, error) {
	var req dto.StockFilterRequest
	if err := c.QueryParser(&req); err != nil {
		return req, false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros de consulta inválidos"})
	}
	return req, true, nil
}

func sendFile(c *fiber.Ctx, file *dto.ExportFile) error {
	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, file.FileName))
	return c.Send(file.Data)
}

// stockError traduce los errores del tablero a respuestas HTTP.
func stockError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrUnsupportedFormat):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrMalformedSource):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "MALFORMED_SOURCE", Message: err.Error()})
	case errors.Is(err, domain.ErrSourceUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "SOURCE_UNAVAILABLE", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
