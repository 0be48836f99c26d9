package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/restobar-api/internal/application/dto"
	"github.com/jhoicas/restobar-api/internal/application/inventory"
	"github.com/jhoicas/restobar-api/internal/domain"
	"github.com/jhoicas/restobar-api/internal/domain/entity"
)

// InventoryHandler maneja transacciones de inventario, kardex y existencias.
type InventoryHandler struct {
	movements *inventory.RegisterMovementUseCase
	kardex    *inventory.KardexUseCase
	stock     *inventory.StockUseCase
	html      inventory.KardexRenderer
	pdf       inventory.KardexRenderer
}

// NewInventoryHandler construye el handler. html y pdf pueden ser nil; ese formato queda deshabilitado.
func NewInventoryHandler(
	movements *inventory.RegisterMovementUseCase,
	kardex *inventory.KardexUseCase,
	stock *inventory.StockUseCase,
	html, pdf inventory.KardexRenderer,
) *InventoryHandler {
	return &InventoryHandler{movements: movements, kardex: kardex, stock: stock, html: html, pdf: pdf}
}

// Purchases godoc
// @Summary      Registrar compra
// @Description  Entrada a bodega. unit_cost por unidad capturada actualiza el costo promedio.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InventoryTransactionRequest  true  "Cabecera y líneas"
// @Success      201   {object}  dto.InventoryTransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/purchases [post]
func (h *InventoryHandler) Purchases(c *fiber.Ctx) error {
	return h.register(c, entity.TransactionTypePurchase)
}

// Consumptions godoc
// @Summary      Registrar consumo
// @Description  Salida de bodega. Los kits se expanden en sus componentes.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InventoryTransactionRequest  true  "Cabecera y líneas"
// @Success      201   {object}  dto.InventoryTransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/inventory/consumptions [post]
func (h *InventoryHandler) Consumptions(c *fiber.Ctx) error {
	return h.register(c, entity.TransactionTypeConsumption)
}

// Adjustments godoc
// @Summary      Registrar ajuste por conteo físico
// @Description  Cantidad con signo: positiva suma, negativa resta.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InventoryTransactionRequest  true  "Cabecera y líneas"
// @Success      201   {object}  dto.InventoryTransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) Adjustments(c *fiber.Ctx) error {
	return h.register(c, entity.TransactionTypeAdjustment)
}

// Transfers godoc
// @Summary      Registrar traslado entre bodegas
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InventoryTransactionRequest  true  "Incluye to_warehouse_code"
// @Success      201   {object}  dto.InventoryTransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/inventory/transfers [post]
func (h *InventoryHandler) Transfers(c *fiber.Ctx) error {
	return h.register(c, entity.TransactionTypeTransfer)
}

func (h *InventoryHandler) register(c *fiber.Ctx, txType string) error {
	var in dto.InventoryTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.movements.RegisterFromRequest(c.UserContext(), GetUserID(c), txType, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Kardex godoc
// @Summary      Consultar kardex
// @Description  Filas agrupadas por (artículo, bodega) en orden cronológico. format=html|pdf para imprimir.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Produce      html
// @Produce      application/pdf
// @Param        from            query  string  false  "YYYY-MM-DD o RFC3339. Default: 30 días antes de to."
// @Param        to              query  string  false  "YYYY-MM-DD (inclusivo) o RFC3339. Default: ahora."
// @Param        article         query  string  false  "Códigos de artículo separados por coma"
// @Param        warehouse_code  query  string  false  "Códigos de bodega separados por coma"
// @Param        format          query  string  false  "json (default), html o pdf"
// @Success      200  {object}  dto.KardexResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/kardex [get]
func (h *InventoryHandler) Kardex(c *fiber.Ctx) error {
	report, err := h.kardex.Query(c.UserContext(), inventory.KardexQuery{
		From:           c.Query("from"),
		To:             c.Query("to"),
		ArticleCodes:   splitList(c.Query("article")),
		WarehouseCodes: splitList(c.Query("warehouse_code")),
	})
	if err != nil {
		return respondError(c, err)
	}

	switch strings.ToLower(c.Query("format", "json")) {
	case "json":
		return c.JSON(report.Response())
	case "html":
		return h.render(c, h.html, report, fiber.MIMETextHTMLCharsetUTF8)
	case "pdf":
		c.Set(fiber.HeaderContentDisposition, `inline; filename="kardex.pdf"`)
		return h.render(c, h.pdf, report, "application/pdf")
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "format debe ser json, html o pdf"})
	}
}

func (h *InventoryHandler) render(c *fiber.Ctx, r inventory.KardexRenderer, report *inventory.KardexReport, contentType string) error {
	if r == nil {
		return respondError(c, domain.ErrReportUnavailable)
	}
	body, err := r.RenderKardex(c.UserContext(), report)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, contentType)
	return c.Send(body)
}

// Stock godoc
// @Summary      Existencias actuales
// @Description  Saldo por (artículo, bodega) según la última fila del kardex, valorizado al costo promedio.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        warehouse_code  query  string  false  "Códigos de bodega separados por coma"
// @Param        include_zero    query  bool    false  "Incluir saldos en cero"
// @Success      200  {object}  dto.StockResponse
// @Router       /api/inventory/stock [get]
func (h *InventoryHandler) Stock(c *fiber.Ctx) error {
	out, err := h.stock.Current(c.UserContext(), splitList(c.Query("warehouse_code")), c.QueryBool("include_zero", false))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// splitList separa "a,b, c" en ["a","b","c"] ignorando vacíos.
func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
