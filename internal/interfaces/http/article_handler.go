package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/restobar-api/internal/application/dto"
	"github.com/jhoicas/restobar-api/internal/application/usecase"
)

// ArticleHandler maneja el catálogo de artículos y la composición de kits.
type ArticleHandler struct {
	uc *usecase.ArticleUseCase
}

// NewArticleHandler construye el handler.
func NewArticleHandler(uc *usecase.ArticleUseCase) *ArticleHandler {
	return &ArticleHandler{uc: uc}
}

// Create godoc
// @Summary      Crear artículo
// @Description  El código se normaliza (mayúsculas, sin tildes). conversion_factor vacío = 1.
// @Tags         articles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateArticleRequest  true  "Datos del artículo"
// @Success      201   {object}  dto.ArticleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/articles [post]
func (h *ArticleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateArticleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByCode godoc
// @Summary      Obtener artículo por código
// @Tags         articles
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "Código del artículo"
// @Success      200  {object}  dto.ArticleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/articles/{code} [get]
func (h *ArticleHandler) GetByCode(c *fiber.Ctx) error {
	out, err := h.uc.GetByCode(c.UserContext(), c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar artículos
// @Tags         articles
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.ArticleListResponse
// @Router       /api/articles [get]
func (h *ArticleHandler) List(c *fiber.Ctx) error {
	p := pageParams(c)
	out, err := h.uc.List(c.UserContext(), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar artículo
// @Tags         articles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        code  path  string                    true  "Código del artículo"
// @Param        body  body  dto.UpdateArticleRequest  true  "Campos a cambiar"
// @Success      200  {object}  dto.ArticleResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/articles/{code} [put]
func (h *ArticleHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateArticleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("code"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Components godoc
// @Summary      Componentes de un kit
// @Tags         articles
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "Código del kit"
// @Success      200  {object}  dto.KitResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/articles/{code}/components [get]
func (h *ArticleHandler) Components(c *fiber.Ctx) error {
	out, err := h.uc.Components(c.UserContext(), c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ReplaceComponents godoc
// @Summary      Reemplazar componentes de un kit
// @Description  Los componentes deben ser artículos simples. El kardex histórico no cambia.
// @Tags         articles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        code  path  string                           true  "Código del kit"
// @Param        body  body  dto.ReplaceKitComponentsRequest  true  "Nueva definición"
// @Success      200  {object}  dto.KitResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/articles/{code}/components [put]
func (h *ArticleHandler) ReplaceComponents(c *fiber.Ctx) error {
	var in dto.ReplaceKitComponentsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ReplaceComponents(c.UserContext(), c.Params("code"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
