package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/restobar-api/internal/application/dto"
)

// pageParams lee limit/offset del query string con los límites de dto.PageRequest.
func pageParams(c *fiber.Ctx) dto.PageRequest {
	p := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	p.DefaultPage()
	if p.Limit > 100 {
		p.Limit = 100
	}
	return p
}
