package controllers

import (
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/ctx"
	"github.com/shashiranjanraj/storefront/pkg/resource"
)

type HomeController struct {
	catalog *services.CatalogService
}

func NewHomeController(catalog *services.CatalogService) *HomeController {
	return &HomeController{catalog: catalog}
}

// Index lists the catalogue.
func (h *HomeController) Index(c *ctx.Context) {
	products, err := h.catalog.ListProducts(c.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(page(c, view{"products": resource.Collection(productResource, products)}))
}
