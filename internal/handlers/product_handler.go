package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Aul-rhmn/merchant-order/internal/httpapi"
	"github.com/Aul-rhmn/merchant-order/internal/service"
)

type ProductHandler struct {
	productService *service.ProductService
}

func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// ListProducts serves the current catalog, remote or fallback. The source
// choice is invisible here; GetSourceStatus exposes it.
func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	products := h.productService.ListProducts(c.Context())
	return httpapi.SuccessResponse(c, "Products retrieved successfully", products)
}

func (h *ProductHandler) GetSourceStatus(c *fiber.Ctx) error {
	status := h.productService.Status(c.Context())
	return httpapi.SuccessResponse(c, "Product source status", status)
}
