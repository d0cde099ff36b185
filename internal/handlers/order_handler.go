package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/Aul-rhmn/merchant-order/internal/domain"
	"github.com/Aul-rhmn/merchant-order/internal/httpapi"
	"github.com/Aul-rhmn/merchant-order/internal/service"
)

type OrderHandler struct {
	orderService *service.OrderService
}

func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	orders := h.orderService.ListOrders()
	return httpapi.SuccessResponse(c, "Orders retrieved successfully", orders)
}

func (h *OrderHandler) GetOrderByID(c *fiber.Ctx) error {
	order, err := h.orderService.GetOrder(c.Params("id"))
	if err != nil {
		return httpapi.NotFoundResponse(c, "Order not found")
	}
	return httpapi.SuccessResponse(c, "Order retrieved successfully", order)
}

func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	var request domain.CreateOrderRequest
	if err := c.BodyParser(&request); err != nil {
		return httpapi.BadRequestResponse(c, "Invalid request body", map[string]interface{}{
			"parse_error": err.Error(),
		})
	}

	order, err := h.orderService.CreateOrder(request)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyOrder):
			return httpapi.BadRequestResponse(c, "At least one item is required", nil)
		case errors.Is(err, domain.ErrInvalidQuantity):
			return httpapi.BadRequestResponse(c, "Invalid quantity", nil)
		case errors.Is(err, domain.ErrInsufficientStock):
			return httpapi.BadRequestResponse(c, "Insufficient stock", map[string]interface{}{
				"reason": err.Error(),
			})
		case errors.Is(err, domain.ErrNotFound):
			return httpapi.BadRequestResponse(c, "Invalid product id in order", map[string]interface{}{
				"reason": err.Error(),
			})
		default:
			log.Printf("Order creation error: %v", err)
			return httpapi.InternalServerErrorResponse(c, "Order creation failed", nil)
		}
	}

	return httpapi.SuccessResponse(c, "Order created successfully", order)
}

func (h *OrderHandler) DeleteOrder(c *fiber.Ctx) error {
	deleted, err := h.orderService.DeleteOrder(c.Params("id"))
	if err != nil {
		log.Printf("Order deletion error: %v", err)
		return httpapi.InternalServerErrorResponse(c, "Order deletion failed", nil)
	}
	if !deleted {
		return httpapi.NotFoundResponse(c, "Order not found")
	}
	return httpapi.SuccessResponse(c, "Order deleted successfully", nil)
}

func (h *OrderHandler) HealthCheck(c *fiber.Ctx) error {
	return httpapi.SuccessResponse(c, "Merchant order service is healthy", map[string]interface{}{
		"service": "merchant-order",
		"status":  "healthy",
	})
}
