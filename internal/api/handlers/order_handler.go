// internal/api/handlers/order_handler.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/stylesense/backend/internal/api/middleware"
	"github.com/stylesense/backend/internal/domain"
	"github.com/stylesense/backend/internal/repository"
	"github.com/stylesense/backend/internal/service"
)

type OrderHandler struct {
	service *service.OrderService
}

func NewOrderHandler(service *service.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

type createOrderRequest struct {
	Items []struct {
		ProductID int64   `json:"product_id" binding:"required"`
		Size      string  `json:"size"`
		Color     string  `json:"color"`
		Quantity  int     `json:"quantity" binding:"required"`
		Price     float64 `json:"price" binding:"required"`
	} `json:"items" binding:"required"`
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, domain.OrderItem{
			ProductID: item.ProductID,
			Size:      item.Size,
			Color:     item.Color,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	order, err := h.service.Create(c.Request.Context(), middleware.UserID(c), items)
	if err != nil {
		if errors.Is(err, service.ErrEmptyOrder) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "No items in order"})
			return
		}
		log.Error().Err(err).Msg("failed to create order")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create order"})
		return
	}

	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.service.List(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list orders")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to list orders"})
		return
	}

	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid order id"})
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	order, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownStatus):
			c.JSON(http.StatusBadRequest, gin.H{"message": "unknown order status"})
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
		default:
			log.Error().Err(err).Int64("id", id).Msg("failed to update order status")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update order status"})
		}
		return
	}

	c.JSON(http.StatusOK, order)
}
