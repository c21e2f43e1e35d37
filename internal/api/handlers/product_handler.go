// internal/api/handlers/product_handler.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/stylesense/backend/internal/domain"
	"github.com/stylesense/backend/internal/repository"
	"github.com/stylesense/backend/internal/service"
)

type ProductHandler struct {
	service *service.ProductService
}

func NewProductHandler(service *service.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

type productRequest struct {
	Name        string   `json:"name" binding:"required"`
	Price       float64  `json:"price"`
	Category    string   `json:"category" binding:"required"`
	SubCategory string   `json:"subCategory" binding:"required"`
	Sizes       []string `json:"sizes"`
	Colors      []string `json:"colors"`
	Image       string   `json:"image"`
	Stock       int      `json:"stock"`
	IsTrending  bool     `json:"isTrending"`
}

func (h *ProductHandler) List(c *gin.Context) {
	filter := domain.ProductFilter{
		Category:    strings.TrimSpace(c.Query("category")),
		SubCategory: strings.TrimSpace(c.Query("subCategory")),
	}

	products, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to list products")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to list products"})
		return
	}

	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid product id"})
		return
	}

	product, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "product not found"})
			return
		}
		log.Error().Err(err).Int64("id", id).Msg("failed to get product")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to get product"})
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	product := req.toDomain()
	if err := h.service.Create(c.Request.Context(), product); err != nil {
		if errors.Is(err, service.ErrInvalidProduct) {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		log.Error().Err(err).Msg("failed to create product")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid product id"})
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	product := req.toDomain()
	product.ID = id

	if err := h.service.Update(c.Request.Context(), product); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidProduct):
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "product not found"})
		default:
			log.Error().Err(err).Int64("id", id).Msg("failed to update product")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update product"})
		}
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid product id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "product not found"})
			return
		}
		log.Error().Err(err).Int64("id", id).Msg("failed to delete product")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to delete product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "product removed"})
}

func (r *productRequest) toDomain() *domain.Product {
	return &domain.Product{
		Name:        r.Name,
		Price:       r.Price,
		Category:    r.Category,
		SubCategory: r.SubCategory,
		Sizes:       r.Sizes,
		Colors:      r.Colors,
		Image:       r.Image,
		Stock:       r.Stock,
		IsTrending:  r.IsTrending,
	}
}
