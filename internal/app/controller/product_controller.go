package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/velmora/storefront-backend/internal/app/model"
	"github.com/velmora/storefront-backend/internal/app/repository"
	"github.com/velmora/storefront-backend/internal/app/service"
	apperrors "github.com/velmora/storefront-backend/internal/errors"
	"github.com/velmora/storefront-backend/internal/middleware"
)

type ProductController struct {
	catalogService service.CatalogService
}

func NewProductController(catalogService service.CatalogService) *ProductController {
	return &ProductController{
		catalogService: catalogService,
	}
}

type ProductColorRequest struct {
	Name       string   `json:"name" binding:"required"`
	Code       string   `json:"code"`
	ExtraPrice float64  `json:"extra_price" binding:"gte=0"`
	Sizes      []string `json:"sizes" binding:"required,min=1"`
}

type CreateProductRequest struct {
	Name        string                `json:"name" binding:"required"`
	Description string                `json:"description"`
	Price       float64               `json:"price" binding:"required,gt=0"`
	Category    string                `json:"category" binding:"required"`
	DiscountID  *uint                 `json:"discount_id"`
	Colors      []ProductColorRequest `json:"colors" binding:"required,min=1"`
}

type UpdateProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"gte=0"`
	Category    string  `json:"category"`
	DiscountID  *uint   `json:"discount_id"`
}

// ListProducts returns the catalog, optionally filtered
// GET /api/v1/products
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filter := repository.ProductFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "0")); err == nil {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(c.DefaultQuery("offset", "0")); err == nil {
		filter.Offset = offset
	}
	switch c.Query("sort") {
	case "price":
		filter.SortBy = repository.ProductSortPrice
		filter.SortAscending = c.Query("order") != "desc"
	case "name":
		filter.SortBy = repository.ProductSortName
		filter.SortAscending = true
	}

	products, err := ctrl.catalogService.ListProducts(filter)
	if err != nil {
		log.Error("Failed to fetch products", err, nil)
		apperrors.InternalError(c, "Failed to fetch products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"products": products,
		"count":    len(products),
	})
}

// GetProduct returns a product with colors, media and discount
// GET /api/v1/products/:id
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := ctrl.catalogService.GetProduct(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"product": product,
	})
}

// GetColorData returns the picker payload for one color
// GET /api/v1/catalog/colors/:id
func (ctrl *ProductController) GetColorData(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	data, err := ctrl.catalogService.GetColorData(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrColorNotFound) {
			apperrors.NotFound(c, apperrors.ProductColorNotFound, "Color not found")
			return
		}
		log.Error("Failed to fetch color data", err, map[string]interface{}{
			"color_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"images":  data.Images,
		"sizes":   data.Sizes,
	})
}

// CreateProduct creates a product with its color variants (Admin only)
// POST /api/v1/products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid create product request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	product := &model.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		DiscountID:  req.DiscountID,
	}
	for _, cr := range req.Colors {
		color := model.ProductColor{
			Name:       cr.Name,
			Code:       cr.Code,
			ExtraPrice: cr.ExtraPrice,
		}
		color.SetSizeList(cr.Sizes)
		product.Colors = append(product.Colors, color)
	}

	if err := ctrl.catalogService.CreateProduct(product); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPrice), errors.Is(err, service.ErrInvalidDiscount):
			apperrors.BadRequest(c, apperrors.ProductInvalidPrice, "Invalid price or discount")
		case errors.Is(err, service.ErrInvalidColor):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid color variant")
		default:
			log.Error("Failed to create product", err, map[string]interface{}{
				"name": req.Name,
			})
			apperrors.InternalError(c, "Failed to create product")
		}
		return
	}

	log.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"product": product,
	})
}

// UpdateProduct updates product fields (Admin only)
// PUT /api/v1/products/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := ctrl.catalogService.GetProduct(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	if req.Name != "" {
		product.Name = req.Name
	}
	if req.Description != "" {
		product.Description = req.Description
	}
	if req.Price > 0 {
		product.Price = req.Price
	}
	if req.Category != "" {
		product.Category = req.Category
	}
	if req.DiscountID != nil {
		product.DiscountID = req.DiscountID
	}

	if err := ctrl.catalogService.UpdateProduct(product); err != nil {
		log.Error("Failed to update product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.InternalError(c, "Failed to update product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"product": product,
	})
}

// DeleteProduct removes a product from the catalog (Admin only)
// DELETE /api/v1/products/:id
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.catalogService.DeleteProduct(id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.InternalError(c, "Failed to delete product")
		return
	}

	log.Info("Product deleted", map[string]interface{}{
		"product_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}
