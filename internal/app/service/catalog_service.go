package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/velmora/storefront-backend/internal/app/model"
	"github.com/velmora/storefront-backend/internal/app/repository"
	"github.com/velmora/storefront-backend/pkg/logger"
	"github.com/velmora/storefront-backend/pkg/redis"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrColorNotFound   = errors.New("product color not found")
	ErrInvalidPrice    = errors.New("product price must be non-negative")
	ErrInvalidDiscount = errors.New("invalid discount")
	ErrInvalidColor    = errors.New("invalid product color")
)

// colorDataTTL bounds staleness of the cached color payloads; the picker
// hits this on every swatch click.
const colorDataTTL = 10 * time.Minute

// ColorData is the payload behind the color picker: the color's image URLs
// and its available size labels.
type ColorData struct {
	Images []string `json:"images"`
	Sizes  []string `json:"sizes"`
}

type CatalogService interface {
	ListProducts(filter repository.ProductFilter) ([]model.Product, error)
	GetProduct(id uint) (*model.Product, error)
	GetColor(id uint) (*model.ProductColor, error)
	GetColorData(ctx context.Context, colorID uint) (*ColorData, error)
	CreateProduct(product *model.Product) error
	UpdateProduct(product *model.Product) error
	DeleteProduct(id uint) error
	MediaURL(path string) string
}

type catalogService struct {
	productRepo  repository.ProductRepository
	colorRepo    repository.ColorRepository
	mediaBaseURL string
}

func NewCatalogService(
	productRepo repository.ProductRepository,
	colorRepo repository.ColorRepository,
	mediaBaseURL string,
) CatalogService {
	return &catalogService{
		productRepo:  productRepo,
		colorRepo:    colorRepo,
		mediaBaseURL: strings.TrimSuffix(mediaBaseURL, "/"),
	}
}

func (s *catalogService) ListProducts(filter repository.ProductFilter) ([]model.Product, error) {
	logger.Debug("Listing products", map[string]interface{}{
		"category": filter.Category,
		"search":   filter.Search,
		"limit":    filter.Limit,
		"offset":   filter.Offset,
	})

	products, err := s.productRepo.FindWithFilter(filter)
	if err != nil {
		logger.Error("Failed to list products", err)
		return nil, err
	}
	return products, nil
}

func (s *catalogService) GetProduct(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Product not found", map[string]interface{}{
				"product_id": id,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	return product, nil
}

func (s *catalogService) GetColor(id uint) (*model.ProductColor, error) {
	color, err := s.colorRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Product color not found", map[string]interface{}{
				"color_id": id,
			})
			return nil, ErrColorNotFound
		}
		logger.Error("Failed to fetch product color", err, map[string]interface{}{
			"color_id": id,
		})
		return nil, err
	}
	return color, nil
}

// GetColorData returns the picker payload for a color, served from cache
// when possible.
func (s *catalogService) GetColorData(ctx context.Context, colorID uint) (*ColorData, error) {
	cacheKey := colorCacheKey(colorID)

	var cached ColorData
	if err := redis.GetJSON(ctx, cacheKey, &cached); err == nil {
		logger.Debug("Color data served from cache", map[string]interface{}{
			"color_id": colorID,
		})
		return &cached, nil
	}

	color, err := s.GetColor(colorID)
	if err != nil {
		return nil, err
	}

	data := &ColorData{
		Images: make([]string, 0, len(color.Images)),
		Sizes:  color.SizeList(),
	}
	for _, img := range color.Images {
		data.Images = append(data.Images, s.MediaURL(img.Path))
	}

	if err := redis.SetJSON(ctx, cacheKey, data, colorDataTTL); err != nil {
		logger.Warn("Failed to cache color data", map[string]interface{}{
			"color_id": colorID,
			"error":    err.Error(),
		})
	}

	return data, nil
}

func (s *catalogService) CreateProduct(product *model.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}

	logger.Info("Creating product", map[string]interface{}{
		"name":  product.Name,
		"price": product.Price,
	})

	return s.productRepo.Create(product)
}

func (s *catalogService) UpdateProduct(product *model.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}

	logger.Info("Updating product", map[string]interface{}{
		"product_id": product.ID,
	})

	if err := s.productRepo.Update(product); err != nil {
		return err
	}

	// Edits change prices, images, and sizes, so cached color payloads for
	// this product must go.
	s.invalidateColorCache(product)
	return nil
}

func (s *catalogService) DeleteProduct(id uint) error {
	logger.Info("Deleting product", map[string]interface{}{
		"product_id": id,
	})

	product, err := s.GetProduct(id)
	if err != nil {
		return err
	}

	if err := s.productRepo.Delete(id); err != nil {
		return err
	}

	s.invalidateColorCache(product)
	return nil
}

// MediaURL resolves a stored media path against the configured CDN/S3 base.
func (s *catalogService) MediaURL(path string) string {
	if path == "" || s.mediaBaseURL == "" || strings.HasPrefix(path, "http") {
		return path
	}
	return s.mediaBaseURL + "/" + strings.TrimPrefix(path, "/")
}

func (s *catalogService) invalidateColorCache(product *model.Product) {
	if len(product.Colors) == 0 {
		return
	}

	keys := make([]string, 0, len(product.Colors))
	for _, color := range product.Colors {
		keys = append(keys, colorCacheKey(color.ID))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := redis.Invalidate(ctx, keys...); err != nil {
		logger.Warn("Failed to invalidate color cache", map[string]interface{}{
			"product_id": product.ID,
			"error":      err.Error(),
		})
	}
}

func colorCacheKey(colorID uint) string {
	return fmt.Sprintf("catalog:color:%d", colorID)
}

// validateProduct enforces the catalog invariants: non-negative prices,
// percentage discounts within [0,100], and non-negative color extras.
func validateProduct(product *model.Product) error {
	if product.Price < 0 {
		return ErrInvalidPrice
	}

	if product.Discount != nil {
		d := product.Discount
		if d.Value < 0 {
			return ErrInvalidDiscount
		}
		if d.Kind == model.DiscountPercentage && d.Value > 100 {
			return ErrInvalidDiscount
		}
	}

	for _, color := range product.Colors {
		if color.ExtraPrice < 0 {
			return ErrInvalidColor
		}
	}

	return nil
}
