package repository

import (
	"github.com/velmora/storefront-backend/internal/app/model"
	"github.com/velmora/storefront-backend/pkg/logger"
	"gorm.io/gorm"
)

type ColorRepository interface {
	FindByID(id uint) (*model.ProductColor, error)
	FindByProductID(productID uint) ([]model.ProductColor, error)
	Create(color *model.ProductColor) error
	Update(color *model.ProductColor) error
	Delete(id uint) error
}

type colorRepository struct {
	db *gorm.DB
}

func NewColorRepository(db *gorm.DB) ColorRepository {
	return &colorRepository{db: db}
}

// FindByID loads a color with its images ordered for the picker carousel.
func (r *colorRepository) FindByID(id uint) (*model.ProductColor, error) {
	logger.Debug("Finding product color by ID in database", map[string]interface{}{
		"color_id": id,
	})

	var color model.ProductColor
	err := r.db.
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("product_images.position ASC")
		}).
		First(&color, id).Error
	if err != nil {
		logger.Error("Failed to find product color by ID in database", err, map[string]interface{}{
			"color_id": id,
		})
		return nil, err
	}
	return &color, nil
}

func (r *colorRepository) FindByProductID(productID uint) ([]model.ProductColor, error) {
	var colors []model.ProductColor
	err := r.db.
		Where("product_id = ?", productID).
		Order("id ASC").
		Find(&colors).Error
	if err != nil {
		logger.Error("Failed to find colors by product ID in database", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}
	return colors, nil
}

func (r *colorRepository) Create(color *model.ProductColor) error {
	if err := r.db.Create(color).Error; err != nil {
		logger.Error("Failed to create product color in database", err, map[string]interface{}{
			"product_id": color.ProductID,
			"name":       color.Name,
		})
		return err
	}
	return nil
}

func (r *colorRepository) Update(color *model.ProductColor) error {
	if err := r.db.Save(color).Error; err != nil {
		logger.Error("Failed to update product color in database", err, map[string]interface{}{
			"color_id": color.ID,
		})
		return err
	}
	return nil
}

func (r *colorRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.ProductColor{}, id).Error; err != nil {
		logger.Error("Failed to delete product color from database", err, map[string]interface{}{
			"color_id": id,
		})
		return err
	}
	return nil
}
