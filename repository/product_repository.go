package repository

import (
	"context"

	"EcommerceBackend/models"

	"gorm.io/gorm"
)

type ProductRepo struct {
	db *gorm.DB
}

func (r *ProductRepo) FindByID(ctx context.Context, productID uint) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).First(&product, productID).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}
