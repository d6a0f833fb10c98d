package repository

import (
	"context"

	"EcommerceBackend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepo struct {
	db *gorm.DB
}

func (r *CartRepo) FindByUser(ctx context.Context, userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Preload("CartItems").
		Preload("CartItems.Product").
		First(&cart, "user_id = ?", userID).
		Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// 只保存購物車本身，商品項目由SaveItem/DeleteItem各自明確保存
func (r *CartRepo) Save(ctx context.Context, cart *models.Cart) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(cart).Error
}

func (r *CartRepo) FindItemByID(ctx context.Context, itemID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).First(&item, itemID).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *CartRepo) SaveItem(ctx context.Context, item *models.CartItem) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(item).Error
}

func (r *CartRepo) DeleteItem(ctx context.Context, item *models.CartItem) error {
	return r.db.WithContext(ctx).Delete(item).Error
}

func (r *CartRepo) DeleteItemsByCart(ctx context.Context, cartID uint) error {
	return r.db.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}
