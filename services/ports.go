package services

import (
	"context"

	"EcommerceBackend/models"
)

type UserRepository interface {
	FindByID(ctx context.Context, userID uint) (*models.User, error)
}

type ProductRepository interface {
	FindByID(ctx context.Context, productID uint) (*models.Product, error)
}

// 查無資料時回傳gorm.ErrRecordNotFound
type CartRepository interface {
	FindByUser(ctx context.Context, userID uint) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
	FindItemByID(ctx context.Context, itemID uint) (*models.CartItem, error)
	SaveItem(ctx context.Context, item *models.CartItem) error
	DeleteItem(ctx context.Context, item *models.CartItem) error
	DeleteItemsByCart(ctx context.Context, cartID uint) error
}

// Store集中管理資料存取，InTx內的repository全部綁定同一個事務
type Store interface {
	Users() UserRepository
	Products() ProductRepository
	Carts() CartRepository
	InTx(ctx context.Context, fn func(tx Store) error) error
}
