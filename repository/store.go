package repository

import (
	"context"

	"EcommerceBackend/services"

	"gorm.io/gorm"
)

// GormStore以gorm實作services.Store
type GormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Users() services.UserRepository {
	return &UserRepo{db: s.db}
}

func (s *GormStore) Products() services.ProductRepository {
	return &ProductRepo{db: s.db}
}

func (s *GormStore) Carts() services.CartRepository {
	return &CartRepo{db: s.db}
}

// InTx內的repository全部綁定同一個資料庫事務
func (s *GormStore) InTx(ctx context.Context, fn func(tx services.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
