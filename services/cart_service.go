package services

import (
	"context"
	"errors"

	"EcommerceBackend/models"

	"gorm.io/gorm"
)

// CartService負責購物車的所有狀態變更
// 每個指令流程：解析使用者 → 讀取或建立購物車 → 解析目標項目 → 檢查擁有權 → 套用變更 → 保存 → 回傳購物車
// 同一位使用者的指令以鎖依序執行，每個指令在單一事務內完成
type CartService struct {
	store Store
	locks *userLocks
}

func NewCartService(store Store) *CartService {
	return &CartService{
		store: store,
		locks: newUserLocks(),
	}
}

// 解析使用者身分
func (s *CartService) resolveUser(ctx context.Context, tx Store, userID uint) (*models.User, error) {
	user, err := tx.Users().FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// 讀取使用者的購物車，尚未建立則建立一台空購物車並保存
func (s *CartService) loadOrCreateCart(ctx context.Context, tx Store, userID uint) (*models.Cart, error) {
	cart, err := tx.Carts().FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			newCart := &models.Cart{UserID: userID}
			if err := tx.Carts().Save(ctx, newCart); err != nil {
				return nil, err
			}
			return newCart, nil
		}
		return nil, err
	}
	return cart, nil
}

// 解析商品項目並檢查是否屬於此購物車
// 項目存在但屬於其他購物車時回傳ErrOwnershipViolation，不透露項目是否存在於別人的購物車
func (s *CartService) loadOwnedItem(ctx context.Context, tx Store, cart *models.Cart, itemID uint) (*models.CartItem, error) {
	item, err := tx.Carts().FindItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	if item.CartID != cart.ID {
		return nil, ErrOwnershipViolation
	}
	return item, nil
}

// 查詢購物車，使用者尚未擁有購物車則建立一台空購物車
func (s *CartService) GetCart(ctx context.Context, userID uint) (*models.Cart, error) {
	unlock := s.locks.lock(userID)
	defer unlock()

	var cart *models.Cart
	err := s.store.InTx(ctx, func(tx Store) error {
		user, err := s.resolveUser(ctx, tx, userID)
		if err != nil {
			return err
		}

		cart, err = s.loadOrCreateCart(ctx, tx, user.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// 加入商品至購物車，購物車內已有相同商品則合併數量
func (s *CartService) AddItem(ctx context.Context, userID uint, productID uint, quantity int) (*models.Cart, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	unlock := s.locks.lock(userID)
	defer unlock()

	var cart *models.Cart
	err := s.store.InTx(ctx, func(tx Store) error {
		user, err := s.resolveUser(ctx, tx, userID)
		if err != nil {
			return err
		}

		cart, err = s.loadOrCreateCart(ctx, tx, user.ID)
		if err != nil {
			return err
		}

		_, err = tx.Products().FindByID(ctx, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		//購物車內已有相同商品則合併數量，否則新增項目
		if item := cart.FindItemByProduct(productID); item != nil {
			item.Quantity += quantity
			if err := tx.Carts().SaveItem(ctx, item); err != nil {
				return err
			}
		} else {
			newItem := models.CartItem{
				CartID:    cart.ID,
				ProductID: productID,
				Quantity:  quantity,
			}
			if err := tx.Carts().SaveItem(ctx, &newItem); err != nil {
				return err
			}
			cart.AddItem(newItem)
		}

		if err := tx.Carts().Save(ctx, cart); err != nil {
			return err
		}

		cart, err = tx.Carts().FindByUser(ctx, user.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// 更新購物車商品數量，數量小於等於0視同移除此商品
func (s *CartService) UpdateQuantity(ctx context.Context, userID uint, itemID uint, quantity int) (*models.Cart, error) {
	unlock := s.locks.lock(userID)
	defer unlock()

	//數量歸零即移除，負數視同歸零
	if quantity <= 0 {
		return s.removeItem(ctx, userID, itemID)
	}

	var cart *models.Cart
	err := s.store.InTx(ctx, func(tx Store) error {
		user, err := s.resolveUser(ctx, tx, userID)
		if err != nil {
			return err
		}

		cart, err = s.loadOrCreateCart(ctx, tx, user.ID)
		if err != nil {
			return err
		}

		item, err := s.loadOwnedItem(ctx, tx, cart, itemID)
		if err != nil {
			return err
		}

		item.Quantity = quantity
		if err := tx.Carts().SaveItem(ctx, item); err != nil {
			return err
		}

		cart, err = tx.Carts().FindByUser(ctx, user.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// 移除購物車商品，重複移除同一項目第二次會回傳ErrItemNotFound
func (s *CartService) RemoveItem(ctx context.Context, userID uint, itemID uint) (*models.Cart, error) {
	unlock := s.locks.lock(userID)
	defer unlock()

	return s.removeItem(ctx, userID, itemID)
}

// 移除商品的實際流程，呼叫前必須已取得使用者的鎖
func (s *CartService) removeItem(ctx context.Context, userID uint, itemID uint) (*models.Cart, error) {
	var cart *models.Cart
	err := s.store.InTx(ctx, func(tx Store) error {
		user, err := s.resolveUser(ctx, tx, userID)
		if err != nil {
			return err
		}

		cart, err = s.loadOrCreateCart(ctx, tx, user.ID)
		if err != nil {
			return err
		}

		item, err := s.loadOwnedItem(ctx, tx, cart, itemID)
		if err != nil {
			return err
		}

		if err := tx.Carts().DeleteItem(ctx, item); err != nil {
			return err
		}
		cart.RemoveItem(item.ID)

		if err := tx.Carts().Save(ctx, cart); err != nil {
			return err
		}

		cart, err = tx.Carts().FindByUser(ctx, user.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// 清空購物車內所有商品，購物車本身保留
func (s *CartService) ClearCart(ctx context.Context, userID uint) (*models.Cart, error) {
	unlock := s.locks.lock(userID)
	defer unlock()

	var cart *models.Cart
	err := s.store.InTx(ctx, func(tx Store) error {
		user, err := s.resolveUser(ctx, tx, userID)
		if err != nil {
			return err
		}

		cart, err = s.loadOrCreateCart(ctx, tx, user.ID)
		if err != nil {
			return err
		}

		if err := tx.Carts().DeleteItemsByCart(ctx, cart.ID); err != nil {
			return err
		}

		if err := tx.Carts().Save(ctx, cart); err != nil {
			return err
		}

		cart, err = tx.Carts().FindByUser(ctx, user.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}
