package models

import "gorm.io/gorm"

// 一位使用者最多擁有一台購物車
type Cart struct {
	gorm.Model
	UserID    uint       `gorm:"uniqueIndex;not null"`
	CartItems []CartItem `gorm:"foreignKey:CartID"`
}

// 取得購物車內所有商品項目
func (cart *Cart) Items() []CartItem {
	return cart.CartItems
}

// 以商品ID查找購物車內商品項目，找不到則回傳nil
func (cart *Cart) FindItemByProduct(productID uint) *CartItem {
	for i := range cart.CartItems {
		if cart.CartItems[i].ProductID == productID {
			return &cart.CartItems[i]
		}
	}
	return nil
}

// 加入商品項目，呼叫前必須先確認購物車內沒有相同商品
func (cart *Cart) AddItem(item CartItem) {
	cart.CartItems = append(cart.CartItems, item)
}

// 移除商品項目
func (cart *Cart) RemoveItem(itemID uint) {
	for i := range cart.CartItems {
		if cart.CartItems[i].ID == itemID {
			cart.CartItems = append(cart.CartItems[:i], cart.CartItems[i+1:]...)
			return
		}
	}
}
