package models

import "gorm.io/gorm"

// 只保存所屬購物車的CartID，不保留Cart實體避免循環引用
// Quantity必為正整數，數量歸零的項目直接刪除不保存
type CartItem struct {
	gorm.Model
	CartID    uint `gorm:"index;not null"`
	ProductID uint `gorm:"not null"`
	Product   Product
	Quantity  int `gorm:"not null"`
}
