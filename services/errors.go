package services

import "errors"

// 購物車指令的錯誤分類，呼叫端以errors.Is判斷種類
var (
	//使用者身分無法解析
	ErrUserNotFound = errors.New("找不到此使用者")
	//商品不存在
	ErrProductNotFound = errors.New("找不到此商品")
	//購物車商品項目不存在
	ErrItemNotFound = errors.New("找不到此購物車商品")
	//商品項目屬於其他使用者的購物車，不透露該項目是否存在
	ErrOwnershipViolation = errors.New("沒有權限操作此購物車商品")
	//數量必須為正整數
	ErrInvalidQuantity = errors.New("商品數量必須大於0")
)
