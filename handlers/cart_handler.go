package handlers

import (
	"EcommerceBackend/models"
	"EcommerceBackend/services"
	"errors"
	"github.com/gin-gonic/gin"
	"net/http"
	"strconv"
)

// 將服務層錯誤分類對應至HTTP狀態碼
func cartErrorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidQuantity):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrOwnershipViolation):
		return http.StatusForbidden
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrItemNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// 組合購物車回應資料
func cartData(cart *models.Cart) gin.H {
	cartItemsData := make([]gin.H, 0, len(cart.Items()))
	for _, cartItem := range cart.Items() {
		cartItemsData = append(cartItemsData, gin.H{
			"ItemID":    cartItem.ID,
			"ProductID": cartItem.ProductID,
			"Name":      cartItem.Product.Name,
			"Price":     cartItem.Product.Price,
			"ImageURL":  cartItem.Product.ImageURL,
			"Quantity":  cartItem.Quantity,
		})
	}

	return gin.H{
		"CartID":    cart.ID,
		"CartItems": cartItemsData,
	}
}

// 從Context取得登入的使用者ID
func getAuthenticatedUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get("UserID")
	if !exists {
		return 0, false
	}
	id, ok := userID.(uint)
	return id, ok
}

// 查詢購物車商品，使用者尚未擁有購物車則自動建立
func GetCartHandler(c *gin.Context, cartService *services.CartService) {
	userID, ok := getAuthenticatedUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "無法取得使用者ID",
		})
		return
	}

	cart, err := cartService.GetCart(c, userID)
	if err != nil {
		c.JSON(cartErrorStatus(err), gin.H{
			"message": "查詢購物車失敗",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "成功查詢購物車",
		"cart":    cartData(cart),
	})
}

// 新增商品至購物車，購物車已有相同商品則合併數量
func AddToCartHandler(c *gin.Context, cartService *services.CartService) {
	var cartItemReq struct {
		ProductID uint `json:"productID" binding:"required"`
		Quantity  int  `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&cartItemReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "綁定請求資料錯誤",
			"error":   err.Error(),
		})
		return
	}

	userID, ok := getAuthenticatedUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "無法取得使用者ID",
		})
		return
	}

	cart, err := cartService.AddItem(c, userID, cartItemReq.ProductID, cartItemReq.Quantity)
	if err != nil {
		c.JSON(cartErrorStatus(err), gin.H{
			"message": "新增物品至購物車失敗",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "成功新增物品至購物車",
		"cart":    cartData(cart),
	})
}

// 更新購物車商品數量，數量小於等於0視同刪除此商品
func UpdateCartItemQuantityHandler(c *gin.Context, cartService *services.CartService) {
	itemID, err := strconv.ParseUint(c.Param("itemID"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "商品項目ID輸入錯誤",
			"error":   err.Error(),
		})
		return
	}

	var cartItemReq struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&cartItemReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "綁定請求資料錯誤",
			"error":   err.Error(),
		})
		return
	}

	userID, ok := getAuthenticatedUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "無法取得使用者ID",
		})
		return
	}

	cart, err := cartService.UpdateQuantity(c, userID, uint(itemID), cartItemReq.Quantity)
	if err != nil {
		c.JSON(cartErrorStatus(err), gin.H{
			"message": "更新購物車物品數量失敗",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "成功更新購物車物品數量",
		"cart":    cartData(cart),
	})
}

// 刪除購物車商品
func DeleteCartItemHandler(c *gin.Context, cartService *services.CartService) {
	itemID, err := strconv.ParseUint(c.Param("itemID"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "商品項目ID輸入錯誤",
			"error":   err.Error(),
		})
		return
	}

	userID, ok := getAuthenticatedUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "無法取得使用者ID",
		})
		return
	}

	cart, err := cartService.RemoveItem(c, userID, uint(itemID))
	if err != nil {
		c.JSON(cartErrorStatus(err), gin.H{
			"message": "刪除購物車物品失敗",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "成功刪除購物車物品",
		"cart":    cartData(cart),
	})
}

// 清空購物車，購物車本身保留
func ClearCartHandler(c *gin.Context, cartService *services.CartService) {
	userID, ok := getAuthenticatedUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "無法取得使用者ID",
		})
		return
	}

	cart, err := cartService.ClearCart(c, userID)
	if err != nil {
		c.JSON(cartErrorStatus(err), gin.H{
			"message": "清空購物車失敗",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "成功清空購物車",
		"cart":    cartData(cart),
	})
}
