package models

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCartFindItemByProduct(t *testing.T) {
	cart := Cart{
		CartItems: []CartItem{
			{Model: gorm.Model{ID: 1}, ProductID: 10, Quantity: 2},
			{Model: gorm.Model{ID: 2}, ProductID: 20, Quantity: 1},
		},
	}

	item := cart.FindItemByProduct(20)
	require.NotNil(t, item)
	require.EqualValues(t, 2, item.ID)

	require.Nil(t, cart.FindItemByProduct(99))

	//回傳的是指標，修改會反映在購物車上
	item.Quantity = 9
	require.Equal(t, 9, cart.CartItems[1].Quantity)
}

func TestCartAddAndRemoveItem(t *testing.T) {
	var cart Cart
	cart.AddItem(CartItem{Model: gorm.Model{ID: 1}, ProductID: 10, Quantity: 1})
	cart.AddItem(CartItem{Model: gorm.Model{ID: 2}, ProductID: 20, Quantity: 2})
	require.Len(t, cart.Items(), 2)

	cart.RemoveItem(1)
	require.Len(t, cart.Items(), 1)
	require.EqualValues(t, 2, cart.Items()[0].ID)

	//移除不存在的項目不會改變內容
	cart.RemoveItem(99)
	require.Len(t, cart.Items(), 1)
}
