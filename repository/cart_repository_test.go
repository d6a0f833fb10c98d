package repository_test

import (
	"context"
	"errors"
	"testing"

	"EcommerceBackend/models"
	"EcommerceBackend/repository"
	"EcommerceBackend/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) (*repository.GormStore, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
	)
	require.NoError(t, err)

	return repository.NewStore(db), db
}

func TestCartSaveAssignsID(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	cart := &models.Cart{UserID: 1}
	require.NoError(t, store.Carts().Save(ctx, cart))
	require.NotZero(t, cart.ID)

	//重複保存不會變更ID
	firstID := cart.ID
	require.NoError(t, store.Carts().Save(ctx, cart))
	require.Equal(t, firstID, cart.ID)
}

func TestCartFindByUserPreloadsItems(t *testing.T) {
	store, db := newTestStore(t)
	ctx := context.Background()

	product := models.Product{Name: "鍵盤", Price: decimal.NewFromInt(100), Stock: 5}
	require.NoError(t, db.Create(&product).Error)

	cart := &models.Cart{UserID: 1}
	require.NoError(t, store.Carts().Save(ctx, cart))
	item := &models.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: 2}
	require.NoError(t, store.Carts().SaveItem(ctx, item))

	loaded, err := store.Carts().FindByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, loaded.Items(), 1)
	require.Equal(t, "鍵盤", loaded.Items()[0].Product.Name)
	require.Equal(t, 2, loaded.Items()[0].Quantity)
}

func TestCartFindByUserAbsent(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Carts().FindByUser(context.Background(), 42)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

// 保存購物車不會連帶保存商品項目，項目必須各自明確保存
func TestCartSaveDoesNotCascadeItems(t *testing.T) {
	store, db := newTestStore(t)
	ctx := context.Background()

	cart := &models.Cart{UserID: 1}
	require.NoError(t, store.Carts().Save(ctx, cart))
	cart.AddItem(models.CartItem{CartID: cart.ID, ProductID: 1, Quantity: 1})
	require.NoError(t, store.Carts().Save(ctx, cart))

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Count(&count).Error)
	require.EqualValues(t, 0, count)
}

func TestDeleteItemThenFindFails(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	cart := &models.Cart{UserID: 1}
	require.NoError(t, store.Carts().Save(ctx, cart))
	item := &models.CartItem{CartID: cart.ID, ProductID: 1, Quantity: 1}
	require.NoError(t, store.Carts().SaveItem(ctx, item))

	require.NoError(t, store.Carts().DeleteItem(ctx, item))
	_, err := store.Carts().FindItemByID(ctx, item.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteItemsByCart(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	cart := &models.Cart{UserID: 1}
	require.NoError(t, store.Carts().Save(ctx, cart))
	require.NoError(t, store.Carts().SaveItem(ctx, &models.CartItem{CartID: cart.ID, ProductID: 1, Quantity: 1}))
	require.NoError(t, store.Carts().SaveItem(ctx, &models.CartItem{CartID: cart.ID, ProductID: 2, Quantity: 2}))

	//另一台購物車的項目不受影響
	otherCart := &models.Cart{UserID: 2}
	require.NoError(t, store.Carts().Save(ctx, otherCart))
	otherItem := &models.CartItem{CartID: otherCart.ID, ProductID: 1, Quantity: 3}
	require.NoError(t, store.Carts().SaveItem(ctx, otherItem))

	require.NoError(t, store.Carts().DeleteItemsByCart(ctx, cart.ID))

	loaded, err := store.Carts().FindByUser(ctx, 1)
	require.NoError(t, err)
	require.Empty(t, loaded.Items())

	otherLoaded, err := store.Carts().FindByUser(ctx, 2)
	require.NoError(t, err)
	require.Len(t, otherLoaded.Items(), 1)
}

// 事務內的失敗會回滾全部變更
func TestInTxRollback(t *testing.T) {
	store, db := newTestStore(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := store.InTx(ctx, func(tx services.Store) error {
		if err := tx.Carts().Save(ctx, &models.Cart{UserID: 7}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	var count int64
	require.NoError(t, db.Model(&models.Cart{}).Count(&count).Error)
	require.EqualValues(t, 0, count)
}
