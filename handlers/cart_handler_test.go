package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"EcommerceBackend/handlers"
	"EcommerceBackend/models"
	"EcommerceBackend/repository"
	"EcommerceBackend/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// 建立測試用路由器，以X-Test-User標頭模擬登入的使用者
func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

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

	cartService := services.NewCartService(repository.NewStore(db))

	router := gin.New()
	router.Use(func(c *gin.Context) {
		if header := c.GetHeader("X-Test-User"); header != "" {
			userID, err := strconv.Atoi(header)
			require.NoError(t, err)
			c.Set("UserID", uint(userID))
		}
		c.Next()
	})

	router.GET("/api/v1/carts", func(context *gin.Context) {
		handlers.GetCartHandler(context, cartService)
	})
	router.POST("/api/v1/carts/items", func(context *gin.Context) {
		handlers.AddToCartHandler(context, cartService)
	})
	router.PATCH("/api/v1/carts/items/:itemID", func(context *gin.Context) {
		handlers.UpdateCartItemQuantityHandler(context, cartService)
	})
	router.DELETE("/api/v1/carts/items/:itemID", func(context *gin.Context) {
		handlers.DeleteCartItemHandler(context, cartService)
	})
	router.DELETE("/api/v1/carts", func(context *gin.Context) {
		handlers.ClearCartHandler(context, cartService)
	})

	return router, db
}

func seedUser(t *testing.T, db *gorm.DB, username string) uint {
	t.Helper()
	user := models.User{
		Username: username,
		Email:    username + "@test.com",
		Password: "hashed-password",
		Role:     "user",
	}
	require.NoError(t, db.Create(&user).Error)
	return user.ID
}

func seedProduct(t *testing.T, db *gorm.DB, name string) uint {
	t.Helper()
	product := models.Product{Name: name, Price: decimal.NewFromInt(250), Stock: 10}
	require.NoError(t, db.Create(&product).Error)
	return product.ID
}

type cartResponse struct {
	Message string `json:"message"`
	Cart    struct {
		CartID    uint `json:"CartID"`
		CartItems []struct {
			ItemID    uint   `json:"ItemID"`
			ProductID uint   `json:"ProductID"`
			Name      string `json:"Name"`
			Quantity  int    `json:"Quantity"`
		} `json:"CartItems"`
	} `json:"cart"`
}

func doRequest(t *testing.T, router *gin.Engine, method string, path string, userID uint, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		req.Header.Set("X-Test-User", strconv.Itoa(int(userID)))
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func parseCartResponse(t *testing.T, recorder *httptest.ResponseRecorder) cartResponse {
	t.Helper()
	var response cartResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	return response
}

func TestGetCartCreatesCart(t *testing.T) {
	router, db := newTestRouter(t)
	userID := seedUser(t, db, "apiuser001")

	recorder := doRequest(t, router, http.MethodGet, "/api/v1/carts", userID, "")
	require.Equal(t, http.StatusOK, recorder.Code)

	response := parseCartResponse(t, recorder)
	require.NotZero(t, response.Cart.CartID)
	require.Empty(t, response.Cart.CartItems)
}

func TestAddToCartMergesQuantity(t *testing.T) {
	router, db := newTestRouter(t)
	userID := seedUser(t, db, "apiuser002")
	productID := seedProduct(t, db, "鍵盤")

	body := fmt.Sprintf(`{"productID": %d, "quantity": 2}`, productID)
	recorder := doRequest(t, router, http.MethodPost, "/api/v1/carts/items", userID, body)
	require.Equal(t, http.StatusOK, recorder.Code)

	body = fmt.Sprintf(`{"productID": %d, "quantity": 3}`, productID)
	recorder = doRequest(t, router, http.MethodPost, "/api/v1/carts/items", userID, body)
	require.Equal(t, http.StatusOK, recorder.Code)

	response := parseCartResponse(t, recorder)
	require.Len(t, response.Cart.CartItems, 1)
	require.Equal(t, 5, response.Cart.CartItems[0].Quantity)
}

func TestAddToCartInvalidQuantity(t *testing.T) {
	router, db := newTestRouter(t)
	userID := seedUser(t, db, "apiuser003")
	productID := seedProduct(t, db, "滑鼠")

	body := fmt.Sprintf(`{"productID": %d, "quantity": 0}`, productID)
	recorder := doRequest(t, router, http.MethodPost, "/api/v1/carts/items", userID, body)
	require.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestAddToCartProductNotFound(t *testing.T) {
	router, db := newTestRouter(t)
	userID := seedUser(t, db, "apiuser004")

	recorder := doRequest(t, router, http.MethodPost, "/api/v1/carts/items", userID, `{"productID": 9999, "quantity": 1}`)
	require.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestUpdateQuantityZeroRemoves(t *testing.T) {
	router, db := newTestRouter(t)
	userID := seedUser(t, db, "apiuser005")
	productID := seedProduct(t, db, "螢幕")

	body := fmt.Sprintf(`{"productID": %d, "quantity": 2}`, productID)
	recorder := doRequest(t, router, http.MethodPost, "/api/v1/carts/items", userID, body)
	require.Equal(t, http.StatusOK, recorder.Code)
	response := parseCartResponse(t, recorder)
	itemID := response.Cart.CartItems[0].ItemID

	path := fmt.Sprintf("/api/v1/carts/items/%d", itemID)
	recorder = doRequest(t, router, http.MethodPatch, path, userID, `{"quantity": 0}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	response = parseCartResponse(t, recorder)
	require.Empty(t, response.Cart.CartItems)
}

func TestDeleteOtherUsersItemForbidden(t *testing.T) {
	router, db := newTestRouter(t)
	userA := seedUser(t, db, "apiuserA01")
	userB := seedUser(t, db, "apiuserB01")
	productID := seedProduct(t, db, "筆電")

	body := fmt.Sprintf(`{"productID": %d, "quantity": 1}`, productID)
	recorder := doRequest(t, router, http.MethodPost, "/api/v1/carts/items", userA, body)
	require.Equal(t, http.StatusOK, recorder.Code)
	response := parseCartResponse(t, recorder)
	itemID := response.Cart.CartItems[0].ItemID

	//B刪除A的購物車項目必須被拒絕
	path := fmt.Sprintf("/api/v1/carts/items/%d", itemID)
	recorder = doRequest(t, router, http.MethodDelete, path, userB, "")
	require.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestClearCartEndpoint(t *testing.T) {
	router, db := newTestRouter(t)
	userID := seedUser(t, db, "apiuser006")
	productID := seedProduct(t, db, "耳機")

	body := fmt.Sprintf(`{"productID": %d, "quantity": 4}`, productID)
	recorder := doRequest(t, router, http.MethodPost, "/api/v1/carts/items", userID, body)
	require.Equal(t, http.StatusOK, recorder.Code)
	response := parseCartResponse(t, recorder)
	cartID := response.Cart.CartID

	recorder = doRequest(t, router, http.MethodDelete, "/api/v1/carts", userID, "")
	require.Equal(t, http.StatusOK, recorder.Code)

	response = parseCartResponse(t, recorder)
	require.Equal(t, cartID, response.Cart.CartID)
	require.Empty(t, response.Cart.CartItems)
}
