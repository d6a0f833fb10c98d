package handlers

import (
	"EcommerceBackend/models"
	"encoding/json"
	"fmt"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

func isValidImageExtensions(file *multipart.FileHeader) bool {
	allowExtensions := []string{".jpg", ".jpeg", ".png"}
	fileExt := strings.ToLower(filepath.Ext(file.Filename))
	for _, allowExt := range allowExtensions {
		if fileExt == allowExt {
			return true
		}
	}
	return false
}

// 以uuid生成不重複的圖片檔名
func makeUniqueFileName(file *multipart.FileHeader) string {
	fileExt := filepath.Ext(file.Filename)
	return fmt.Sprintf("%s%s", uuid.New().String(), fileExt)
}

// 查詢使用者列表
func GetUserListHandler(c *gin.Context, db *gorm.DB) {
	//嘗試獲取使用者列表
	var userList []struct {
		Id       uint
		Username string
	}
	err := db.
		Model(&models.User{}).
		Select("Id", "Username").
		Find(&userList).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "無法獲取使用者列表",
			"error":   err.Error(),
		})
		return
	}

	//成功獲取使用者列表
	c.JSON(http.StatusOK, gin.H{
		"message":  "成功獲取使用者列表",
		"userList": userList,
	})
}

func UploadImageHandler(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "綁定圖片失敗",
			"error":   err.Error(),
		})
		return
	}

	if !isValidImageExtensions(file) {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "圖片檔案格式錯誤",
		})
		return
	}

	uploadsDir := "./uploads"
	//檢查uploads資料夾是否存在，如不存在則創建
	_, err = os.Stat(uploadsDir)
	if err != nil {
		if os.IsNotExist(err) {
			if err := os.Mkdir(uploadsDir, 0755); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{
					"message": "建立uploads資料夾失敗",
					"error":   err.Error(),
				})
				return
			}
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "檢查uploads資料夾失敗",
				"error":   err.Error(),
			})
			return
		}
	}

	imageName := makeUniqueFileName(file)
	filePath := filepath.Join(uploadsDir, imageName)
	if err := c.SaveUploadedFile(file, filePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "儲存圖片失敗",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "成功上傳圖片",
		"imagePath": "/" + filepath.ToSlash(filePath),
	})
}

func CreateProductHandler(c *gin.Context, db *gorm.DB, rdb *redis.Client) {
	var newProduct struct {
		Name        string          `json:"name" binding:"required"`
		Price       decimal.Decimal `json:"price"`
		Stock       uint            `json:"stock" binding:"required"`
		ImageURL    string          `json:"imageURL" binding:"required"`
		Description string          `json:"description"`
	}
	err := c.ShouldBindJSON(&newProduct)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "綁定請求資料錯誤",
			"error":   err.Error(),
		})
		return
	}

	//價格必須大於0
	if !newProduct.Price.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "商品價格必須大於0",
		})
		return
	}

	product := models.Product{
		Name:        newProduct.Name,
		Price:       newProduct.Price,
		Stock:       newProduct.Stock,
		ImageURL:    newProduct.ImageURL,
		Description: newProduct.Description,
	}

	tx := db.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "開啟資料庫事務失敗",
			"error":   tx.Error.Error(),
		})
		return
	}

	err = tx.Create(&product).Error
	if err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "新增商品失敗",
			"error":   err.Error(),
		})
		return
	}

	productJSON, err := json.Marshal(product)
	if err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "無法序列化商品資料",
			"error":   err.Error(),
		})
		return
	}

	err = rdb.ZAdd(c, "products", redis.Z{
		Score:  float64(product.ID),
		Member: productJSON,
	}).Err()
	if err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "無法將商品資料加入Redis",
			"error":   err.Error(),
		})
		return
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "提交事務失敗",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "成功新增商品",
		"product": product,
	})
}

func UpdateProductHandler(c *gin.Context, db *gorm.DB, rdb *redis.Client) {
	productID := c.Param("productID")

	var productDataReq struct {
		Name        *string          `json:"name"`
		Price       *decimal.Decimal `json:"price"`
		Stock       *uint            `json:"stock"`
		ImageURL    *string          `json:"imageURL"`
		Description *string          `json:"description"`
	}
	err := c.ShouldBindJSON(&productDataReq)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "綁定請求資料錯誤",
			"error":   err.Error(),
		})
		return
	}

	var product models.Product
	err = db.First(&product, productID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"message": "找不到此商品",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	if productDataReq.Name != nil {
		product.Name = *productDataReq.Name
	}
	if productDataReq.Price != nil {
		if !productDataReq.Price.IsPositive() {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "商品價格必須大於0",
			})
			return
		}
		product.Price = *productDataReq.Price
	}
	if productDataReq.Stock != nil {
		product.Stock = *productDataReq.Stock
	}
	if productDataReq.ImageURL != nil {
		product.ImageURL = *productDataReq.ImageURL
	}
	if productDataReq.Description != nil {
		product.Description = *productDataReq.Description
	}

	tx := db.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "開啟資料庫事務失敗",
			"error":   tx.Error.Error(),
		})
		return
	}

	result := tx.Save(&product)
	if result.Error != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": result.Error.Error(),
		})
		return
	}

	productJSON, err := json.Marshal(product)
	if err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "無法序列化商品資料",
			"error":   err.Error(),
		})
		return
	}

	score := strconv.Itoa(int(product.ID))

	err = rdb.ZRemRangeByScore(c, "products", score, score).Err()
	if err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "無法將商品資料從Redis刪除",
			"error":   err.Error(),
		})
		return
	}

	err = rdb.ZAdd(c, "products", redis.Z{
		Score:  float64(product.ID),
		Member: productJSON,
	}).Err()
	if err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "無法將商品資料加入Redis",
			"error":   err.Error(),
		})
		return
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "提交事務失敗",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "成功修改商品資料",
	})
}

func DeleteProductHandler(c *gin.Context, db *gorm.DB, rdb *redis.Client) {
	productID := c.Param("productID")

	var product models.Product

	tx := db.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "開啟資料庫事務失敗",
			"error":   tx.Error.Error(),
		})
		return
	}

	err := tx.First(&product, productID).Error
	if err != nil {
		tx.Rollback()
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"message": "找不到此商品",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "查找此商品失敗",
			"error":   err.Error(),
		})
		return
	}

	err = tx.Delete(&product).Error
	if err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "刪除商品失敗",
			"error":   err.Error(),
		})
		return
	}

	score := strconv.Itoa(int(product.ID))

	err = rdb.ZRemRangeByScore(c, "products", score, score).Err()
	if err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "無法將商品資料從Redis刪除",
			"error":   err.Error(),
		})
		return
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "提交事務失敗",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "成功刪除商品",
	})
}
