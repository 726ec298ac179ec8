package controllers

import (
	"net/http"
	"time"

	"github.com/thanhdo-1929/service-finder/config"
	"github.com/thanhdo-1929/service-finder/models"
	"github.com/thanhdo-1929/service-finder/services"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CategoryController struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewCategoryController(db *gorm.DB, redisCli *redis.Client) CategoryController {
	return CategoryController{DB: db, Redis: redisCli}
}

// GetCategories trả bảng danh mục tĩnh, cache Redis một ngày.
func (cc CategoryController) GetCategories(c *gin.Context) {
	const cacheKey = "categories:all"

	var categories []models.Category
	if cc.Redis != nil {
		if err := services.GetFromRedis(config.Ctx, cc.Redis, cacheKey, &categories); err == nil && len(categories) > 0 {
			c.JSON(http.StatusOK, gin.H{"success": true, "categories": categories})
			return
		}
	}

	if err := cc.DB.Find(&categories).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "categories": "Cannot get categories"})
		return
	}

	if cc.Redis != nil {
		if err := services.SetToRedis(config.Ctx, cc.Redis, cacheKey, categories, 24*time.Hour); err != nil {
			zap.L().Warn("failed to cache categories", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "categories": categories})
}

// GetFoodtypes trả bảng loại món ăn tĩnh, cache Redis một ngày.
func (cc CategoryController) GetFoodtypes(c *gin.Context) {
	const cacheKey = "foodtypes:all"

	var foodtypes []models.Foodtype
	if cc.Redis != nil {
		if err := services.GetFromRedis(config.Ctx, cc.Redis, cacheKey, &foodtypes); err == nil && len(foodtypes) > 0 {
			c.JSON(http.StatusOK, gin.H{"success": true, "foodtypes": foodtypes})
			return
		}
	}

	if err := cc.DB.Find(&foodtypes).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "foodtypes": "Cannot get foodtypes"})
		return
	}

	if cc.Redis != nil {
		if err := services.SetToRedis(config.Ctx, cc.Redis, cacheKey, foodtypes, 24*time.Hour); err != nil {
			zap.L().Warn("failed to cache foodtypes", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "foodtypes": foodtypes})
}
