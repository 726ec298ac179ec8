package controllers

import (
	"net/http"
	"sort"
	"time"

	"github.com/thanhdo-1929/service-finder/models"
	"github.com/thanhdo-1929/service-finder/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) DashboardController {
	return DashboardController{DB: db}
}

// ChartPoint là một bucket theo tháng cho biểu đồ dashboard.
type ChartPoint struct {
	Month   string `json:"createdAt"` // MM-YY
	Counter int    `json:"counter"`
}

// GetDashboard godoc
// @Summary Số liệu tổng hợp cho trang quản trị
// @Description Đếm bài đăng theo tháng cho từng danh mục, người dùng mới theo tháng, tổng lượt truy cập.
// @Tags post
// @Produce json
// @Success 200 {object} gin.H
// @Router /api/post/dashboard [get]
func (d DashboardController) GetDashboard(c *gin.Context) {
	rent, err := d.postSeries(models.CategoryRent)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "chartData": err.Error()})
		return
	}
	eatery, err := d.postSeries(models.CategoryEatery)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "chartData": err.Error()})
		return
	}
	other, err := d.postSeries(models.CategoryOther)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "chartData": err.Error()})
		return
	}

	userSeries, err := d.userSeries()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "chartData": err.Error()})
		return
	}

	var postCount, userCount int64
	if err := d.DB.Model(&models.Post{}).Count(&postCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "chartData": err.Error()})
		return
	}
	if err := d.DB.Model(&models.User{}).Where("email <> ?", services.PlaceholderEmail).Count(&userCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "chartData": err.Error()})
		return
	}

	var views int64
	if err := d.DB.Model(&models.Visited{}).Select("COALESCE(SUM(counter), 0)").Scan(&views).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "chartData": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"chartData": gin.H{
			"rent":      rent,
			"eatery":    eatery,
			"other":     other,
			"user":      userSeries,
			"views":     views,
			"postCount": postCount,
			"userCount": userCount,
		},
	})
}

func (d DashboardController) postSeries(category string) ([]ChartPoint, error) {
	var createdAts []time.Time
	err := d.DB.Model(&models.Post{}).
		Where("category_code = ?", category).
		Pluck("created_at", &createdAts).Error
	if err != nil {
		return nil, err
	}
	return bucketByMonth(createdAts), nil
}

func (d DashboardController) userSeries() ([]ChartPoint, error) {
	var createdAts []time.Time
	err := d.DB.Model(&models.User{}).
		Where("email <> ?", services.PlaceholderEmail).
		Pluck("created_at", &createdAts).Error
	if err != nil {
		return nil, err
	}
	return bucketByMonth(createdAts), nil
}

// bucketByMonth gom timestamp theo tháng tạo, định dạng MM-YY, trả về theo
// thứ tự thời gian. Tính trong Go để chạy được trên cả postgres lẫn sqlite.
func bucketByMonth(createdAts []time.Time) []ChartPoint {
	buckets := map[string]int{}
	for _, t := range createdAts {
		buckets[t.Format("01-06")]++
	}

	points := make([]ChartPoint, 0, len(buckets))
	for month, counter := range buckets {
		points = append(points, ChartPoint{Month: month, Counter: counter})
	}

	sort.Slice(points, func(i, j int) bool {
		ti, _ := time.Parse("01-06", points[i].Month)
		tj, _ := time.Parse("01-06", points[j].Month)
		return ti.Before(tj)
	})

	return points
}
