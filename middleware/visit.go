package middlewares

import (
	"time"

	"github.com/thanhdo-1929/service-finder/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CountVisit cộng bộ đếm lượt truy cập theo ngày cho các trang công khai.
// Lỗi đếm không chặn request.
func CountVisit(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		today := time.Now().Format("02-01-06")

		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"counter": gorm.Expr("visiteds.counter + 1")}),
		}).Create(&models.Visited{Date: today, Counter: 1}).Error
		if err != nil {
			zap.L().Warn("failed to count visit", zap.Error(err))
		}

		c.Next()
	}
}
