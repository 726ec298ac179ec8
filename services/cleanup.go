package services

import (
	"time"

	"github.com/thanhdo-1929/service-finder/models"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PlaceholderEmail là giá trị cột email của tài khoản chưa xác thực.
const PlaceholderEmail = "notactived"

// VerifyWindow là thời gian người dùng có để bấm link xác thực.
const VerifyWindow = 5 * time.Minute

// PurgeUnverified xóa các tài khoản placeholder đã quá hạn xác thực.
func PurgeUnverified(db *gorm.DB) (int64, error) {
	cutoff := time.Now().Add(-VerifyWindow)
	result := db.Where("email = ? AND verify_created_at < ?", PlaceholderEmail, cutoff).
		Delete(&models.User{})
	return result.RowsAffected, result.Error
}

// StartCleanup chạy quét định kỳ mỗi phút. Khác với hẹn giờ một lần,
// restart tiến trình không làm sót bản ghi mồ côi.
func StartCleanup(db *gorm.DB) *cron.Cron {
	c := cron.New()
	c.AddFunc("* * * * *", func() {
		purged, err := PurgeUnverified(db)
		if err != nil {
			zap.L().Error("failed to purge unverified users", zap.Error(err))
			return
		}
		if purged > 0 {
			zap.L().Info("purged unverified users", zap.Int64("count", purged))
		}
	})
	c.Start()
	return c
}
