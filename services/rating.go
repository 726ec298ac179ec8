package services

import (
	"errors"

	"github.com/thanhdo-1929/service-finder/models"

	"gorm.io/gorm"
)

var ErrPostNotFound = errors.New("không tìm thấy bài viết")

// SubmitVote ghi đánh giá của một người dùng cho một bài đăng rồi tính lại
// điểm sao trung bình. Vote lại thì cập nhật dòng cũ, không tạo dòng mới.
// Toàn bộ chạy trong một transaction để hai vote đồng thời không giẫm lên
// kết quả trung bình của nhau.
func SubmitVote(db *gorm.DB, postID, userID uint, score int) (float64, error) {
	var star float64

	err := db.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPostNotFound
			}
			return err
		}

		var vote models.Vote
		err := tx.Where("post_id = ? AND user_id = ?", postID, userID).First(&vote).Error
		switch {
		case err == nil:
			vote.Score = score
			if err := tx.Save(&vote).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			vote = models.Vote{PostID: postID, UserID: userID, Score: score}
			if err := tx.Create(&vote).Error; err != nil {
				return err
			}
		default:
			return err
		}

		// Trung bình tính bằng một câu aggregate duy nhất, COALESCE chặn
		// trường hợp không còn vote nào.
		if err := tx.Model(&models.Vote{}).
			Where("post_id = ?", postID).
			Select("COALESCE(AVG(score), 0)").
			Scan(&star).Error; err != nil {
			return err
		}

		return tx.Model(&models.Post{}).
			Where("id = ?", postID).
			Update("star", star).Error
	})

	return star, err
}
