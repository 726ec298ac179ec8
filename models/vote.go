package models

import "time"

// Vote là đánh giá sao của một người dùng cho một bài đăng.
// Mỗi cặp (post, user) chỉ có đúng một dòng, vote lại thì cập nhật tại chỗ.
type Vote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"uniqueIndex:idx_votes_post_user" json:"pid"`
	UserID    uint      `gorm:"uniqueIndex:idx_votes_post_user" json:"uid"`
	Score     int       `json:"score"` // 0 < score <= 5
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
