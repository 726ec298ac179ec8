package models

import (
	"encoding/json"
	"time"
)

type Post struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
	Title        string          `gorm:"unique;not null" json:"title"`
	CategoryCode string          `gorm:"type:varchar(3);index" json:"category"` // TNT: thuê nhà trọ - QA: quán ăn - K: khác
	FoodtypeCode string          `gorm:"type:varchar(3)" json:"foodType"`       // chỉ dùng cho quán ăn
	Price        float64         `json:"price"`
	Area         float64         `json:"area"`
	Address      string          `json:"address"`
	Reference    string          `json:"reference"`
	Distance     float64         `json:"distance"` // km tính từ điểm tham chiếu
	Description  string          `gorm:"type:text" json:"desc"`
	Images       json.RawMessage `gorm:"type:json" json:"images"`
	Views        int             `gorm:"default:0" json:"views"`
	Star         float64         `gorm:"default:0" json:"star"`
	PostedBy     uint            `gorm:"index" json:"postedBy"`
	User         User            `gorm:"foreignKey:PostedBy" json:"user"`
	Category     Category        `gorm:"foreignKey:CategoryCode;references:Code" json:"categoryData"`
	Foodtype     Foodtype        `gorm:"foreignKey:FoodtypeCode;references:Code" json:"foodtypes"`
	Votes        []Vote          `gorm:"foreignKey:PostID" json:"-"`
	Comments     []Comment       `gorm:"foreignKey:PostID" json:"comments,omitempty"`
}
