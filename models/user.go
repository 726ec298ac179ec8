package models

import (
	"time"
)

type User struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
	Name            string    `gorm:"default:New User" json:"name"`
	Email           string    `gorm:"index" json:"email"` // giữ sentinel "notactived" cho đến khi xác thực xong
	Password        string    `json:"-"`
	Phone           string    `gorm:"type:varchar(11)" json:"phone"`
	Avatar          string    `gorm:"default:'https://res.cloudinary.com/dqipg0or3/image/upload/v1728746922/uploads/oigc5k6e91shemck15uz.jpg'" json:"avatar"`
	RoleCode        string    `gorm:"type:varchar(3);default:'R3'" json:"role"` // R1: Admin - R2: Host - R3: Member
	IsVerified      bool      `gorm:"default:false" json:"is_verified"`
	VerifyToken     string    `gorm:"index" json:"-"`
	VerifyCreatedAt time.Time `json:"-"`
	ResetToken      string    `gorm:"index" json:"-"`
	ResetExpiry     time.Time `json:"-"`
	Role            Role      `gorm:"foreignKey:RoleCode;references:Code" json:"roleData"`
	Posts           []Post    `gorm:"foreignKey:PostedBy" json:"posts,omitempty"`
}
