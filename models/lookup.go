package models

// Bảng tra cứu tĩnh, chỉ đọc. Seed khi migrate.

type Category struct {
	Code  string `gorm:"type:varchar(3);primaryKey" json:"code"`
	Value string `json:"value"`
}

type Foodtype struct {
	Code  string `gorm:"type:varchar(3);primaryKey" json:"code"`
	Value string `json:"value"`
}

type Role struct {
	Code  string `gorm:"type:varchar(3);primaryKey" json:"code"`
	Value string `json:"value"`
}

// Mã danh mục bài đăng
const (
	CategoryRent   = "TNT" // thuê nhà trọ
	CategoryEatery = "QA"  // quán ăn
	CategoryOther  = "K"   // khác
)

// Mã vai trò người dùng
const (
	RoleAdmin  = "R1"
	RoleHost   = "R2"
	RoleMember = "R3"
)
