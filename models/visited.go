package models

// Visited đếm lượt truy cập trang chủ/danh mục theo ngày, phục vụ dashboard.
type Visited struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Date    string `gorm:"type:varchar(8);unique" json:"date"` // DD-MM-YY
	Counter int    `gorm:"default:0" json:"counter"`
}
