package config

import (
	"github.com/thanhdo-1929/service-finder/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Migrate tạo bảng và seed dữ liệu tra cứu (category, foodtype, role).
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Role{},
		&models.Category{},
		&models.Foodtype{},
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Vote{},
		&models.Visited{},
	); err != nil {
		return err
	}

	return seedLookups(db)
}

func seedLookups(db *gorm.DB) error {
	categories := []models.Category{
		{Code: models.CategoryRent, Value: "Thuê nhà trọ"},
		{Code: models.CategoryEatery, Value: "Quán ăn"},
		{Code: models.CategoryOther, Value: "Khác"},
	}
	foodtypes := []models.Foodtype{
		{Code: "CA", Value: "Cơm"},
		{Code: "BU", Value: "Bún phở"},
		{Code: "AV", Value: "Ăn vặt"},
		{Code: "NU", Value: "Đồ uống"},
	}
	roles := []models.Role{
		{Code: models.RoleAdmin, Value: "Admin"},
		{Code: models.RoleHost, Value: "Chủ trọ"},
		{Code: models.RoleMember, Value: "Thành viên"},
	}

	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&categories).Error; err != nil {
		return err
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&foodtypes).Error; err != nil {
		return err
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&roles).Error
}
