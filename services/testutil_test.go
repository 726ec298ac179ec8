package services

import (
	"testing"

	"github.com/thanhdo-1929/service-finder/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Role{},
		&models.Category{},
		&models.Foodtype{},
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Vote{},
		&models.Visited{},
	))

	return db
}
