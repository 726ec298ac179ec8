package controllers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	middlewares "github.com/thanhdo-1929/service-finder/middleware"
	"github.com/thanhdo-1929/service-finder/models"
	"github.com/thanhdo-1929/service-finder/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

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

func seedUser(t *testing.T, db *gorm.DB, email, role string) models.User {
	t.Helper()
	user := models.User{
		Name:       "Người Test",
		Email:      email,
		RoleCode:   role,
		IsVerified: true,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedPostAt(t *testing.T, db *gorm.DB, title, category string, owner uint, at time.Time) models.Post {
	t.Helper()
	post := models.Post{
		Title:        title,
		CategoryCode: category,
		PostedBy:     owner,
	}
	require.NoError(t, db.Create(&post).Error)
	// autoCreateTime ghi đè giá trị truyền vào nên chỉnh lại trực tiếp
	require.NoError(t, db.Model(&models.Post{}).Where("id = ?", post.ID).
		Updates(map[string]interface{}{"created_at": at, "updated_at": at}).Error)
	post.CreatedAt = at
	post.UpdatedAt = at
	return post
}

func authToken(t *testing.T, user models.User) string {
	t.Helper()
	token, err := services.GenerateToken(services.UserInfo{UserId: user.ID, Role: user.RoleCode}, 60)
	require.NoError(t, err)
	return token
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(raw))
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// newAuthedRouter đăng ký handler sau middleware auth thật, giống routes/routers.go.
func newAuthedRouter(register func(r *gin.Engine, auth func(roles ...string) gin.HandlerFunc)) *gin.Engine {
	r := gin.New()
	register(r, middlewares.AuthMiddleware)
	return r
}
