package controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/thanhdo-1929/service-finder/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPostRouter(db *gorm.DB) *gin.Engine {
	ctrl := NewPostController(db, nil)
	return newAuthedRouter(func(r *gin.Engine, auth func(roles ...string) gin.HandlerFunc) {
		post := r.Group("/api/post")
		post.GET("/home", ctrl.GetHome)
		post.GET("", auth(), ctrl.GetPosts)
		post.GET("/admin", auth(models.RoleAdmin), ctrl.GetPostsByAdmin)
		post.PUT("/ratings", auth(), ctrl.Ratings)
		post.PUT("/admin/:pid", auth(models.RoleAdmin), ctrl.UpdatePostByAdmin)
		post.DELETE("/admin/:pid", auth(models.RoleAdmin), ctrl.DeletePostByAdmin)
		post.PUT("/:pid", auth(), ctrl.UpdatePost)
		post.DELETE("/:pid", auth(), ctrl.DeletePost)
		post.GET("/:pid", ctrl.GetPostByID)
	})
}

func TestGetPostsRequiresToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := setupTestDB(t)
	router := newPostRouter(db)

	w := doJSON(t, router, http.MethodGet, "/api/post", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetPostsScopedToOwner(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := setupTestDB(t)
	owner := seedUser(t, db, "owner@example.com", models.RoleHost)
	other := seedUser(t, db, "other@example.com", models.RoleHost)

	now := time.Now()
	seedPostAt(t, db, "Của tôi", models.CategoryRent, owner.ID, now)
	seedPostAt(t, db, "Của người khác", models.CategoryRent, other.ID, now)

	router := newPostRouter(db)
	w := doJSON(t, router, http.MethodGet, "/api/post", authToken(t, owner), nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	page := body["posts"].(map[string]interface{})
	assert.Equal(t, float64(1), page["count"])
	rows := page["rows"].([]interface{})
	require.Len(t, rows, 1)
	assert.Equal(t, "Của tôi", rows[0].(map[string]interface{})["title"])
}

// Không có bài nào thì payload vẫn success nhưng posts là chuỗi thông báo.
func TestGetPostsEmptyPayload(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := setupTestDB(t)
	user := seedUser(t, db, "owner@example.com", models.RoleHost)
	router := newPostRouter(db)

	w := doJSON(t, router, http.MethodGet, "/api/post", authToken(t, user), nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Không tìm thấy bài viết", body["posts"])
}

func TestGetPostsByAdminRejectsNonAdmin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := setupTestDB(t)
	member := seedUser(t, db, "member@example.com", models.RoleMember)
	router := newPostRouter(db)

	w := doJSON(t, router, http.MethodGet, "/api/post/admin", authToken(t, member), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetHomeListsAllCategories(t *testing.T) {
	db := setupTestDB(t)
	owner := seedUser(t, db, "owner@example.com", models.RoleHost)

	now := time.Now()
	seedPostAt(t, db, "Phòng trọ", models.CategoryRent, owner.ID, now)
	seedPostAt(t, db, "Quán ăn", models.CategoryEatery, owner.ID, now)

	router := newPostRouter(db)
	w := doJSON(t, router, http.MethodGet, "/api/post/home", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	page := body["posts"].(map[string]interface{})
	assert.Equal(t, float64(2), page["count"])
}

func TestGetPostByIDIncrementsViews(t *testing.T) {
	db := setupTestDB(t)
	owner := seedUser(t, db, "owner@example.com", models.RoleHost)
	post := seedPostAt(t, db, "Phòng trọ", models.CategoryRent, owner.ID, time.Now())
	router := newPostRouter(db)

	for i := 1; i <= 2; i++ {
		w := doJSON(t, router, http.MethodGet, "/api/post/1", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		detail := body["post"].(map[string]interface{})
		assert.Equal(t, float64(i), detail["views"])
	}

	var stored models.Post
	require.NoError(t, db.First(&stored, post.ID).Error)
	assert.Equal(t, 2, stored.Views)
}

func TestGetPostByIDNotFound(t *testing.T) {
	db := setupTestDB(t)
	router := newPostRouter(db)

	w := doJSON(t, router, http.MethodGet, "/api/post/999", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Không tìm thấy bài viết", body["post"])
}

func TestUpdatePostOnlyByOwner(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := setupTestDB(t)
	owner := seedUser(t, db, "owner@example.com", models.RoleHost)
	other := seedUser(t, db, "other@example.com", models.RoleHost)
	post := seedPostAt(t, db, "Phòng trọ", models.CategoryRent, owner.ID, time.Now())
	router := newPostRouter(db)

	w := doJSON(t, router, http.MethodPut, "/api/post/1", authToken(t, other), gin.H{"title": "Bị sửa"})
	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Không tìm thấy bài viết", body["createdPost"])

	w = doJSON(t, router, http.MethodPut, "/api/post/1", authToken(t, owner), gin.H{
		"title": "Phòng trọ mới", "desc": "Mô tả mới",
	})
	body = decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Updated", body["createdPost"])

	var stored models.Post
	require.NoError(t, db.First(&stored, post.ID).Error)
	assert.Equal(t, "Phòng trọ mới", stored.Title)
	assert.Equal(t, "Mô tả mới", stored.Description)
}

func TestUpdatePostByAdminBypassesOwner(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := setupTestDB(t)
	owner := seedUser(t, db, "owner@example.com", models.RoleHost)
	admin := seedUser(t, db, "admin@example.com", models.RoleAdmin)
	seedPostAt(t, db, "Phòng trọ", models.CategoryRent, owner.ID, time.Now())
	router := newPostRouter(db)

	w := doJSON(t, router, http.MethodPut, "/api/post/admin/1", authToken(t, admin), gin.H{"title": "Đã duyệt"})
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])

	var stored models.Post
	require.NoError(t, db.First(&stored, 1).Error)
	assert.Equal(t, "Đã duyệt", stored.Title)
}

func TestDeletePostCascadesVotesAndComments(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := setupTestDB(t)
	owner := seedUser(t, db, "owner@example.com", models.RoleHost)
	post := seedPostAt(t, db, "Phòng trọ", models.CategoryRent, owner.ID, time.Now())
	require.NoError(t, db.Create(&models.Vote{PostID: post.ID, UserID: owner.ID, Score: 4}).Error)
	require.NoError(t, db.Create(&models.Comment{PostID: post.ID, UserID: owner.ID, Content: "Ổn"}).Error)
	router := newPostRouter(db)

	w := doJSON(t, router, http.MethodDelete, "/api/post/1", authToken(t, owner), nil)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Deleted", body["createdPost"])

	var posts, votes, comments int64
	db.Model(&models.Post{}).Count(&posts)
	db.Model(&models.Vote{}).Count(&votes)
	db.Model(&models.Comment{}).Count(&comments)
	assert.Equal(t, int64(0), posts)
	assert.Equal(t, int64(0), votes)
	assert.Equal(t, int64(0), comments)
}

func TestRatingsValidation(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := setupTestDB(t)
	user := seedUser(t, db, "member@example.com", models.RoleMember)
	token := authToken(t, user)
	router := newPostRouter(db)

	// Thiếu score
	w := doJSON(t, router, http.MethodPut, "/api/post/ratings", token, gin.H{"pid": 1})
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Missing inputs", body["mes"])

	// Score không phải số nguyên trong [1,5]
	for _, score := range []interface{}{"nam", 0, 6, 3.5} {
		w = doJSON(t, router, http.MethodPut, "/api/post/ratings", token, gin.H{"pid": 1, "score": score})
		require.Equal(t, http.StatusInternalServerError, w.Code)
		body = decodeBody(t, w)
		assert.Equal(t, "The score must be less than 5 and greater than 0", body["mes"])
	}

	// Bài không tồn tại
	w = doJSON(t, router, http.MethodPut, "/api/post/ratings", token, gin.H{"pid": 999, "score": 4})
	require.Equal(t, http.StatusInternalServerError, w.Code)
	body = decodeBody(t, w)
	assert.Equal(t, "không tìm thấy bài viết", body["mes"])
}

func TestRatingsUpdatesStar(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := setupTestDB(t)
	owner := seedUser(t, db, "owner@example.com", models.RoleHost)
	voter1 := seedUser(t, db, "v1@example.com", models.RoleMember)
	voter2 := seedUser(t, db, "v2@example.com", models.RoleMember)
	post := seedPostAt(t, db, "Quán ăn", models.CategoryEatery, owner.ID, time.Now())
	router := newPostRouter(db)

	w := doJSON(t, router, http.MethodPut, "/api/post/ratings", authToken(t, voter1), gin.H{"pid": post.ID, "score": 3})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(3), body["star"])

	w = doJSON(t, router, http.MethodPut, "/api/post/ratings", authToken(t, voter2), gin.H{"pid": post.ID, "score": 5})
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	assert.Equal(t, float64(4), body["star"])

	var stored models.Post
	require.NoError(t, db.First(&stored, post.ID).Error)
	assert.Equal(t, 4.0, stored.Star)
}
