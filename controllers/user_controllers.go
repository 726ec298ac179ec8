package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/thanhdo-1929/service-finder/config"
	"github.com/thanhdo-1929/service-finder/models"
	"github.com/thanhdo-1929/service-finder/services"
	"github.com/thanhdo-1929/service-finder/validators"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type UserController struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewUserController(db *gorm.DB, redisCli *redis.Client) UserController {
	return UserController{DB: db, Redis: redisCli}
}

type UserPage struct {
	Rows  []models.User `json:"rows"`
	Count int64         `json:"count"`
}

// Cột được phép sort trong danh sách người dùng, nhận cả tên camelCase.
var userSortable = map[string]string{
	"created_at": "created_at",
	"createdAt":  "created_at",
	"updated_at": "updated_at",
	"updatedAt":  "updated_at",
	"name":       "name",
	"email":      "email",
}

// GetUsers godoc
// @Summary Danh sách người dùng (admin)
// @Tags user
// @Produce json
// @Param page query int false "Trang (1-based)"
// @Param limit query int false "Số dòng mỗi trang"
// @Param q query string false "Tìm theo tên hoặc email"
// @Success 200 {object} gin.H
// @Router /api/user [get]
func (u UserController) GetUsers(c *gin.Context) {
	page := 1
	limit := defaultPostLimit()

	if pageStr := c.Query("page"); pageStr != "" {
		if parsed, err := strconv.Atoi(pageStr); err == nil && parsed > 0 {
			page = parsed
		}
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	query := u.DB.Model(&models.User{}).Where("email <> ?", services.PlaceholderEmail)

	if name := c.Query("name"); name != "" {
		query = query.Where("name LIKE ?", "%"+name+"%")
	}
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		pattern := "%" + q + "%"
		query = query.Where("name LIKE ? OR email LIKE ?", pattern, pattern)
	}

	orderBy := "created_at DESC"
	if order := strings.Fields(c.Query("order")); len(order) > 0 {
		if column, ok := userSortable[order[0]]; ok {
			orderBy = column + " ASC"
			if len(order) > 1 && strings.EqualFold(order[1], "DESC") {
				orderBy = column + " DESC"
			}
		}
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "users": err.Error()})
		return
	}

	var users []models.User
	err := query.
		Preload("Role").
		Preload("Posts", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "posted_by")
		}).
		Order(orderBy).
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&users).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "users": err.Error()})
		return
	}

	if len(users) == 0 {
		c.JSON(http.StatusOK, gin.H{"success": true, "users": "Cannot get users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "users": UserPage{Rows: users, Count: count}})
}

// GetCurrent trả hồ sơ của người dùng đang đăng nhập. Cột mật khẩu và token
// reset không bao giờ xuất hiện trong response.
func (u UserController) GetCurrent(c *gin.Context) {
	uid := c.GetUint("currentUserID")

	var user models.User
	err := u.DB.
		Preload("Role").
		Preload("Posts", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "posted_by")
		}).
		First(&user, uid).Error
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "user": "Cannot get users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

type UpdateProfileInput struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

// UpdateProfile cập nhật hồ sơ của chính người dùng.
func (u UserController) UpdateProfile(c *gin.Context) {
	uid := c.GetUint("currentUserID")
	u.applyUserUpdate(c, uid, false)
}

// UpdateUserByAdmin cho admin sửa hồ sơ người khác, kể cả vai trò.
func (u UserController) UpdateUserByAdmin(c *gin.Context) {
	uid, err := strconv.ParseUint(c.Param("uid"), 10, 64)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "user": "Không tìm thấy người dùng"})
		return
	}
	u.applyUserUpdate(c, uint(uid), true)
}

func (u UserController) applyUserUpdate(c *gin.Context, uid uint, admin bool) {
	var input map[string]interface{}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "user": err.Error()})
		return
	}

	fields := map[string]string{}
	for _, name := range []string{"name", "phone", "email"} {
		if v, ok := input[name].(string); ok {
			fields[name] = v
		}
	}
	if invalidFields, count := validators.Validate(fields); count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "user": "Dữ liệu không hợp lệ", "invalidFields": invalidFields})
		return
	}

	if email, ok := input["email"].(string); ok && email != "" {
		var existing models.User
		if err := u.DB.Where("email = ?", email).First(&existing).Error; err == nil && existing.ID != uid {
			c.JSON(http.StatusOK, gin.H{"success": false, "user": "Email đã được sử dụng ở một tài khoản khác."})
			return
		}
	}

	updates := map[string]interface{}{}
	allowed := map[string]string{
		"name":   "name",
		"phone":  "phone",
		"email":  "email",
		"avatar": "avatar",
	}
	if admin {
		allowed["role"] = "role_code"
	}
	for key, column := range allowed {
		if v, ok := input[key]; ok {
			updates[column] = v
		}
	}

	if len(updates) == 0 {
		c.JSON(http.StatusOK, gin.H{"success": false, "user": "Có lỗi, không thể cập nhật."})
		return
	}

	result := u.DB.Model(&models.User{}).Where("id = ?", uid).Updates(updates)
	if result.Error != nil || result.RowsAffected == 0 {
		mes := "Có lỗi, không thể cập nhật."
		if admin {
			mes = "Không tìm thấy người dùng"
		}
		c.JSON(http.StatusOK, gin.H{"success": false, "user": mes})
		return
	}

	mes := "Cập nhật thành công"
	if admin {
		mes = "Updated"
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": mes})
}

// DeleteUser xóa người dùng kèm comment, vote và bài đăng của họ.
func (u UserController) DeleteUser(c *gin.Context) {
	uid := c.Param("uid")

	result := u.DB.Where("id = ?", uid).Delete(&models.User{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "mes": result.Error.Error()})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusOK, gin.H{"success": false, "mes": "Không tìm thấy người dùng"})
		return
	}

	u.DB.Where("user_id = ?", uid).Delete(&models.Comment{})
	u.DB.Where("user_id = ?", uid).Delete(&models.Vote{})
	u.DB.Where("posted_by = ?", uid).Delete(&models.Post{})

	if u.Redis != nil {
		_ = services.DeleteFromRedis(config.Ctx, u.Redis, homeCacheKey)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "mes": "Xóa user thành công"})
}

// GetRoles trả bảng vai trò tĩnh.
func (u UserController) GetRoles(c *gin.Context) {
	var roles []models.Role
	if err := u.DB.Find(&roles).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "roles": "Cannot get roles"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "roles": roles})
}
