package controllers

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/thanhdo-1929/service-finder/models"
	"github.com/thanhdo-1929/service-finder/services"
	"github.com/thanhdo-1929/service-finder/validators"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthController struct {
	DB   *gorm.DB
	Mail *services.MailService
}

func NewAuthController(db *gorm.DB, mail *services.MailService) AuthController {
	return AuthController{DB: db, Mail: mail}
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func randomToken() string {
	b := make([]byte, 32)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// Register godoc
// @Summary Đăng ký tài khoản
// @Description Tạo tài khoản placeholder và gửi mail xác thực. Email chỉ được ghi thật khi bấm link trong vòng 5 phút.
// @Tags user
// @Accept json
// @Produce json
// @Param input body RegisterInput true "Thông tin đăng ký"
// @Success 200 {object} gin.H
// @Router /api/user/register [post]
func (a AuthController) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "mes": err.Error()})
		return
	}

	invalidFields, count := validators.Validate(map[string]string{
		"name":     input.Name,
		"email":    input.Email,
		"password": input.Password,
	})
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "mes": "Dữ liệu không hợp lệ", "invalidFields": invalidFields})
		return
	}

	var existing models.User
	if err := a.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "mes": "Email đã được đăng ký"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "mes": err.Error()})
		return
	}

	token := randomToken()
	user := models.User{
		Name:            input.Name,
		Email:           services.PlaceholderEmail,
		Password:        string(hashed),
		VerifyToken:     token,
		VerifyCreatedAt: time.Now(),
	}
	if err := a.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "mes": "Không thể tạo tài khoản"})
		return
	}

	if err := a.Mail.SendVerificationMail(input.Email, token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "mes": "Không thể gửi mail xác thực"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "mes": "Hãy check mail để kích hoạt tài khoản"})
}

// FinalRegister hoàn tất đăng ký khi người dùng bấm link trong mail.
// Redirect về client với cờ 1/0 thay vì trả JSON.
func (a AuthController) FinalRegister(c *gin.Context) {
	email := c.Param("email")
	token := c.Param("token")
	clientURI := os.Getenv("CLIENT_URI")

	var user models.User
	err := a.DB.Where("verify_token = ? AND email = ?", token, services.PlaceholderEmail).First(&user).Error
	if err != nil || time.Since(user.VerifyCreatedAt) > services.VerifyWindow {
		if err == nil {
			a.DB.Delete(&user)
		}
		c.Redirect(http.StatusFound, fmt.Sprintf("%s/xac-nhan-dang-ky-tai-khoan/0", clientURI))
		return
	}

	// Một placeholder khác có thể đã kịp xác thực cùng email này.
	var taken models.User
	if err := a.DB.Where("email = ?", email).First(&taken).Error; err == nil {
		a.DB.Delete(&user)
		c.Redirect(http.StatusFound, fmt.Sprintf("%s/xac-nhan-dang-ky-tai-khoan/0", clientURI))
		return
	}

	user.Email = email
	user.IsVerified = true
	user.VerifyToken = ""
	if err := a.DB.Save(&user).Error; err != nil {
		c.Redirect(http.StatusFound, fmt.Sprintf("%s/xac-nhan-dang-ky-tai-khoan/0", clientURI))
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("%s/xac-nhan-dang-ky-tai-khoan/1", clientURI))
}

// Login godoc
// @Summary Đăng nhập
// @Tags user
// @Accept json
// @Produce json
// @Param input body LoginInput true "Email và mật khẩu"
// @Success 200 {object} gin.H
// @Router /api/user/login [post]
func (a AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "mes": err.Error()})
		return
	}
	if input.Email == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "mes": "Missing inputs"})
		return
	}

	var user models.User
	if err := a.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{"success": false, "mes": "Email chưa được đăng ký!"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "mes": err.Error()})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "mes": "Sai mật khẩu!"})
		return
	}

	accessToken, err := services.GenerateToken(services.UserInfo{
		UserId: user.ID,
		Role:   user.RoleCode,
	}, 60*24*3)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "mes": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "mes": "Đăng nhập thành công!", "accessToken": accessToken})
}

// ForgotPassword giữ nguyên envelope {err, mes} vì client đọc đúng shape này.
func (a AuthController) ForgotPassword(c *gin.Context) {
	var input struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Email == "" {
		c.JSON(http.StatusOK, gin.H{"err": 1, "mes": "Missing inputs"})
		return
	}

	var user models.User
	if err := a.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": -1, "mes": "Email chưa được đăng ký!"})
		return
	}

	token := randomToken()
	updates := map[string]interface{}{
		"reset_token":  token,
		"reset_expiry": time.Now().Add(15 * time.Minute),
	}
	if err := a.DB.Model(&user).Updates(updates).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"err": 1, "mes": "Something went wrong!"})
		return
	}

	if err := a.Mail.SendResetPasswordMail(input.Email, token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": -1, "mes": "Lỗi server " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"err": 0, "mes": "Vui lòng check mail của bạn."})
}

// ResetPassword đổi mật khẩu bằng token một lần. Token bị vô hiệu ngay khi
// dùng, bất kể còn hạn hay không.
func (a AuthController) ResetPassword(c *gin.Context) {
	var input struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Token == "" || input.Password == "" {
		c.JSON(http.StatusOK, gin.H{"err": 1, "mes": "Missing inputs"})
		return
	}

	var user models.User
	if err := a.DB.Where("reset_token = ?", input.Token).First(&user).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"err": 1, "mes": "Something went wrong"})
		return
	}

	if time.Now().After(user.ResetExpiry) {
		a.DB.Model(&user).Updates(map[string]interface{}{"reset_token": "", "reset_expiry": time.Now()})
		c.JSON(http.StatusOK, gin.H{"err": 1, "mes": "Something went wrong"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": -1, "mes": "Lỗi server " + err.Error()})
		return
	}

	updates := map[string]interface{}{
		"password":     string(hashed),
		"reset_token":  "",
		"reset_expiry": time.Now(),
	}
	if err := a.DB.Model(&user).Updates(updates).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"err": 1, "mes": "Something went wrong"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"err": 0, "mes": "Reset mật khẩu thành công."})
}
