package controllers

import (
	"errors"
	"net/http"

	"github.com/thanhdo-1929/service-finder/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CommentController struct {
	DB *gorm.DB
}

func NewCommentController(db *gorm.DB) CommentController {
	return CommentController{DB: db}
}

type CommentInput struct {
	Pid     uint   `json:"pid"`
	Content string `json:"content"`
}

// CreateComment godoc
// @Summary Bình luận vào một bài đăng
// @Tags comment
// @Accept json
// @Produce json
// @Param input body CommentInput true "Bài đăng và nội dung"
// @Success 200 {object} gin.H
// @Router /api/comment [post]
func (cc CommentController) CreateComment(c *gin.Context) {
	uid := c.GetUint("currentUserID")

	var input CommentInput
	if err := c.ShouldBindJSON(&input); err != nil || input.Pid == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"err": 1, "mes": "Missing product ID"})
		return
	}
	if input.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"err": 1, "mes": "Missing inputs"})
		return
	}

	var post models.Post
	if err := cc.DB.First(&post, input.Pid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{"success": false, "mes": "Không tìm thấy bài viết!"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "mes": err.Error()})
		return
	}

	comment := models.Comment{
		PostID:  input.Pid,
		UserID:  uid,
		Content: input.Content,
	}
	if err := cc.DB.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "mes": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "mes": "Created comment"})
}

// GetComments liệt kê bình luận của một bài đăng, mới nhất trước.
func (cc CommentController) GetComments(c *gin.Context) {
	pid := c.Query("pid")
	if pid == "" {
		c.JSON(http.StatusBadRequest, gin.H{"err": 1, "mes": "Missing product ID"})
		return
	}

	var comments []models.Comment
	err := cc.DB.Where("post_id = ?", pid).
		Preload("User", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "name", "avatar")
		}).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "comments": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "comments": comments})
}
