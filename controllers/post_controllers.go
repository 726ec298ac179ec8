package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/thanhdo-1929/service-finder/config"
	"github.com/thanhdo-1929/service-finder/models"
	"github.com/thanhdo-1929/service-finder/services"
	"github.com/thanhdo-1929/service-finder/validators"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const homeCacheKey = "posts:home"

type PostController struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewPostController(db *gorm.DB, redisCli *redis.Client) PostController {
	return PostController{DB: db, Redis: redisCli}
}

type PostPage struct {
	Rows  []models.Post `json:"rows"`
	Count int64         `json:"count"`
}

// buildQuery dựng bộ lọc chung cho các biến thể listing từ query string.
func buildQuery(c *gin.Context) *postQuery {
	q := newPostQuery()

	if pageStr := c.Query("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil {
			q.Page(page)
		}
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			q.Limit(limit)
		}
	}

	q.Order(c.Query("order"))
	q.Search(c.Query("q"))
	q.Title(c.Query("title"))
	q.Category(c.Query("category"))

	for _, column := range []string{"price", "distance", "area"} {
		if bounds := c.Query(column); bounds != "" {
			q.Range(column, bounds)
		}
	}

	return q
}

func (p PostController) respondPage(c *gin.Context, q *postQuery) {
	rows, count, err := q.Find(p.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "posts": err.Error()})
		return
	}

	// Kết quả rỗng vẫn là success, client hiển thị thông báo thay vì lỗi.
	if len(rows) == 0 {
		c.JSON(http.StatusOK, gin.H{"success": true, "posts": "Không tìm thấy bài viết"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "posts": PostPage{Rows: rows, Count: count}})
}

// GetPosts godoc
// @Summary Danh sách bài đăng của người dùng hiện tại
// @Tags post
// @Produce json
// @Param page query int false "Trang (1-based)"
// @Param limit query int false "Số dòng mỗi trang"
// @Param q query string false "Tìm theo tựa đề, địa chỉ hoặc tên người đăng"
// @Success 200 {object} gin.H
// @Router /api/post [get]
func (p PostController) GetPosts(c *gin.Context) {
	uid := c.GetUint("currentUserID")
	p.respondPage(c, buildQuery(c).Owner(uid))
}

// GetPostsByAdmin liệt kê mọi bài đăng với đầy đủ bộ lọc, không giới hạn chủ sở hữu.
func (p PostController) GetPostsByAdmin(c *gin.Context) {
	p.respondPage(c, buildQuery(c))
}

// GetHome là listing công khai cho trang chủ, cache Redis khi không có bộ lọc.
func (p PostController) GetHome(c *gin.Context) {
	cacheable := len(c.Request.URL.Query()) == 0

	if cacheable && p.Redis != nil {
		var page PostPage
		if err := services.GetFromRedis(config.Ctx, p.Redis, homeCacheKey, &page); err == nil && len(page.Rows) > 0 {
			c.JSON(http.StatusOK, gin.H{"success": true, "posts": page})
			return
		}
	}

	rows, count, err := buildQuery(c).Find(p.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "posts": err.Error()})
		return
	}
	if len(rows) == 0 {
		c.JSON(http.StatusOK, gin.H{"success": true, "posts": "Không tìm thấy bài viết"})
		return
	}

	page := PostPage{Rows: rows, Count: count}
	if cacheable && p.Redis != nil {
		if err := services.SetToRedis(config.Ctx, p.Redis, homeCacheKey, page, time.Hour); err != nil {
			zap.L().Warn("failed to cache home posts", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "posts": page})
}

// GetPostByID trả chi tiết một bài đăng và cộng 1 lượt xem.
func (p PostController) GetPostByID(c *gin.Context) {
	pid := c.Param("pid")

	var post models.Post
	err := p.DB.Preload("User", func(tx *gorm.DB) *gorm.DB {
		return tx.Select("id", "name", "email", "phone", "avatar")
	}).Preload("Category").Preload("Foodtype").First(&post, pid).Error
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "post": "Không tìm thấy bài viết"})
		return
	}

	if err := p.DB.Model(&post).UpdateColumn("views", gorm.Expr("views + 1")).Error; err != nil {
		zap.L().Warn("failed to increment views", zap.Uint("post", post.ID), zap.Error(err))
	}
	post.Views++

	c.JSON(http.StatusOK, gin.H{"success": true, "post": post})
}

// CreatePost nhận multipart: ảnh upload lên Cloudinary, ảnh dạng link giữ nguyên.
func (p PostController) CreatePost(c *gin.Context) {
	uid := c.GetUint("currentUserID")

	title := c.PostForm("title")
	category := c.PostForm("category")
	address := c.PostForm("address")
	reference := c.PostForm("reference")
	desc := c.PostForm("desc")
	price := c.PostForm("price")
	area := c.PostForm("area")
	foodType := c.PostForm("foodType")

	fields := map[string]string{
		"title":    title,
		"category": category,
		"address":  address,
	}
	switch category {
	case models.CategoryRent:
		fields["price"] = price
		fields["area"] = area
	case models.CategoryEatery:
		fields["foodType"] = foodType
	}

	if invalidFields, count := validators.Validate(fields); count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "mes": "Missing inputs", "invalidFields": invalidFields})
		return
	}

	var existing models.Post
	if err := p.DB.Where("title = ?", title).First(&existing).Error; err == nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "mes": "Tựa đề bài đăng không được trùng nhau"})
		return
	}

	images, err := p.collectImages(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "mes": "Upload thất bại"})
		return
	}
	imagesJSON, _ := json.Marshal(images)

	priceVal, _ := strconv.ParseFloat(price, 64)
	areaVal, _ := strconv.ParseFloat(area, 64)

	post := models.Post{
		Title:        title,
		CategoryCode: category,
		FoodtypeCode: foodType,
		Price:        priceVal,
		Area:         areaVal,
		Address:      address,
		Reference:    reference,
		Description:  desc,
		Images:       imagesJSON,
		PostedBy:     uid,
	}

	if reference != "" {
		if distance, err := services.DistanceFromReference(address, reference); err == nil {
			post.Distance = distance
		} else {
			zap.L().Warn("failed to geocode post address", zap.String("address", address), zap.Error(err))
		}
	}

	if err := p.DB.Create(&post).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "mes": "Tựa đề bài đăng không được trùng nhau"})
		return
	}

	p.invalidateHome()
	c.JSON(http.StatusOK, gin.H{"success": true, "mes": "Tạo bài đăng thành công"})
}

func (p PostController) collectImages(c *gin.Context) ([]string, error) {
	var images []string

	form, err := c.MultipartForm()
	if err != nil {
		return images, nil
	}

	// Link ảnh ngoài gửi trong field "images"
	images = append(images, form.Value["images"]...)

	files := form.File["files"]
	if len(files) > 0 && config.Cloudinary == nil {
		return nil, errors.New("cloudinary is not configured")
	}
	for _, file := range files {
		src, err := file.Open()
		if err != nil {
			return nil, err
		}

		resp, err := config.Cloudinary.Upload.Upload(config.Ctx, src, uploader.UploadParams{Folder: "uploads"})
		src.Close()
		if err != nil {
			return nil, err
		}
		images = append(images, resp.SecureURL)
	}

	return images, nil
}

func (p PostController) updateWhere(c *gin.Context, where *gorm.DB) {
	var input map[string]interface{}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "createdPost": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	for key, column := range map[string]string{
		"title":     "title",
		"address":   "address",
		"desc":      "description",
		"price":     "price",
		"area":      "area",
		"foodType":  "foodtype_code",
		"reference": "reference",
	} {
		if v, ok := input[key]; ok {
			updates[column] = v
		}
	}
	if v, ok := input["images"]; ok {
		if raw, err := json.Marshal(v); err == nil {
			updates["images"] = raw
		}
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "createdPost": "Missing inputs"})
		return
	}

	result := where.Updates(updates)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "createdPost": result.Error.Error()})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusOK, gin.H{"success": false, "createdPost": "Không tìm thấy bài viết"})
		return
	}

	p.invalidateHome()
	c.JSON(http.StatusOK, gin.H{"success": true, "createdPost": "Updated"})
}

// UpdatePost chỉ cho chủ bài đăng sửa; admin đi qua biến thể riêng.
func (p PostController) UpdatePost(c *gin.Context) {
	uid := c.GetUint("currentUserID")
	pid := c.Param("pid")
	p.updateWhere(c, p.DB.Model(&models.Post{}).Where("id = ? AND posted_by = ?", pid, uid))
}

func (p PostController) UpdatePostByAdmin(c *gin.Context) {
	pid := c.Param("pid")
	p.updateWhere(c, p.DB.Model(&models.Post{}).Where("id = ?", pid))
}

func (p PostController) deleteWhere(c *gin.Context, where *gorm.DB, pid string) {
	result := where.Delete(&models.Post{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "createdPost": result.Error.Error()})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusOK, gin.H{"success": false, "createdPost": "Không tìm thấy bài viết"})
		return
	}

	// Vote và comment của bài đi theo bài.
	p.DB.Where("post_id = ?", pid).Delete(&models.Vote{})
	p.DB.Where("post_id = ?", pid).Delete(&models.Comment{})

	p.invalidateHome()
	c.JSON(http.StatusOK, gin.H{"success": true, "createdPost": "Deleted"})
}

func (p PostController) DeletePost(c *gin.Context) {
	uid := c.GetUint("currentUserID")
	pid := c.Param("pid")
	p.deleteWhere(c, p.DB.Where("id = ? AND posted_by = ?", pid, uid), pid)
}

func (p PostController) DeletePostByAdmin(c *gin.Context) {
	pid := c.Param("pid")
	p.deleteWhere(c, p.DB.Where("id = ?", pid), pid)
}

type ratingInput struct {
	Pid   interface{} `json:"pid"`
	Score interface{} `json:"score"`
}

// Ratings ghi vote 0-5 sao rồi cập nhật điểm trung bình của bài.
// Envelope {err, mes} của các nhánh lỗi giữ nguyên theo client cũ.
func (p PostController) Ratings(c *gin.Context) {
	uid := c.GetUint("currentUserID")

	var input ratingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": 1, "mes": "Missing inputs"})
		return
	}
	if input.Pid == nil || input.Score == nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": 1, "mes": "Missing inputs"})
		return
	}

	score, ok := input.Score.(float64)
	if !ok || score != float64(int(score)) || score <= 0 || score > 5 {
		c.JSON(http.StatusInternalServerError, gin.H{"err": 1, "mes": "The score must be less than 5 and greater than 0"})
		return
	}

	postID, ok := toUint(input.Pid)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"err": 1, "mes": "không tìm thấy bài viết"})
		return
	}

	star, err := services.SubmitVote(p.DB, postID, uid, int(score))
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"err": 1, "mes": "không tìm thấy bài viết"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"err": -1, "mes": "Lỗi server " + err.Error()})
		return
	}

	p.invalidateHome()
	c.JSON(http.StatusOK, gin.H{"success": true, "star": star})
}

func toUint(v interface{}) (uint, bool) {
	switch n := v.(type) {
	case float64:
		if n <= 0 || n != float64(uint(n)) {
			return 0, false
		}
		return uint(n), true
	case string:
		parsed, err := strconv.ParseUint(n, 10, 64)
		if err != nil {
			return 0, false
		}
		return uint(parsed), true
	default:
		return 0, false
	}
}

func (p PostController) invalidateHome() {
	if p.Redis == nil {
		return
	}
	if err := services.DeleteFromRedis(config.Ctx, p.Redis, homeCacheKey); err != nil {
		zap.L().Warn(fmt.Sprintf("failed to invalidate %s", homeCacheKey), zap.Error(err))
	}
}
