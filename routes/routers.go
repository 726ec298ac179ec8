package routes

import (
	"net/http"

	"github.com/thanhdo-1929/service-finder/config"
	"github.com/thanhdo-1929/service-finder/controllers"
	middlewares "github.com/thanhdo-1929/service-finder/middleware"
	"github.com/thanhdo-1929/service-finder/models"
	"github.com/thanhdo-1929/service-finder/services"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func SetupRoutes(router *gin.Engine, db *gorm.DB, redisCli *redis.Client, cld *cloudinary.Cloudinary) {

	authController := controllers.NewAuthController(db, services.NewMailService())
	userController := controllers.NewUserController(db, redisCli)
	postController := controllers.NewPostController(db, redisCli)
	commentController := controllers.NewCommentController(db)
	categoryController := controllers.NewCategoryController(db, redisCli)
	dashboardController := controllers.NewDashboardController(db)

	api := router.Group("/api")

	user := api.Group("/user")
	user.POST("/register", authController.Register)
	user.GET("/finalregister/:email/:token", authController.FinalRegister)
	user.POST("/login", authController.Login)
	user.POST("/forgotpassword", authController.ForgotPassword)
	user.PUT("/resetpassword", authController.ResetPassword)

	user.GET("", middlewares.AuthMiddleware(models.RoleAdmin), userController.GetUsers)
	user.GET("/current", middlewares.AuthMiddleware(), userController.GetCurrent)
	user.PUT("/current", middlewares.AuthMiddleware(), userController.UpdateProfile)
	user.GET("/roles", middlewares.AuthMiddleware(models.RoleAdmin), userController.GetRoles)
	user.PUT("/:uid", middlewares.AuthMiddleware(models.RoleAdmin), userController.UpdateUserByAdmin)
	user.DELETE("/:uid", middlewares.AuthMiddleware(models.RoleAdmin), userController.DeleteUser)

	post := api.Group("/post")
	post.GET("/home", middlewares.CountVisit(db), postController.GetHome)
	post.GET("", middlewares.AuthMiddleware(), postController.GetPosts)
	post.GET("/admin", middlewares.AuthMiddleware(models.RoleAdmin), postController.GetPostsByAdmin)
	post.GET("/dashboard", middlewares.AuthMiddleware(models.RoleAdmin), dashboardController.GetDashboard)
	post.POST("", middlewares.AuthMiddleware(), postController.CreatePost)
	post.PUT("/ratings", middlewares.AuthMiddleware(), postController.Ratings)
	post.PUT("/admin/:pid", middlewares.AuthMiddleware(models.RoleAdmin), postController.UpdatePostByAdmin)
	post.DELETE("/admin/:pid", middlewares.AuthMiddleware(models.RoleAdmin), postController.DeletePostByAdmin)
	post.PUT("/:pid", middlewares.AuthMiddleware(), postController.UpdatePost)
	post.DELETE("/:pid", middlewares.AuthMiddleware(), postController.DeletePost)
	post.GET("/:pid", postController.GetPostByID)

	api.GET("/category", middlewares.CountVisit(db), categoryController.GetCategories)
	api.GET("/foodtype", categoryController.GetFoodtypes)

	api.POST("/comment", middlewares.AuthMiddleware(), commentController.CreateComment)
	api.GET("/comment", commentController.GetComments)

	api.POST("/img/multi-upload", middlewares.AuthMiddleware(), func(c *gin.Context) {
		form, err := c.MultipartForm()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "mes": "Không có file"})
			return
		}
		files := form.File["files"]
		if len(files) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "mes": "Không có file"})
			return
		}

		var urls []string
		for _, file := range files {
			src, err := file.Open()
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "mes": "Lỗi khi mở file"})
				return
			}

			resp, err := cld.Upload.Upload(config.Ctx, src, uploader.UploadParams{Folder: "uploads"})
			src.Close()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "mes": "Upload thất bại"})
				return
			}
			urls = append(urls, resp.SecureURL)
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "urls": urls})
	})

	api.POST("/img/upload", middlewares.AuthMiddleware(), func(c *gin.Context) {
		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "mes": "Không có file"})
			return
		}

		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "mes": "Lỗi khi mở file"})
			return
		}
		defer src.Close()

		resp, err := cld.Upload.Upload(config.Ctx, src, uploader.UploadParams{Folder: "avatars"})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "mes": "Upload thất bại"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "url": resp.SecureURL})
	})
}
