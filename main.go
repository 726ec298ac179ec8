package main

import (
	"os"
	"time"

	"github.com/thanhdo-1929/service-finder/config"
	_ "github.com/thanhdo-1929/service-finder/docs"
	"github.com/thanhdo-1929/service-finder/routes"
	"github.com/thanhdo-1929/service-finder/services"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		zap.L().Warn("no .env file found, reading environment directly")
	}

	if err := config.SetupLogger(); err != nil {
		panic("Failed to setup logger: " + err.Error())
	}

	if err := config.ConnectDB(); err != nil {
		zap.L().Fatal("failed to connect database", zap.Error(err))
	}

	if err := config.Migrate(config.DB); err != nil {
		zap.L().Fatal("failed to migrate tables", zap.Error(err))
	}

	if err := config.ConnectCloudinary(); err != nil {
		zap.L().Fatal("failed to connect cloudinary", zap.Error(err))
	}

	redisCli, err := config.ConnectRedis()
	if err != nil {
		zap.L().Fatal("failed to connect redis", zap.Error(err))
	}

	// Quét tài khoản chưa xác thực quá hạn, chạy nền suốt vòng đời tiến trình.
	cleanup := services.StartCleanup(config.DB)
	defer cleanup.Stop()

	router := gin.New()
	router.Use(ginzap.Ginzap(zap.L(), time.RFC3339, true))
	router.Use(ginzap.RecoveryWithZap(zap.L(), true))

	configCors := cors.DefaultConfig()
	configCors.AddAllowHeaders("Authorization")
	configCors.AllowCredentials = true
	configCors.AllowAllOrigins = false
	configCors.AllowOriginFunc = func(origin string) bool {
		return true
	}
	router.Use(cors.New(configCors))

	routes.SetupRoutes(router, config.DB, redisCli, config.Cloudinary)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8083"
	}

	zap.L().Info("server starting", zap.String("port", port))
	if err := router.Run(":" + port); err != nil {
		zap.L().Fatal("server stopped", zap.Error(err))
	}
}
