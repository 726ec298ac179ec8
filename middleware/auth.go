package middlewares

import (
	"net/http"
	"strings"

	"github.com/thanhdo-1929/service-finder/services"

	"github.com/gin-gonic/gin"
)

func AuthMiddleware(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "mes": "Authorization header is missing"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		currentUserID, currentUserRole, err := services.ParseToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "mes": "Invalid token"})
			c.Abort()
			return
		}

		if len(requiredRoles) > 0 {
			hasRole := false
			for _, role := range requiredRoles {
				if currentUserRole == role {
					hasRole = true
					break
				}
			}

			if !hasRole {
				c.JSON(http.StatusForbidden, gin.H{"success": false, "mes": "Bạn không có quyền truy cập"})
				c.Abort()
				return
			}
		}

		c.Set("currentUserID", currentUserID)
		c.Set("currentUserRole", currentUserRole)
		c.Next()
	}
}
