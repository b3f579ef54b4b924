package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var secretKey string

func SetSecretKey(key string) {
	secretKey = key
}

func GetSecretKey() string {
	return secretKey
}

func AuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		// Gets the authorization header
		authHeader := strings.TrimSpace(ctx.GetHeader("Authorization"))
		if authHeader == "" {
			ctx.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Authorization header is required"})
			ctx.Abort()
			return
		}

		// Divides the header into Bearer and Token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			ctx.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Invalid authorization format"})
			ctx.Abort()
			return
		}

		// Verifies the JWT token
		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(secretKey), nil
		})

		// Checks if the token is valid
		if err != nil || !token.Valid {
			ctx.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Invalid token"})
			ctx.Abort()
			return
		}

		// Adds expiration validation for the token
		if exp, ok := claims["exp"].(float64); ok {
			if time.Now().Unix() > int64(exp) {
				ctx.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Token expired"})
				ctx.Abort()
				return
			}
		}

		// El payload trae {id, rol}; los números de JWT llegan como float64
		id, ok := claims["id"].(float64)
		if !ok {
			ctx.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Invalid token"})
			ctx.Abort()
			return
		}
		rol, ok := claims["rol"].(string)
		if !ok {
			ctx.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Invalid token"})
			ctx.Abort()
			return
		}

		// Sets the token claims in the context (user ID and role)
		ctx.Set("userId", int(id))
		ctx.Set("userRol", rol)
		ctx.Next()
	}
}
