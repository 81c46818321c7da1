package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"desideri.com/pugliaclub/internal/entity"
	userRepo "desideri.com/pugliaclub/internal/modules/user/repository"
	"desideri.com/pugliaclub/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuthMiddleware struct {
	userRepo userRepo.UserRepository
	secret   string
}

func NewAuthMiddleware(userRepo userRepo.UserRepository, secret string) *AuthMiddleware {
	if secret == "" {
		secret = "change-me"
	}

	return &AuthMiddleware{
		userRepo: userRepo,
		secret:   secret,
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}

	// WebSocket clients cannot set headers.
	return c.Query("token")
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			response.Detail(c, http.StatusUnauthorized, "Not authenticated")
			c.Abort()
			return
		}

		token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(m.secret), nil
		})
		if err != nil || !token.Valid {
			response.Detail(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(*jwt.RegisteredClaims)
		if !ok {
			response.Detail(c, http.StatusUnauthorized, "Invalid token claims")
			c.Abort()
			return
		}
		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			response.Detail(c, http.StatusUnauthorized, "Invalid token claims")
			c.Abort()
			return
		}

		user, ok := m.loadUser(c, userID)
		if !ok {
			return
		}

		c.Set("user_id", claims.Subject)
		c.Set("user", user)
		c.Next()
	}
}

// loadUser fetches the token's member, aborting with 401 when it no longer
// exists.
func (m *AuthMiddleware) loadUser(c *gin.Context, userID uuid.UUID) (*entity.User, bool) {
	user, err := m.userRepo.FindByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Detail(c, http.StatusUnauthorized, "User not found")
		} else {
			response.ResponseError(c, err)
		}
		c.Abort()
		return nil, false
	}
	return user, true
}

func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := response.GetUserID(c)
		if err != nil {
			response.Detail(c, http.StatusUnauthorized, "Not authenticated")
			c.Abort()
			return
		}

		var user *entity.User
		if v, exists := c.Get("user"); exists {
			user, _ = v.(*entity.User)
		}
		if user == nil {
			var ok bool
			if user, ok = m.loadUser(c, userID); !ok {
				return
			}
		}

		if !user.IsAdmin {
			response.Detail(c, http.StatusForbidden, "Admin access required")
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Next()
	}
}
