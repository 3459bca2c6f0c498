package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"anoa.com/tutorcabinet/internal/model"
	"anoa.com/tutorcabinet/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type AuthMiddleware struct {
	userRepo repository.UserRepository
	secret   string
}

func NewAuthMiddleware(userRepo repository.UserRepository, secret string) *AuthMiddleware {
	return &AuthMiddleware{
		userRepo: userRepo,
		secret:   secret,
	}
}

// RequireAuth parses the bearer token, loads the user and puts an explicit
// model.Identity on the context. Everything past this point works with that
// identity; no handler reads session state of its own.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")

		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
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
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(*jwt.RegisteredClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
			c.Abort()
			return
		}

		userID, err := strconv.ParseUint(claims.Subject, 10, 64)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token subject"})
			c.Abort()
			return
		}

		user, err := m.userRepo.FindByID(c.Request.Context(), uint(userID))
		if err != nil || !user.IsActive {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			c.Abort()
			return
		}

		c.Set("actor", model.Identity{
			UserID:    user.ID,
			Role:      user.Role,
			FirstName: user.FirstName,
			LastName:  user.LastName,
		})
		c.Next()
	}
}

// RequireTutor gates tutor-only route groups. Ownership checks stay in the
// services; this only guards the role.
func (m *AuthMiddleware) RequireTutor() gin.HandlerFunc {
	return func(c *gin.Context) {
		v, exists := c.Get("actor")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
			c.Abort()
			return
		}

		actor, ok := v.(model.Identity)
		if !ok || !actor.IsTutor() {
			c.JSON(http.StatusForbidden, gin.H{"error": "tutor access required"})
			c.Abort()
			return
		}

		c.Next()
	}
}
