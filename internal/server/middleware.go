package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mindarch/mindarch/internal/logger"
)

const (
	ctxUserID   = "userID"
	ctxUsername = "username"
)

// requireAuth validates the bearer token and stores the user identity on
// the request context.
func requireAuth(auth *AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractBearerToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "missing or invalid token", "code": "unauthorized"},
			})
			return
		}

		userID, username, err := auth.ParseToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": err.Error(), "code": "unauthorized"},
			})
			return
		}

		c.Set(ctxUserID, userID)
		c.Set(ctxUsername, username)
		c.Next()
	}
}

func extractBearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return authHeader[7:]
	}
	return ""
}

// currentUserID reads the identity placed by requireAuth.
func currentUserID(c *gin.Context) (uuid.UUID, error) {
	v, ok := c.Get(ctxUserID)
	if !ok {
		return uuid.Nil, errors.New("no user in request context")
	}
	userID, ok := v.(uuid.UUID)
	if !ok {
		return uuid.Nil, errors.New("no user in request context")
	}
	return userID, nil
}

// requestLogger logs one line per request.
func requestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}
