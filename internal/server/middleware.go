package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
)

// TokenHeader carries the bearer token on every protected request.
const TokenHeader = "x-auth-token"

const userIDKey = "userID"

// authRequired is the single authorization chokepoint. It resolves the token
// into a user id and binds it to the request context; handlers must take the
// owning identity from there and nowhere else.
func (s *Server) authRequired(c *gin.Context) {
	token := c.GetHeader(TokenHeader)
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "No token"})
		return
	}
	userID, err := s.tokens.Verify(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "Invalid token"})
		return
	}
	c.Set(userIDKey, userID)
	c.Next()
}

func (s *Server) userID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

func metricsMiddleware(c *gin.Context) {
	start := time.Now()
	c.Next()
	observeResponse(time.Since(start), c.Writer.Status())
}

func tracingMiddleware(c *gin.Context) {
	span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), c.Request.Method+" "+c.FullPath())
	defer span.Finish()

	c.Request = c.Request.WithContext(ctx)
	c.Next()

	if c.Writer.Status() >= http.StatusInternalServerError {
		ext.Error.Set(span, true)
	}
}

func corsMiddleware(c *gin.Context) {
	c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
	c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+TokenHeader)
	if c.Request.Method == http.MethodOptions {
		c.AbortWithStatus(http.StatusNoContent)
		return
	}
	c.Next()
}
