package http

import (
	"net/http"
	"time"

	"shop-service/internal/infra/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const sessionKey = "session"

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		logger.Info("request", fields...)
	}
}

// cors allows one credentialed browser origin. An empty origin disables the
// headers entirely.
func cors(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if origin == "" {
			c.Next()
			return
		}
		header := c.Writer.Header()
		header.Set("Access-Control-Allow-Origin", origin)
		header.Set("Access-Control-Allow-Credentials", "true")
		header.Set("Access-Control-Allow-Headers", "Content-Type")
		header.Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		header.Add("Vary", "Origin")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// loadSession resolves the session cookie. Requests without a valid
// session carry on anonymously.
func (h *Handler) loadSession(c *gin.Context) {
	token, err := c.Cookie(h.opts.CookieName)
	if err != nil || token == "" {
		c.Next()
		return
	}
	sess, err := h.sessions.Get(c.Request.Context(), token)
	if err != nil {
		h.logger.Warn("load session", zap.Error(err))
	}
	if sess != nil {
		c.Set(sessionKey, sess)
	}
	c.Next()
}

func currentSession(c *gin.Context) *session.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*session.Session)
	return sess
}

// customerID is zero for anonymous requests.
func customerID(c *gin.Context) uint64 {
	if sess := currentSession(c); sess != nil {
		return sess.CustomerID
	}
	return 0
}

func (h *Handler) requireCustomer(c *gin.Context) {
	if customerID(c) == 0 {
		danger(c, msgSignInRequired)
		c.Abort()
		return
	}
	c.Next()
}

func (h *Handler) requireAdmin(c *gin.Context) {
	id := customerID(c)
	if id == 0 {
		danger(c, msgSignInRequired)
		c.Abort()
		return
	}
	admin, err := h.svc.Customers.IsAdmin(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		c.Abort()
		return
	}
	if !admin {
		danger(c, msgAdminRequired)
		c.Abort()
		return
	}
	c.Next()
}
