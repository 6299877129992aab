package http

import (
	"net/http"

	"shop-service/internal/domain"
	"shop-service/internal/infra/session"
	"shop-service/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handler) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBind(&req); err != nil {
		danger(c, err.Error())
		return
	}

	customer, err := h.svc.Customers.SignUp(c.Request.Context(), services.SignUpInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Password:  req.Password,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.startSession(c, customer); err != nil {
		h.fail(c, err)
		return
	}
	success(c, "Sign up and login successful")
}

func (h *Handler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBind(&req); err != nil {
		danger(c, err.Error())
		return
	}

	customer, err := h.svc.Customers.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.startSession(c, customer); err != nil {
		h.fail(c, err)
		return
	}
	success(c, "Login successful")
}

func (h *Handler) startSession(c *gin.Context, customer *domain.Customer) error {
	token, err := h.sessions.Create(c.Request.Context(), &session.Session{
		CustomerID: customer.ID,
		Email:      customer.Email,
		FirstName:  customer.FirstName,
		LastName:   customer.LastName,
	})
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.opts.CookieName, token, int(h.opts.CookieTTL.Seconds()), "/", "", h.opts.SecureCookie, true)
	return nil
}

func (h *Handler) Logout(c *gin.Context) {
	token, err := c.Cookie(h.opts.CookieName)
	if err != nil || token == "" {
		c.Status(http.StatusOK)
		return
	}

	c.SetCookie(h.opts.CookieName, "", -1, "/", "", h.opts.SecureCookie, true)
	if err := h.sessions.Delete(c.Request.Context(), token); err != nil {
		h.logger.Warn("delete session", zap.Error(err))
		outcome(c, gin.H{"message": "failed"})
		return
	}
	outcome(c, gin.H{"message": "success"})
}

func (h *Handler) GetSession(c *gin.Context) {
	sess := currentSession(c)
	if sess == nil {
		sess = &session.Session{}
	}
	c.JSON(http.StatusOK, gin.H{"sessionData": []*session.Session{sess}})
}

func (h *Handler) CheckSession(c *gin.Context) {
	if customerID(c) == 0 {
		outcome(c, gin.H{"message": "failed"})
		return
	}
	outcome(c, gin.H{"message": "success"})
}

func (h *Handler) CheckAdminSession(c *gin.Context) {
	id := customerID(c)
	if id == 0 {
		outcome(c, gin.H{"message": "failed"})
		return
	}
	admin, err := h.svc.Customers.IsAdmin(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("check admin session", zap.Uint64("customer_id", id), zap.Error(err))
	}
	if !admin {
		outcome(c, gin.H{"message": "failed"})
		return
	}
	outcome(c, gin.H{"message": "success"})
}
