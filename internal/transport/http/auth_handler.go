package http

import (
	"net/http"
	"time"

	"student-link/internal/app"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	FullName   string `json:"fullname" form:"fullname" binding:"required"`
	WhatsApp   string `json:"whatsapp" form:"whatsapp" binding:"required"`
	University string `json:"university" form:"university"`
	Department string `json:"department" form:"department"`
	Level      string `json:"level" form:"level"`
	Password   string `json:"password" form:"password" binding:"required"`
}

func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBind(&req); err != nil {
		writeError(c, bindError(err))
		return
	}
	user, err := h.svc.Auth.Register(c.Request.Context(), app.Registration{
		FullName:   req.FullName,
		WhatsApp:   req.WhatsApp,
		University: req.University,
		Department: req.Department,
		Level:      req.Level,
		Password:   req.Password,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

type loginRequest struct {
	WhatsApp string `json:"whatsapp" form:"whatsapp" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// Login returns the token and also sets it as an http-only cookie.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		writeError(c, bindError(err))
		return
	}
	login, err := h.svc.Auth.Login(c.Request.Context(), req.WhatsApp, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	maxAge := int(time.Until(login.ExpiresAt).Seconds())
	c.SetCookie(tokenCookie, login.Token, maxAge, "/", "", false, true)
	c.JSON(http.StatusOK, login)
}

func (h *Handler) Logout(c *gin.Context) {
	if err := h.svc.Auth.Logout(c.Request.Context(), principal(c)); err != nil {
		writeError(c, err)
		return
	}
	c.SetCookie(tokenCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}
