package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) AdminStats(c *gin.Context) {
	stats, err := h.svc.Admin.Stats(c.Request.Context(), principal(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

type broadcastRequest struct {
	Title   string `json:"title" form:"title" binding:"required"`
	Message string `json:"message" form:"message" binding:"required"`
}

func (h *Handler) Broadcast(c *gin.Context) {
	var req broadcastRequest
	if err := c.ShouldBind(&req); err != nil {
		writeError(c, bindError(err))
		return
	}
	sent, err := h.svc.Notifications.Broadcast(c.Request.Context(), principal(c), req.Title, req.Message)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sent": sent})
}

func (h *Handler) VerifyUsers(c *gin.Context) {
	users, err := h.svc.Admin.Users(c.Request.Context(), principal(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) ToggleVerify(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}
	user, err := h.svc.Admin.ToggleVerify(c.Request.Context(), principal(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
