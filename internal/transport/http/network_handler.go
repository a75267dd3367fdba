package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Network(c *gin.Context) {
	n, err := h.svc.Network.Network(c.Request.Context(), principal(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, n)
}

func (h *Handler) SendFriendRequest(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}
	req, err := h.svc.Network.SendFriendRequest(c.Request.Context(), principal(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, req)
}

func (h *Handler) AcceptFriendRequest(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}
	if err := h.svc.Network.AcceptFriendRequest(c.Request.Context(), principal(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "accepted"})
}

func (h *Handler) RejectFriendRequest(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}
	if err := h.svc.Network.RejectFriendRequest(c.Request.Context(), principal(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "rejected"})
}

func (h *Handler) OpenChat(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}
	conv, err := h.svc.Network.OpenChat(c.Request.Context(), principal(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, conv)
}

type messageRequest struct {
	Message string `json:"message" form:"message" binding:"required"`
}

func (h *Handler) SendMessage(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}
	var req messageRequest
	if err := c.ShouldBind(&req); err != nil {
		writeError(c, bindError(err))
		return
	}
	msg, err := h.svc.Network.SendMessage(c.Request.Context(), principal(c), id, req.Message)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}
