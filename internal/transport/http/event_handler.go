package http

import (
	"net/http"

	"student-link/internal/app"
	"student-link/internal/domain"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Events(c *gin.Context) {
	events, err := h.svc.Events.Events(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

type eventRequest struct {
	Title       string `json:"title" form:"title" binding:"required"`
	Date        string `json:"event_date" form:"event_date" binding:"required"`
	Location    string `json:"location" form:"location"`
	Description string `json:"description" form:"description"`
	Link        string `json:"event_link" form:"event_link"`
	ImageURL    string `json:"event_image" form:"event_image"`
}

func (h *Handler) SubmitEvent(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBind(&req); err != nil {
		writeError(c, bindError(err))
		return
	}
	date, err := parseLocalTime(req.Date, h.loc)
	if err != nil {
		writeError(c, domain.Invalid("event_date: %v", err))
		return
	}
	event, err := h.svc.Events.Submit(c.Request.Context(), principal(c), app.NewEvent{
		Title:       req.Title,
		Date:        date,
		Location:    req.Location,
		Description: req.Description,
		Link:        req.Link,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

func (h *Handler) ManageEvents(c *gin.Context) {
	events, err := h.svc.Events.Manage(c.Request.Context(), principal(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *Handler) ApproveEvent(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}
	if err := h.svc.Events.Approve(c.Request.Context(), principal(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"approved": id})
}

func (h *Handler) DeleteEvent(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}
	if err := h.svc.Events.Delete(c.Request.Context(), principal(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
