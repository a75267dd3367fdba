package http

import (
	"net/http"

	"student-link/internal/domain"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Timeline(c *gin.Context) {
	tl, err := h.svc.Social.Timeline(c.Request.Context(), principal(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tl)
}

type postRequest struct {
	Content  string `json:"content" form:"content"`
	MediaURL string `json:"media_url" form:"media_url"`
}

func (h *Handler) CreatePost(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBind(&req); err != nil {
		writeError(c, bindError(err))
		return
	}
	post, err := h.svc.Social.CreatePost(c.Request.Context(), principal(c), req.Content, req.MediaURL)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (h *Handler) ToggleLike(c *gin.Context) {
	id, err := paramID(c, "postId")
	if err != nil {
		writeError(c, err)
		return
	}
	state, err := h.svc.Social.ToggleLike(c.Request.Context(), principal(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

type commentRequest struct {
	Content string `json:"content" form:"content" binding:"required"`
}

func (h *Handler) Comment(c *gin.Context) {
	id, err := paramID(c, "postId")
	if err != nil {
		writeError(c, err)
		return
	}
	var req commentRequest
	if err := c.ShouldBind(&req); err != nil {
		writeError(c, bindError(err))
		return
	}
	comment, err := h.svc.Social.Comment(c.Request.Context(), principal(c), id, req.Content)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *Handler) Comments(c *gin.Context) {
	id, err := paramID(c, "postId")
	if err != nil {
		writeError(c, err)
		return
	}
	comments, err := h.svc.Social.Comments(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (h *Handler) Profile(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}
	profile, err := h.svc.Social.Profile(c.Request.Context(), principal(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

type profileRequest struct {
	FullName   string `json:"fullname" form:"fullname"`
	WhatsApp   string `json:"whatsapp" form:"whatsapp"`
	University string `json:"university" form:"university"`
	Department string `json:"department" form:"department"`
	Level      string `json:"level" form:"level"`
	Bio        string `json:"bio" form:"bio"`
	ProfilePic string `json:"profile_pic" form:"profile_pic"`
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBind(&req); err != nil {
		writeError(c, bindError(err))
		return
	}
	user, err := h.svc.Social.UpdateProfile(c.Request.Context(), principal(c), domain.ProfileUpdate{
		FullName:   req.FullName,
		WhatsApp:   req.WhatsApp,
		University: req.University,
		Department: req.Department,
		Level:      req.Level,
		Bio:        req.Bio,
		ProfilePic: req.ProfilePic,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type academicRequest struct {
	Department string `json:"department" form:"department"`
	Level      string `json:"level" form:"level"`
}

func (h *Handler) UpdateAcademic(c *gin.Context) {
	var req academicRequest
	if err := c.ShouldBind(&req); err != nil {
		writeError(c, bindError(err))
		return
	}
	user, err := h.svc.Social.UpdateAcademic(c.Request.Context(), principal(c), req.Department, req.Level)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) Resources(c *gin.Context) {
	resources, err := h.svc.Social.Resources(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resources)
}

type resourceRequest struct {
	Title       string `json:"title" form:"title" binding:"required"`
	CourseCode  string `json:"course_code" form:"course_code"`
	DownloadURL string `json:"download_url" form:"download_url" binding:"required"`
}

func (h *Handler) UploadResource(c *gin.Context) {
	var req resourceRequest
	if err := c.ShouldBind(&req); err != nil {
		writeError(c, bindError(err))
		return
	}
	res, err := h.svc.Social.UploadResource(c.Request.Context(), principal(c), req.Title, req.CourseCode, req.DownloadURL)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) Notifications(c *gin.Context) {
	notes, err := h.svc.Notifications.List(c.Request.Context(), principal(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, notes)
}

func (h *Handler) MarkNotificationsRead(c *gin.Context) {
	if err := h.svc.Notifications.MarkAllRead(c.Request.Context(), principal(c)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
